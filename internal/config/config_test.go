package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 18620, cfg.Gateway.Port)
	assert.Equal(t, "loopback", cfg.Gateway.Bind)
	assert.Equal(t, "sqlite", cfg.Session.Store)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
}

func TestLoad_AppliesDefaultsOverYAML(t *testing.T) {
	path := writeConfig(t, `
gateway:
  port: 9000
printavo:
  email: shop@example.com
  token: abc123
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Gateway.Port)
	assert.Equal(t, "loopback", cfg.Gateway.Bind, "unset fields keep defaults")
	assert.Equal(t, "shop@example.com", cfg.Printavo.Email)
	assert.Equal(t, "https://www.printavo.com/api/v2", cfg.Printavo.URL)
}

func TestLoad_ExpandsEnvReferences(t *testing.T) {
	t.Setenv("TEST_PRINTAVO_TOKEN", "secret-from-env")
	path := writeConfig(t, `
printavo:
  email: shop@example.com
  token: ${TEST_PRINTAVO_TOKEN}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-from-env", cfg.Printavo.Token)
}

func TestLoad_UnsetEnvReferenceLeftAlone(t *testing.T) {
	path := writeConfig(t, `
sanmar:
  username: shop
  password: ${DEFINITELY_NOT_SET_ANYWHERE}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${DEFINITELY_NOT_SET_ANYWHERE}", cfg.SanMar.Password)
}

func TestLoad_EnvTagOverridesFile(t *testing.T) {
	t.Setenv("PRINTDESK_GATEWAY_PORT", "9999")
	path := writeConfig(t, "gateway:\n  port: 9000\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Gateway.Port)
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg := Defaults()
		assert.Empty(t, Validate(&cfg))
	})

	t.Run("bad enum values", func(t *testing.T) {
		cfg := Defaults()
		cfg.Gateway.Bind = "everywhere"
		cfg.Session.Store = "redis"
		cfg.Logging.Level = "verbose"

		issues := Validate(&cfg)
		require.Len(t, issues, 3)
	})

	t.Run("postgres store requires url", func(t *testing.T) {
		cfg := Defaults()
		cfg.Session.Store = "postgres"

		issues := Validate(&cfg)
		require.Len(t, issues, 1)
		assert.Equal(t, "store.postgresUrl", issues[0].Path)
	})

	t.Run("printavo credentials come in pairs", func(t *testing.T) {
		cfg := Defaults()
		cfg.Printavo.Email = "shop@example.com"

		issues := Validate(&cfg)
		require.Len(t, issues, 1)
		assert.Equal(t, "printavo", issues[0].Path)
	})

	t.Run("hook command required", func(t *testing.T) {
		cfg := Defaults()
		cfg.Hooks.TurnCompleted = []HookEntry{{Timeout: 500}}

		issues := Validate(&cfg)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Path, "hooks")
	})
}

func TestRawPathHelpers(t *testing.T) {
	raw := map[string]any{}

	path, err := ParseConfigPath("gateway.auth.token")
	require.NoError(t, err)

	SetValueAtPath(raw, path, "tok-1")
	val, ok := GetValueAtPath(raw, path)
	require.True(t, ok)
	assert.Equal(t, "tok-1", val)

	assert.True(t, UnsetValueAtPath(raw, path))
	_, ok = GetValueAtPath(raw, path)
	assert.False(t, ok)
	assert.False(t, UnsetValueAtPath(raw, path), "already removed")
}

func TestParseConfigPath_Rejections(t *testing.T) {
	_, err := ParseConfigPath("")
	assert.Error(t, err)

	_, err = ParseConfigPath("gateway..port")
	assert.Error(t, err)

	_, err = ParseConfigPath("__proto__.polluted")
	assert.Error(t, err)
}
