package config

import (
	"os"
	"regexp"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields processes environment variable references in
// credential fields so tokens and passwords can be stored as ${ENV_VAR}.
func expandSensitiveFields(cfg *Config) {
	cfg.Gateway.Auth.Token = expandEnvVars(cfg.Gateway.Auth.Token)
	cfg.Printavo.Email = expandEnvVars(cfg.Printavo.Email)
	cfg.Printavo.Token = expandEnvVars(cfg.Printavo.Token)
	cfg.SanMar.Username = expandEnvVars(cfg.SanMar.Username)
	cfg.SanMar.Password = expandEnvVars(cfg.SanMar.Password)
	cfg.OpenAI.APIKey = expandEnvVars(cfg.OpenAI.APIKey)
	cfg.Store.PostgresURL = expandEnvVars(cfg.Store.PostgresURL)
}

// Load reads the config file, applies defaults, ${VAR} expansion, and env
// tag overrides, and returns a merged Config. A missing file produces
// defaults plus environment overrides only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := env.Parse(&cfg); err != nil {
				return cfg, &ConfigError{Message: "env overrides: " + err.Error()}
			}
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	expandSensitiveFields(&cfg)
	if err := env.Parse(&cfg); err != nil {
		return cfg, &ConfigError{Message: "env overrides: " + err.Error()}
	}
	return cfg, nil
}
