package config

import (
	"fmt"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Gateway.Port < 0 || cfg.Gateway.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Gateway.Port),
		})
	}

	validBinds := []string{"loopback", "lan"}
	if cfg.Gateway.Bind != "" && !slices.Contains(validBinds, cfg.Gateway.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Gateway.Bind),
		})
	}

	validAuthModes := []string{"token", "none"}
	if cfg.Gateway.Auth.Mode != "" && !slices.Contains(validAuthModes, cfg.Gateway.Auth.Mode) {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.auth.mode",
			Message: fmt.Sprintf("must be one of %v, got %q", validAuthModes, cfg.Gateway.Auth.Mode),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validConsoleStyles := []string{"pretty", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validConsoleStyles, cfg.Logging.ConsoleStyle) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.consoleStyle",
			Message: fmt.Sprintf("must be one of %v, got %q", validConsoleStyles, cfg.Logging.ConsoleStyle),
		})
	}

	validStores := []string{"memory", "sqlite", "postgres"}
	if cfg.Session.Store != "" && !slices.Contains(validStores, cfg.Session.Store) {
		issues = append(issues, ValidationIssue{
			Path:    "session.store",
			Message: fmt.Sprintf("must be one of %v, got %q", validStores, cfg.Session.Store),
		})
	}
	if cfg.Session.Store == "postgres" && cfg.Store.PostgresURL == "" {
		issues = append(issues, ValidationIssue{
			Path:    "store.postgresUrl",
			Message: "required when session.store is postgres",
		})
	}

	// Printavo requires both halves of its credential pair.
	if (cfg.Printavo.Email == "") != (cfg.Printavo.Token == "") {
		issues = append(issues, ValidationIssue{
			Path:    "printavo",
			Message: "email and token must be set together",
		})
	}

	if cfg.SanMar.Username != "" && cfg.SanMar.Password == "" {
		issues = append(issues, ValidationIssue{
			Path:    "sanmar.password",
			Message: "required when sanmar.username is set",
		})
	}

	for i, h := range allHooks(cfg.Hooks) {
		if h.Command == "" {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("hooks[%d].command", i),
				Message: "command is required",
			})
		}
	}

	return issues
}

func allHooks(h HooksConfig) []HookEntry {
	var out []HookEntry
	out = append(out, h.MessageReceived...)
	out = append(out, h.TurnCompleted...)
	out = append(out, h.TurnErrored...)
	out = append(out, h.GatewayStart...)
	out = append(out, h.GatewayStop...)
	return out
}
