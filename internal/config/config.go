package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Gateway: GatewayConfig{
			Port: 18620,
			Bind: "loopback",
			Auth: GatewayAuth{
				Mode: "token",
			},
		},
		Printavo: PrintavoConfig{
			URL:            "https://www.printavo.com/api/v2",
			TimeoutSeconds: 30,
		},
		SanMar: SanMarConfig{
			BaseURL: "https://api.sanmar.com",
		},
		OpenAI: OpenAIConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 1024,
		},
		Session: SessionConfig{
			Store:       "sqlite",
			IdleMinutes: 30,
			MaxHistory:  50,
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
	}
}

// applyDefaults fills zero-valued fields after YAML unmarshal.
func applyDefaults(cfg *Config) {
	def := Defaults()
	if cfg.Gateway.Port == 0 {
		cfg.Gateway.Port = def.Gateway.Port
	}
	if cfg.Gateway.Bind == "" {
		cfg.Gateway.Bind = def.Gateway.Bind
	}
	if cfg.Gateway.Auth.Mode == "" {
		cfg.Gateway.Auth.Mode = def.Gateway.Auth.Mode
	}
	if cfg.Printavo.URL == "" {
		cfg.Printavo.URL = def.Printavo.URL
	}
	if cfg.Printavo.TimeoutSeconds == 0 {
		cfg.Printavo.TimeoutSeconds = def.Printavo.TimeoutSeconds
	}
	if cfg.SanMar.BaseURL == "" {
		cfg.SanMar.BaseURL = def.SanMar.BaseURL
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = def.OpenAI.Model
	}
	if cfg.OpenAI.MaxTokens == 0 {
		cfg.OpenAI.MaxTokens = def.OpenAI.MaxTokens
	}
	if cfg.Session.Store == "" {
		cfg.Session.Store = def.Session.Store
	}
	if cfg.Session.IdleMinutes == 0 {
		cfg.Session.IdleMinutes = def.Session.IdleMinutes
	}
	if cfg.Session.MaxHistory == 0 {
		cfg.Session.MaxHistory = def.Session.MaxHistory
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.ConsoleStyle == "" {
		cfg.Logging.ConsoleStyle = def.Logging.ConsoleStyle
	}
}
