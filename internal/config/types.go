package config

// Config is the root configuration for printdesk.
// Secrets may be written as ${ENV_VAR} in the YAML file, and every field
// with an env tag can be overridden directly from the environment.
type Config struct {
	Gateway  GatewayConfig  `yaml:"gateway,omitempty"`
	Printavo PrintavoConfig `yaml:"printavo,omitempty"`
	SanMar   SanMarConfig   `yaml:"sanmar,omitempty"`
	OpenAI   OpenAIConfig   `yaml:"openai,omitempty"`
	Session  SessionConfig  `yaml:"session,omitempty"`
	Store    StoreConfig    `yaml:"store,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Hooks    HooksConfig    `yaml:"hooks,omitempty"`
}

// GatewayConfig controls the chat HTTP/WebSocket server.
type GatewayConfig struct {
	Port int         `yaml:"port,omitempty" env:"PRINTDESK_GATEWAY_PORT"`
	Bind string      `yaml:"bind,omitempty" env:"PRINTDESK_GATEWAY_BIND"` // "loopback" | "lan"
	Auth GatewayAuth `yaml:"auth,omitempty"`
}

// GatewayAuth configures gateway authentication.
type GatewayAuth struct {
	Mode  string `yaml:"mode,omitempty"` // "token" | "none"
	Token string `yaml:"token,omitempty" env:"PRINTDESK_GATEWAY_TOKEN"`
}

// PrintavoConfig holds credentials for the Printavo GraphQL API.
type PrintavoConfig struct {
	URL            string `yaml:"url,omitempty" env:"PRINTDESK_PRINTAVO_URL"`
	Email          string `yaml:"email,omitempty" env:"PRINTDESK_PRINTAVO_EMAIL"`
	Token          string `yaml:"token,omitempty" env:"PRINTDESK_PRINTAVO_TOKEN"`
	TimeoutSeconds int    `yaml:"timeoutSeconds,omitempty"`
}

// SanMarConfig holds credentials for the SanMar supplier API.
type SanMarConfig struct {
	BaseURL  string `yaml:"baseUrl,omitempty" env:"PRINTDESK_SANMAR_BASE_URL"`
	Account  string `yaml:"account,omitempty" env:"PRINTDESK_SANMAR_ACCOUNT"`
	Username string `yaml:"username,omitempty" env:"PRINTDESK_SANMAR_USERNAME"`
	Password string `yaml:"password,omitempty" env:"PRINTDESK_SANMAR_PASSWORD"`
}

// OpenAIConfig holds settings for the LLM fallback adapter.
type OpenAIConfig struct {
	APIKey      string   `yaml:"apiKey,omitempty" env:"OPENAI_API_KEY"`
	Model       string   `yaml:"model,omitempty" env:"PRINTDESK_OPENAI_MODEL"`
	MaxTokens   int      `yaml:"maxTokens,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
}

// SessionConfig defines conversation session behavior.
type SessionConfig struct {
	Store       string `yaml:"store,omitempty" env:"PRINTDESK_SESSION_STORE"` // "memory" | "sqlite" | "postgres"
	IdleMinutes int    `yaml:"idleMinutes,omitempty"`
	MaxHistory  int    `yaml:"maxHistory,omitempty"` // messages kept per session in memory
}

// StoreConfig points the persistent stores at their backends.
type StoreConfig struct {
	SQLitePath  string `yaml:"sqlitePath,omitempty" env:"PRINTDESK_SQLITE_PATH"`
	PostgresURL string `yaml:"postgresUrl,omitempty" env:"PRINTDESK_POSTGRES_URL"` // Supabase connection string
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty" env:"PRINTDESK_LOG_LEVEL"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	ConsoleStyle string `yaml:"consoleStyle,omitempty"`                    // "pretty" | "json"
}

// HooksConfig defines shell-command hooks per lifecycle event.
type HooksConfig struct {
	MessageReceived []HookEntry `yaml:"messageReceived,omitempty"`
	TurnCompleted   []HookEntry `yaml:"turnCompleted,omitempty"`
	TurnErrored     []HookEntry `yaml:"turnErrored,omitempty"`
	GatewayStart    []HookEntry `yaml:"gatewayStart,omitempty"`
	GatewayStop     []HookEntry `yaml:"gatewayStop,omitempty"`
}

// HookEntry defines a single hook action.
type HookEntry struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout,omitempty"` // milliseconds
}
