package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/printdesk/printdesk/internal/adapter/openai"
	"github.com/printdesk/printdesk/internal/adapter/printavo"
	"github.com/printdesk/printdesk/internal/adapter/sanmar"
	"github.com/printdesk/printdesk/internal/chat"
	"github.com/printdesk/printdesk/internal/config"
	"github.com/printdesk/printdesk/internal/hooks"
	"github.com/printdesk/printdesk/internal/intent"
	"github.com/printdesk/printdesk/internal/normalize"
	"github.com/printdesk/printdesk/internal/ops"
	"github.com/printdesk/printdesk/internal/store"
)

// resolveLogging picks the console style and level once the config file is
// loaded. The --log-level flag wins over the file.
func resolveLogging(cfg config.Config, flagLevel string) (style, level string) {
	style = cfg.Logging.ConsoleStyle
	if style == "" {
		style = "pretty"
	}
	level = flagLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	if level == "" {
		level = "info"
	}
	return style, level
}

// runtime bundles everything a command needs to process chat turns.
type runtime struct {
	orch    *chat.Orchestrator
	reg     *ops.Registry
	hookMgr *hooks.Manager
	cleanup func()
}

// buildRegistry wires the three API adapters into an operation registry.
func buildRegistry(cfg config.Config) *ops.Registry {
	reg := ops.NewRegistry(log)

	ops.RegisterOrderOps(reg, printavo.New(printavo.Config{
		URL:            cfg.Printavo.URL,
		Email:          cfg.Printavo.Email,
		Token:          cfg.Printavo.Token,
		TimeoutSeconds: cfg.Printavo.TimeoutSeconds,
	}, log))

	ops.RegisterProductOps(reg, sanmar.New(sanmar.Config{
		BaseURL:  cfg.SanMar.BaseURL,
		Account:  cfg.SanMar.Account,
		Username: cfg.SanMar.Username,
		Password: cfg.SanMar.Password,
	}, log))

	ops.RegisterLLMOps(reg, openai.New(openai.Config{
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Temperature: cfg.OpenAI.Temperature,
	}, log))

	return reg
}

// buildSessionStore opens the configured session backend. The returned
// cleanup function closes it.
func buildSessionStore(ctx context.Context, cfg config.Config) (chat.SessionStore, func(), error) {
	switch cfg.Session.Store {
	case "postgres":
		pg, err := store.NewPostgresSessionStore(ctx, cfg.Store.PostgresURL, log)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres store: %w", err)
		}
		log.Info().Msg("using postgres session store")
		return pg, pg.Close, nil

	case "memory":
		log.Info().Msg("using in-memory session store")
		return store.NewMemorySessionStore(), func() {}, nil

	default: // sqlite
		dbPath := cfg.Store.SQLitePath
		if dbPath == "" {
			dbPath = filepath.Join(paths.Data, "printdesk.db")
		}
		db, err := store.Open(dbPath, log)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		log.Info().Str("path", dbPath).Msg("using SQLite session store")
		return store.NewSQLiteSessionStore(db), func() { db.Close() }, nil
	}
}

// buildRuntime wires the full chat pipeline from config.
func buildRuntime(ctx context.Context, cfg config.Config) (*runtime, error) {
	sessions, cleanup, err := buildSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	hookMgr := hooks.NewManager(log)
	hookMgr.RegisterConfig(cfg.Hooks)

	reg := buildRegistry(cfg)
	orch := chat.NewOrchestrator(chat.Options{
		Router:      intent.NewRouter(log),
		Registry:    reg,
		Normalizer:  normalize.New(log),
		Store:       sessions,
		Hooks:       hookMgr,
		MaxHistory:  cfg.Session.MaxHistory,
		IdleTimeout: time.Duration(cfg.Session.IdleMinutes) * time.Minute,
	}, log)

	return &runtime{orch: orch, reg: reg, hookMgr: hookMgr, cleanup: cleanup}, nil
}
