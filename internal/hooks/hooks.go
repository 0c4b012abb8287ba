// Package hooks dispatches lifecycle events to registered handlers,
// including shell commands declared in the config file. The chat loop and
// the gateway fire events; operators attach notifications or audit
// logging without touching the code.
package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"sync"
	"time"

	"github.com/printdesk/printdesk/internal/config"
	"github.com/printdesk/printdesk/internal/logging"
)

// Event names for the hook system.
const (
	EventMessageReceived = "message_received"
	EventTurnCompleted   = "turn_completed"
	EventTurnErrored     = "turn_errored"
	EventGatewayStart    = "gateway_start"
	EventGatewayStop     = "gateway_stop"
)

// AllEvents lists all known hook event names.
var AllEvents = []string{
	EventMessageReceived,
	EventTurnCompleted,
	EventTurnErrored,
	EventGatewayStart,
	EventGatewayStop,
}

// Payload carries event data to hook handlers.
type Payload struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data,omitempty"`
}

// Handler handles one hook event. Returning an error logs the failure but
// does not stop other handlers.
type Handler func(ctx context.Context, p Payload) error

// Manager manages hook registrations and dispatches events.
type Manager struct {
	mu       sync.RWMutex
	handlers map[string][]namedHandler
	log      *logging.Logger
}

type namedHandler struct {
	name    string
	handler Handler
}

// NewManager creates a hook manager.
func NewManager(log *logging.Logger) *Manager {
	return &Manager{
		handlers: make(map[string][]namedHandler),
		log:      log.Sub("hooks"),
	}
}

// On registers a handler for the given event. The name identifies the
// handler in logs.
func (m *Manager) On(event, name string, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[event] = append(m.handlers[event], namedHandler{name: name, handler: handler})
	m.log.Debug().Str("event", event).Str("handler", name).Msg("hook registered")
}

// RegisterConfig attaches the shell-command hooks declared in config.
func (m *Manager) RegisterConfig(cfg config.HooksConfig) {
	register := func(event string, entries []config.HookEntry) {
		for _, e := range entries {
			m.On(event, "shell:"+e.Command, shellHandler(e))
		}
	}
	register(EventMessageReceived, cfg.MessageReceived)
	register(EventTurnCompleted, cfg.TurnCompleted)
	register(EventTurnErrored, cfg.TurnErrored)
	register(EventGatewayStart, cfg.GatewayStart)
	register(EventGatewayStop, cfg.GatewayStop)
}

// Fire dispatches an event to its handlers concurrently and returns
// immediately, so hook work never blocks a chat turn. Errors are logged.
func (m *Manager) Fire(event string, data map[string]any) {
	m.mu.RLock()
	handlers := make([]namedHandler, len(m.handlers[event]))
	copy(handlers, m.handlers[event])
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	payload := Payload{Event: event, Data: data}
	for _, h := range handlers {
		go func(h namedHandler) {
			if err := h.handler(context.Background(), payload); err != nil {
				m.log.Warn().
					Err(err).
					Str("event", event).
					Str("handler", h.name).
					Msg("hook handler error")
			}
		}(h)
	}
}

// Emit dispatches an event to its handlers synchronously, in registration
// order. Used at startup and shutdown where ordering matters.
func (m *Manager) Emit(ctx context.Context, event string, data map[string]any) {
	m.mu.RLock()
	handlers := make([]namedHandler, len(m.handlers[event]))
	copy(handlers, m.handlers[event])
	m.mu.RUnlock()

	payload := Payload{Event: event, Data: data}
	for _, h := range handlers {
		if err := h.handler(ctx, payload); err != nil {
			m.log.Warn().
				Err(err).
				Str("event", event).
				Str("handler", h.name).
				Msg("hook handler error")
		}
	}
}

// Count returns the number of handlers registered for an event.
func (m *Manager) Count(event string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[event])
}

// shellHandler runs a configured command with the event payload as JSON
// on stdin.
func shellHandler(entry config.HookEntry) Handler {
	timeout := time.Duration(entry.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return func(ctx context.Context, p Payload) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		cmd := exec.CommandContext(ctx, "sh", "-c", entry.Command)
		cmd.Stdin = bytes.NewReader(data)
		return cmd.Run()
	}
}
