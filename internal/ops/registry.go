// Package ops is the operation registry: every backend action the chat
// surface can perform is registered here under a stable name, with its
// required parameters declared up front. The registry validates params,
// recovers panics, and returns a uniform domain.Result for every call,
// so callers never see a raw error or a crash from an individual handler.
package ops

import (
	"context"
	"sort"
	"sync"

	"github.com/printdesk/printdesk/internal/domain"
	"github.com/printdesk/printdesk/internal/logging"
)

// Params carries the arguments for one operation call.
type Params map[string]any

// Str returns the string value for key, or "" when absent or not a string.
func (p Params) Str(key string) string {
	s, _ := p[key].(string)
	return s
}

// Int returns the int value for key with a fallback default. JSON decoding
// produces float64 for numbers, so both forms are accepted.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}

// Handler executes one operation.
type Handler func(ctx context.Context, params Params) domain.Result

// Descriptor declares an operation: its registry name, a short human
// description, the params that must be present, and the handler.
type Descriptor struct {
	Name        string
	Description string
	Required    []string
	Run         Handler
}

// Registry maps operation names to descriptors.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Descriptor
	log *logging.Logger
}

// NewRegistry creates an empty operation registry.
func NewRegistry(log *logging.Logger) *Registry {
	return &Registry{
		ops: make(map[string]Descriptor),
		log: log.Sub("ops"),
	}
}

// Register adds an operation. Registering a duplicate name replaces the
// previous descriptor and logs a warning.
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ops[d.Name]; exists {
		r.log.Warn().Str("operation", d.Name).Msg("operation re-registered")
	}
	r.ops[d.Name] = d
}

// Names returns the registered operation names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the descriptor for an operation name.
func (r *Registry) Describe(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.ops[name]
	return d, ok
}

// Execute runs a named operation. Unknown names and missing required
// params produce failed Results, and a panicking handler is recovered
// into a failed Result rather than taking the server down.
func (r *Registry) Execute(ctx context.Context, name string, params Params) (res domain.Result) {
	r.mu.RLock()
	d, ok := r.ops[name]
	r.mu.RUnlock()

	if !ok {
		return domain.Fail("Unknown operation: %s", name)
	}
	for _, key := range d.Required {
		if _, present := params[key]; !present {
			return domain.Fail("Missing required parameter: %s", key)
		}
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().
				Str("operation", name).
				Any("panic", rec).
				Msg("operation panicked")
			res = domain.Fail("operation %s failed unexpectedly", name)
		}
	}()

	r.log.Debug().Str("operation", name).Msg("executing operation")
	return d.Run(ctx, params)
}

// sentimentParam pulls a sentiment value out of params, tolerating absence.
func sentimentParam(p Params, key string) domain.Sentiment {
	s, _ := p[key].(domain.Sentiment)
	return s
}

// contextParam pulls a conversation context out of params, tolerating absence.
func contextParam(p Params, key string) domain.ConversationContext {
	c, _ := p[key].(domain.ConversationContext)
	return c
}
