package domain

import "fmt"

// Result kinds. Every adapter tags its payload explicitly so the normalizer
// never has to sniff field shapes.
const (
	KindOrder     = "order"
	KindCustomer  = "customer"
	KindProduct   = "product"
	KindList      = "list"
	KindAgent     = "agent"
	KindForm      = "form"
	KindDashboard = "dashboard"
)

// Result is the uniform envelope every adapter call and operation executor
// returns. Exactly one of Data/Error is meaningful: Data when Success is
// true, Error when it is false.
type Result struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps a payload in a successful Result with the given kind tag.
func OK(kind string, data any) Result {
	return Result{Success: true, Kind: kind, Data: data}
}

// Fail builds a failed Result from a message.
func Fail(format string, args ...any) Result {
	return Result{Success: false, Error: fmt.Sprintf(format, args...)}
}

// FailErr builds a failed Result from an error.
func FailErr(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// ListData is the payload for KindList results. Items is never nil on a
// successful lookup, so the UI can render an empty state deterministically.
type ListData struct {
	Element    string `json:"element"` // "order" | "customer" | "product"
	Items      []any  `json:"items"`
	SearchTerm string `json:"searchTerm,omitempty"`
}

// AgentPayload is the payload for KindAgent results produced by the LLM
// adapter. When the model returns a structured response carrying its own
// type, Data holds it and Type mirrors it; otherwise Type is empty and
// Reply carries plain text.
type AgentPayload struct {
	Type  string `json:"type,omitempty"`
	Reply string `json:"reply,omitempty"`
	Data  any    `json:"data,omitempty"`
}
