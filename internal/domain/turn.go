package domain

// Turn actions that bypass natural-language routing. When Action is set on a
// TurnRequest, the orchestrator calls the named operation directly instead of
// consulting the intent router.
const (
	ActionCreateQuote   = "create_quote"
	ActionCreateInvoice = "create_invoice"
)

// TurnRequest is one inbound chat turn from the route layer.
type TurnRequest struct {
	SessionID  string         `json:"sessionId,omitempty"`
	Messages   []ChatMessage  `json:"messages"`
	Action     string         `json:"action,omitempty"`
	QuoteData  map[string]any `json:"quoteData,omitempty"`
	CustomerID string         `json:"customerId,omitempty"`
}

// LastUserMessage returns the most recent user-role message, or nil.
func (r TurnRequest) LastUserMessage() *ChatMessage {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return &r.Messages[i]
		}
	}
	return nil
}

// TurnResponse is the outcome of one chat turn. Message is always a
// natural-language sentence, never a raw error code.
type TurnResponse struct {
	Success   bool             `json:"success"`
	SessionID string           `json:"sessionId,omitempty"`
	Message   string           `json:"message"`
	RichData  *RichMessageData `json:"richData,omitempty"`
	Error     string           `json:"error,omitempty"`
}
