package domain

// ConversationContext accumulates lightweight per-session state across turns.
// It is read and written only within a single session's turn and discarded
// when the session ends.
type ConversationContext struct {
	LastOrderID    string `json:"lastOrderId,omitempty"`
	LastOrderType  string `json:"lastOrderType,omitempty"` // "quote" | "invoice" | "order"
	LastCustomerID string `json:"lastCustomerId,omitempty"`
	LastSearchTerm string `json:"lastSearchTerm,omitempty"`
	LastIntent     string `json:"lastIntent,omitempty"`
}

// Sentiment is a lightweight flag set derived from the user's message text.
type Sentiment struct {
	IsUrgent   bool `json:"isUrgent,omitempty"`
	IsConfused bool `json:"isConfused,omitempty"`
	IsPositive bool `json:"isPositive,omitempty"`
	IsNegative bool `json:"isNegative,omitempty"`
}
