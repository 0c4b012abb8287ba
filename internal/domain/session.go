package domain

import "time"

// Session holds one support conversation: its message log and the
// accumulated conversation context.
type Session struct {
	ID        string               `json:"id"`
	Context   ConversationContext  `json:"context"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
	Messages  []ChatMessage        `json:"messages,omitempty"`
}
