package domain

import "time"

// Role constants for chat messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Rich data types understood by the UI renderer.
const (
	RichTypeOrder     = "order"
	RichTypeCustomer  = "customer"
	RichTypeProduct   = "product"
	RichTypeForm      = "form"
	RichTypeDashboard = "dashboard"
	RichTypeAgent     = "agent_response"
)

// ChatFile is a file attached to a chat message.
type ChatFile struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	URL      string `json:"url,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// RichMessageData is a typed structured payload attached to a chat reply,
// rendered by the UI beyond plain text. Content is shaped by Type.
type RichMessageData struct {
	Type    string `json:"type"`
	Content any    `json:"content"`
}

// ChatMessage is a single turn in a support conversation.
// Messages are immutable once appended to a session.
type ChatMessage struct {
	ID          string           `json:"id"`
	Role        string           `json:"role"`
	Content     string           `json:"content"`
	Timestamp   time.Time        `json:"timestamp"`
	Files       []ChatFile       `json:"files,omitempty"`
	RichData    *RichMessageData `json:"richData,omitempty"`
	MessageType string           `json:"messageType,omitempty"`
}
