package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderDisplayID(t *testing.T) {
	assert.Equal(t, "9435", Order{ID: "ord-1", VisualID: "9435"}.DisplayID())
	assert.Equal(t, "ord-1", Order{ID: "ord-1"}.DisplayID())
}

func TestCustomerName(t *testing.T) {
	tests := []struct {
		name string
		c    Customer
		want string
	}{
		{"full name", Customer{FirstName: "Ada", LastName: "Lovelace", Company: "Acme"}, "Ada Lovelace"},
		{"company fallback", Customer{Company: "Acme Prints"}, "Acme Prints"},
		{"first name only", Customer{FirstName: "Ada"}, "Ada"},
		{"email last resort", Customer{Email: "ada@example.com"}, "ada@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Name())
		})
	}
}

func TestResultHelpers(t *testing.T) {
	ok := OK(KindOrder, Order{ID: "ord-1"})
	assert.True(t, ok.Success)
	assert.Equal(t, KindOrder, ok.Kind)

	fail := Fail("order %s not found", "9435")
	assert.False(t, fail.Success)
	assert.Equal(t, "order 9435 not found", fail.Error)
	assert.Empty(t, fail.Kind)
}

func TestLastUserMessage(t *testing.T) {
	req := TurnRequest{Messages: []ChatMessage{
		{ID: "m1", Role: RoleUser, Content: "first"},
		{ID: "m2", Role: RoleAssistant, Content: "reply"},
		{ID: "m3", Role: RoleUser, Content: "second"},
	}}
	msg := req.LastUserMessage()
	assert.NotNil(t, msg)
	assert.Equal(t, "second", msg.Content)

	assert.Nil(t, TurnRequest{}.LastUserMessage())
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "customerId", Message: "no customer in context"}
	assert.Contains(t, err.Error(), "customerId")
}
