package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printdesk/printdesk/internal/domain"
	"github.com/printdesk/printdesk/internal/logging"
)

func testRouter() *Router {
	return NewRouter(logging.New(nil, "silent"))
}

func TestRouter_VisualID(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		visualID string
	}{
		{"bare number", "9435", "9435"},
		{"bare with hash", "#9435", "9435"},
		{"five digits", "12345", "12345"},
		{"phrased show", "show me order #5678", "5678"},
		{"phrased find", "find order 1234", "1234"},
		{"phrased get quote", "get quote 4411", "4411"},
		{"phrased with visual id", "fetch invoice with visual id 9912", "9912"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRouter()
			ctx := domain.ConversationContext{}

			m, err := r.Route(Input{Text: tt.text, Context: &ctx})
			require.NoError(t, err)
			assert.Equal(t, OpGetOrderByVisualID, m.Operation)
			assert.Equal(t, tt.visualID, m.Params["visualId"])
			assert.Equal(t, OpGetOrderByVisualID, ctx.LastIntent)
		})
	}
}

func TestRouter_ShortNumbersFallThrough(t *testing.T) {
	r := testRouter()

	for _, text := range []string{"123", "#99", "1"} {
		m, err := r.Route(Input{Text: text, Context: &domain.ConversationContext{}})
		require.NoError(t, err)
		assert.Equal(t, OpGeneralQuery, m.Operation, "text %q", text)
	}
}

// A creation phrase with a trailing number is a creation, not an order
// lookup: the visual-ID rules only fire on lookup verbs or on a message
// that is nothing but the number.
func TestRouter_CreateQuoteOutranksVisualID(t *testing.T) {
	r := testRouter()
	ctx := domain.ConversationContext{LastCustomerID: "cust-1"}

	m, err := r.Route(Input{Text: "create quote 1234", Context: &ctx})
	require.NoError(t, err)
	assert.Equal(t, OpCreateQuote, m.Operation)
	assert.Equal(t, "cust-1", m.Params["customerId"])
}

func TestRouter_Creation(t *testing.T) {
	t.Run("explicit customer in text", func(t *testing.T) {
		r := testRouter()
		m, err := r.Route(Input{Text: "create a quote for customer 881", Context: &domain.ConversationContext{}})
		require.NoError(t, err)
		assert.Equal(t, OpCreateQuote, m.Operation)
		assert.Equal(t, "881", m.Params["customerId"])
	})

	t.Run("customer from context", func(t *testing.T) {
		r := testRouter()
		ctx := domain.ConversationContext{LastCustomerID: "cust-42"}
		m, err := r.Route(Input{Text: "make a new invoice", Context: &ctx})
		require.NoError(t, err)
		assert.Equal(t, OpCreateInvoice, m.Operation)
		assert.Equal(t, "cust-42", m.Params["customerId"])
	})

	t.Run("no customer resolvable", func(t *testing.T) {
		r := testRouter()
		_, err := r.Route(Input{Text: "create a quote", Context: &domain.ConversationContext{}})
		require.Error(t, err)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "customerId", verr.Field)
	})
}

func TestRouter_CustomerLookups(t *testing.T) {
	r := testRouter()

	m, err := r.Route(Input{Text: "look up woodsy@example.com", Context: &domain.ConversationContext{}})
	require.NoError(t, err)
	assert.Equal(t, OpGetCustomerByEmail, m.Operation)
	assert.Equal(t, "woodsy@example.com", m.Params["email"])

	m, err = r.Route(Input{Text: "find customers named Smith", Context: &domain.ConversationContext{}})
	require.NoError(t, err)
	assert.Equal(t, OpListCustomers, m.Operation)
	assert.Equal(t, "Smith", m.Params["query"])
}

func TestRouter_Products(t *testing.T) {
	r := testRouter()

	m, err := r.Route(Input{Text: "style PC61", Context: &domain.ConversationContext{}})
	require.NoError(t, err)
	assert.Equal(t, OpStyleLookup, m.Operation)
	assert.Equal(t, "PC61", m.Params["style"])

	m, err = r.Route(Input{Text: "do you have stock of pc61?", Context: &domain.ConversationContext{}})
	require.NoError(t, err)
	assert.Equal(t, OpInventoryCheck, m.Operation)
	assert.Equal(t, "PC61", m.Params["style"], "style is uppercased")

	m, err = r.Route(Input{Text: "show me products like hoodies", Context: &domain.ConversationContext{}})
	require.NoError(t, err)
	assert.Equal(t, OpStyleSearch, m.Operation)
	assert.Equal(t, "hoodies", m.Params["term"])
}

func TestRouter_OrdersAndDashboard(t *testing.T) {
	r := testRouter()

	m, err := r.Route(Input{Text: "show me recent orders", Context: &domain.ConversationContext{}})
	require.NoError(t, err)
	assert.Equal(t, OpListOrders, m.Operation)

	m, err = r.Route(Input{Text: "give me the dashboard", Context: &domain.ConversationContext{}})
	require.NoError(t, err)
	assert.Equal(t, OpOrderSummary, m.Operation)
}

func TestRouter_Fallback(t *testing.T) {
	r := testRouter()
	ctx := domain.ConversationContext{LastOrderID: "ord-7"}
	sentiment := domain.Sentiment{IsUrgent: true}

	m, err := r.Route(Input{Text: "what are your turnaround times?", Context: &ctx, Sentiment: sentiment})
	require.NoError(t, err)
	assert.Equal(t, OpGeneralQuery, m.Operation)
	assert.Equal(t, "fallback", m.Rule)
	assert.Equal(t, "what are your turnaround times?", m.Params["text"])
	assert.Equal(t, ctx, m.Params["context"])
	assert.Equal(t, sentiment, m.Params["sentiment"])
	assert.Equal(t, OpGeneralQuery, ctx.LastIntent)
}

func TestDetectSentiment(t *testing.T) {
	tests := []struct {
		text string
		want domain.Sentiment
	}{
		{"I need this ASAP, it's urgent!", domain.Sentiment{IsUrgent: true}},
		{"I'm confused, what do you mean?", domain.Sentiment{IsConfused: true}},
		{"Thanks, that's perfect!", domain.Sentiment{IsPositive: true}},
		{"This is unacceptable and wrong.", domain.Sentiment{IsNegative: true}},
		{"This is urgent and I am frustrated.", domain.Sentiment{IsUrgent: true, IsNegative: true}},
		{"where is my order", domain.Sentiment{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectSentiment(tt.text), "text %q", tt.text)
	}
}
