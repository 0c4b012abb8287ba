package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printdesk/printdesk/internal/domain"
	"github.com/printdesk/printdesk/internal/logging"
)

func testNormalizer() *Normalizer {
	return New(logging.New(nil, "silent"))
}

func TestNormalize_OrderUsesVisualID(t *testing.T) {
	n := testNormalizer()
	res := domain.OK(domain.KindOrder, domain.Order{
		ID:       "T3JkZXItOTkx",
		VisualID: "9435",
	})

	rich, summary := n.Normalize("get_order_by_visual_id", res)
	require.NotNil(t, rich)
	assert.Equal(t, domain.RichTypeOrder, rich.Type)
	assert.Contains(t, summary, "#9435")
	assert.NotContains(t, summary, "T3JkZXItOTkx")
}

func TestNormalize_OrderFallsBackToInternalID(t *testing.T) {
	n := testNormalizer()
	res := domain.OK(domain.KindOrder, domain.Order{ID: "ord-1"})

	_, summary := n.Normalize("get_order", res)
	assert.Contains(t, summary, "#ord-1")
}

func TestNormalize_CreationSummaries(t *testing.T) {
	n := testNormalizer()
	order := domain.Order{ID: "ord-2", VisualID: "8800", CustomerName: "Acme Prints"}

	_, summary := n.Normalize("create_quote", domain.OK(domain.KindOrder, order))
	assert.Equal(t, "Created quote #8800 for Acme Prints.", summary)

	_, summary = n.Normalize("create_invoice", domain.OK(domain.KindOrder, order))
	assert.Equal(t, "Created invoice #8800 for Acme Prints.", summary)
}

func TestNormalize_EmptyList(t *testing.T) {
	n := testNormalizer()
	res := domain.OK(domain.KindList, domain.ListData{
		Element:    "customer",
		Items:      []any{},
		SearchTerm: "smith",
	})

	rich, summary := n.Normalize("list_customers", res)
	require.NotNil(t, rich, "an empty list is still a rich payload")
	assert.Equal(t, `No customers matched "smith".`, summary)

	ld, ok := rich.Content.(domain.ListData)
	require.True(t, ok)
	assert.NotNil(t, ld.Items)
	assert.Len(t, ld.Items, 0)
}

func TestNormalize_ListCounts(t *testing.T) {
	n := testNormalizer()

	_, summary := n.Normalize("list_orders", domain.OK(domain.KindList, domain.ListData{
		Element: "order",
		Items:   []any{domain.Order{ID: "a"}},
	}))
	assert.Equal(t, "I found 1 order.", summary)

	_, summary = n.Normalize("list_orders", domain.OK(domain.KindList, domain.ListData{
		Element: "order",
		Items:   []any{domain.Order{ID: "a"}, domain.Order{ID: "b"}},
	}))
	assert.Equal(t, "I found 2 orders.", summary)
}

func TestNormalize_InventoryPluralizes(t *testing.T) {
	n := testNormalizer()

	_, summary := n.Normalize("sanmar_inventory_check", domain.OK(domain.KindList, domain.ListData{
		Element: "inventory",
		Items: []any{
			domain.InventoryLevel{Style: "PC61", Color: "Black"},
			domain.InventoryLevel{Style: "PC61", Color: "Navy"},
		},
	}))
	assert.Equal(t, "I found 2 inventories.", summary)

	_, summary = n.Normalize("sanmar_inventory_check", domain.OK(domain.KindList, domain.ListData{
		Element:    "inventory",
		Items:      []any{},
		SearchTerm: "ZZ999",
	}))
	assert.Equal(t, `No inventories matched "ZZ999".`, summary)
}

func TestNormalize_AgentPassthrough(t *testing.T) {
	n := testNormalizer()

	t.Run("plain reply", func(t *testing.T) {
		rich, summary := n.Normalize("general_query", domain.OK(domain.KindAgent, domain.AgentPayload{
			Reply: "We ship in 7 business days.",
		}))
		assert.Nil(t, rich)
		assert.Equal(t, "We ship in 7 business days.", summary)
	})

	t.Run("structured payload", func(t *testing.T) {
		rich, summary := n.Normalize("general_query", domain.OK(domain.KindAgent, domain.AgentPayload{
			Type:  "quote_form",
			Reply: "Here's a form to get started.",
			Data:  map[string]any{"fields": []any{"customer"}},
		}))
		require.NotNil(t, rich)
		assert.Equal(t, "quote_form", rich.Type)
		assert.Equal(t, "Here's a form to get started.", summary)
	})
}

func TestNormalize_Failure(t *testing.T) {
	n := testNormalizer()

	rich, summary := n.Normalize("get_order", domain.Fail("No order found with visual ID 9435"))
	assert.Nil(t, rich)
	assert.Equal(t, "No order found with visual ID 9435", summary)
}

// Running the same result through twice must give identical output; the
// normalizer holds no state between calls.
func TestNormalize_Deterministic(t *testing.T) {
	n := testNormalizer()
	res := domain.OK(domain.KindOrder, domain.Order{ID: "ord-3", VisualID: "1001"})

	rich1, sum1 := n.Normalize("get_order_by_visual_id", res)
	rich2, sum2 := n.Normalize("get_order_by_visual_id", res)

	assert.Equal(t, sum1, sum2)
	assert.Equal(t, rich1, rich2)
}

func TestNormalize_Dashboard(t *testing.T) {
	n := testNormalizer()

	rich, summary := n.Normalize("order_summary", domain.OK(domain.KindDashboard, domain.DashboardStats{
		OpenQuotes: 3,
	}))
	require.NotNil(t, rich)
	assert.Equal(t, domain.RichTypeDashboard, rich.Type)
	assert.NotEmpty(t, summary)
}
