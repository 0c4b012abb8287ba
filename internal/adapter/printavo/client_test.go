package printavo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printdesk/printdesk/internal/domain"
	"github.com/printdesk/printdesk/internal/logging"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{URL: srv.URL, Email: "shop@example.com", Token: "tok"}, logging.New(nil, "silent"))
}

func gqlData(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	json.NewEncoder(w).Encode(map[string]any{"data": json.RawMessage(raw)})
}

func TestOrderByVisualID(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "shop@example.com", r.Header.Get("email"))
		assert.Equal(t, "tok", r.Header.Get("token"))

		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "9435", req.Variables["visualId"])

		gqlData(t, w, map[string]any{
			"orders": map[string]any{
				"nodes": []map[string]any{{
					"id":         "T3JkZXItOTkx",
					"visualId":   "9435",
					"__typename": "Invoice",
					"nickname":   "Fall tees",
					"total":      412.50,
					"status":     map[string]any{"name": "In Production"},
					"contact":    map[string]any{"id": "cust-1", "fullName": "Pat Woods"},
				}},
			},
		})
	})

	res := c.OrderByVisualID(context.Background(), "9435")
	require.True(t, res.Success)
	assert.Equal(t, domain.KindOrder, res.Kind)

	order, ok := res.Data.(domain.Order)
	require.True(t, ok)
	assert.Equal(t, "9435", order.VisualID)
	assert.Equal(t, "invoice", order.Type)
	assert.Equal(t, "In Production", order.Status)
	assert.Equal(t, "cust-1", order.CustomerID)
	assert.Equal(t, "Pat Woods", order.CustomerName)
}

func TestOrderByVisualID_NotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gqlData(t, w, map[string]any{"orders": map[string]any{"nodes": []any{}}})
	})

	res := c.OrderByVisualID(context.Background(), "1111")
	require.False(t, res.Success)
	assert.Equal(t, "No order found with visual ID 1111", res.Error)
}

func TestExecute_GraphQLErrorEnvelope(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"message": "Not authorized"}},
		})
	})

	res := c.Order(context.Background(), "ord-1")
	require.False(t, res.Success)
	assert.Contains(t, res.Error, "Not authorized")
}

func TestCustomers_SearchTermOnList(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gqlData(t, w, map[string]any{
			"customers": map[string]any{
				"nodes": []map[string]any{
					{"id": "c1", "firstName": "Sam", "lastName": "Smith"},
					{"id": "c2", "companyName": "Smith Printing"},
				},
			},
		})
	})

	res := c.Customers(context.Background(), "smith", 10)
	require.True(t, res.Success)
	assert.Equal(t, domain.KindList, res.Kind)

	list, ok := res.Data.(domain.ListData)
	require.True(t, ok)
	assert.Equal(t, "customer", list.Element)
	assert.Equal(t, "smith", list.SearchTerm)
	assert.Len(t, list.Items, 2)
}

func TestCreateQuote(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		input, ok := req.Variables["input"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "cust-7", input["customerId"])
		assert.Equal(t, "Spring run", input["nickname"])

		gqlData(t, w, map[string]any{
			"quoteCreate": map[string]any{
				"id":         "ord-new",
				"visualId":   "7001",
				"__typename": "Quote",
				"contact":    map[string]any{"id": "cust-7", "fullName": "Acme"},
			},
		})
	})

	res := c.CreateQuote(context.Background(), "cust-7", map[string]any{"nickname": "Spring run"})
	require.True(t, res.Success)

	order, ok := res.Data.(domain.Order)
	require.True(t, ok)
	assert.Equal(t, "quote", order.Type)
	assert.Equal(t, "7001", order.VisualID)
}

func TestSummary_Aggregates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gqlData(t, w, map[string]any{
			"orders": map[string]any{
				"nodes": []map[string]any{
					{"id": "a", "__typename": "Quote", "total": 100.0, "amountPaid": 0.0,
						"contact": map[string]any{"id": "c1", "fullName": "Acme"}},
					{"id": "b", "__typename": "Invoice", "total": 250.0, "amountPaid": 250.0,
						"contact": map[string]any{"id": "c1", "fullName": "Acme"}},
					{"id": "c", "__typename": "Invoice", "total": 80.0, "amountPaid": 30.0,
						"contact": map[string]any{"id": "c2", "fullName": "Bolt Co"}},
				},
			},
		})
	})

	res := c.Summary(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, domain.KindDashboard, res.Kind)

	stats, ok := res.Data.(domain.DashboardStats)
	require.True(t, ok)
	assert.Equal(t, 3, stats.RecentCount)
	assert.Equal(t, 1, stats.OpenQuotes)
	assert.Equal(t, 2, stats.OpenInvoices)
	assert.InDelta(t, 150.0, stats.UnpaidTotal, 0.001)
	assert.Equal(t, "Acme", stats.TopCustomer)
}
