package sanmar

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
	return New(Config{
		BaseURL:  srv.URL,
		Account:  "acct-1",
		Username: "shop",
		Password: "secret",
	}, logging.New(nil, "silent"))
}

func TestStyleLookup(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/products/PC61", r.URL.Path)
		assert.Equal(t, "acct-1", r.Header.Get("X-Account"))
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "shop", user)
		assert.Equal(t, "secret", pass)

		json.NewEncoder(w).Encode(map[string]any{
			"style":  "PC61",
			"title":  "Essential Tee",
			"brand":  "Port & Company",
			"colors": []string{"Black", "Navy"},
		})
	})

	res := c.StyleLookup(context.Background(), "PC61")
	require.True(t, res.Success)
	assert.Equal(t, domain.KindProduct, res.Kind)

	p, ok := res.Data.(domain.Product)
	require.True(t, ok)
	assert.Equal(t, "PC61", p.Style)
	assert.Equal(t, "Essential Tee", p.Title)
}

func TestStyleLookup_NotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	res := c.StyleLookup(context.Background(), "ZZ999")
	require.False(t, res.Success)
	assert.Equal(t, `No SanMar style found matching "ZZ999"`, res.Error)
}

func TestStyleSearch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/products", r.URL.Path)
		assert.Equal(t, "hoodie", r.URL.Query().Get("q"))

		json.NewEncoder(w).Encode(map[string]any{
			"products": []map[string]any{
				{"style": "PC78H", "title": "Core Fleece Hoodie"},
				{"style": "K420", "title": "Heavyweight Hoodie"},
			},
		})
	})

	res := c.StyleSearch(context.Background(), "hoodie", 10)
	require.True(t, res.Success)

	list, ok := res.Data.(domain.ListData)
	require.True(t, ok)
	assert.Equal(t, "product", list.Element)
	assert.Equal(t, "hoodie", list.SearchTerm)
	assert.Len(t, list.Items, 2)
}

func TestInventory(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/inventory/PC61", r.URL.Path)
		assert.Equal(t, "Black", r.URL.Query().Get("color"))

		json.NewEncoder(w).Encode(map[string]any{
			"levels": []map[string]any{
				{"color": "Black", "size": "L", "warehouse": "Dallas", "quantity": 240},
			},
		})
	})

	res := c.Inventory(context.Background(), "PC61", "Black", "")
	require.True(t, res.Success)

	list, ok := res.Data.(domain.ListData)
	require.True(t, ok)
	assert.Equal(t, "inventory", list.Element)
	require.Len(t, list.Items, 1)

	level, ok := list.Items[0].(domain.InventoryLevel)
	require.True(t, ok)
	assert.Equal(t, "PC61", level.Style)
	assert.Equal(t, 240, level.Quantity)
}

func TestGet_UpstreamError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("account suspended"))
	})

	res := c.StyleLookup(context.Background(), "PC61")
	require.False(t, res.Success)
	assert.Contains(t, res.Error, "account suspended")
}
