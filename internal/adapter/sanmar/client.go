// Package sanmar is a thin client for the SanMar supplier product API.
//
// Like the other adapters it returns domain.Result envelopes and keeps all
// transport and decode failures behind its own boundary.
package sanmar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/printdesk/printdesk/internal/domain"
	"github.com/printdesk/printdesk/internal/logging"
)

// Config holds SanMar API credentials.
type Config struct {
	BaseURL  string
	Account  string
	Username string
	Password string
}

// Client calls the SanMar product and inventory endpoints.
type Client struct {
	cfg  Config
	http *http.Client
	log  *logging.Logger
}

// New creates a SanMar client with transient-failure retry.
func New(cfg Config, log *logging.Logger) *Client {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil

	std := rc.StandardClient()
	std.Timeout = 30 * time.Second

	return &Client{
		cfg:  cfg,
		http: std,
		log:  log.Sub("sanmar"),
	}
}

// StyleLookup fetches catalog details for one style number.
func (c *Client) StyleLookup(ctx context.Context, style string) domain.Result {
	var out productResponse
	if err := c.get(ctx, "/v1/products/"+url.PathEscape(style), nil, &out); err != nil {
		return domain.FailErr(err)
	}
	if out.Style == "" {
		return domain.Fail("No SanMar style found matching %q", style)
	}
	return domain.OK(domain.KindProduct, out.toDomain())
}

// StyleSearch searches the catalog by free-text term.
func (c *Client) StyleSearch(ctx context.Context, term string, limit int) domain.Result {
	if limit <= 0 {
		limit = 10
	}
	var out struct {
		Products []productResponse `json:"products"`
	}
	q := url.Values{"q": {term}, "limit": {fmt.Sprint(limit)}}
	if err := c.get(ctx, "/v1/products", q, &out); err != nil {
		return domain.FailErr(err)
	}
	items := make([]any, 0, len(out.Products))
	for _, p := range out.Products {
		items = append(items, p.toDomain())
	}
	return domain.OK(domain.KindList, domain.ListData{Element: "product", Items: items, SearchTerm: term})
}

// Inventory returns stock levels for a style, optionally filtered by color
// and size.
func (c *Client) Inventory(ctx context.Context, style, color, size string) domain.Result {
	var out struct {
		Levels []inventoryResponse `json:"levels"`
	}
	q := url.Values{}
	if color != "" {
		q.Set("color", color)
	}
	if size != "" {
		q.Set("size", size)
	}
	if err := c.get(ctx, "/v1/inventory/"+url.PathEscape(style), q, &out); err != nil {
		return domain.FailErr(err)
	}
	items := make([]any, 0, len(out.Levels))
	for _, l := range out.Levels {
		items = append(items, l.toDomain(style))
	}
	return domain.OK(domain.KindList, domain.ListData{Element: "inventory", Items: items, SearchTerm: style})
}

// get performs one authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.cfg.Account != "" {
		httpReq.Header.Set("X-Account", c.cfg.Account)
	}
	if c.cfg.Username != "" {
		httpReq.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return &domain.UpstreamError{Service: "sanmar", Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.UpstreamError{Service: "sanmar", Message: "reading response: " + err.Error()}
	}
	if resp.StatusCode == http.StatusNotFound {
		// Caller turns the zero value into a friendly not-found message.
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return &domain.UpstreamError{Service: "sanmar", Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &domain.UpstreamError{Service: "sanmar", Message: "parsing response: " + err.Error()}
	}
	return nil
}

// productResponse mirrors the SanMar product payload.
type productResponse struct {
	Style       string   `json:"style"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	PriceMin    float64  `json:"priceMin"`
	PriceMax    float64  `json:"priceMax"`
}

func (p productResponse) toDomain() domain.Product {
	return domain.Product{
		Style:       p.Style,
		Title:       p.Title,
		Brand:       p.Brand,
		Description: p.Description,
		Colors:      p.Colors,
		Sizes:       p.Sizes,
		PriceMin:    p.PriceMin,
		PriceMax:    p.PriceMax,
	}
}

// inventoryResponse mirrors one SanMar inventory row.
type inventoryResponse struct {
	Color     string `json:"color"`
	Size      string `json:"size"`
	Warehouse string `json:"warehouse"`
	Quantity  int    `json:"quantity"`
}

func (i inventoryResponse) toDomain(style string) domain.InventoryLevel {
	return domain.InventoryLevel{
		Style:     style,
		Color:     i.Color,
		Size:      i.Size,
		Warehouse: i.Warehouse,
		Quantity:  i.Quantity,
	}
}
