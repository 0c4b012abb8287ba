// Package printavo is a thin client for the Printavo GraphQL API.
//
// Every exported call returns a domain.Result envelope and never lets an
// error escape its boundary: transport failures, GraphQL errors, and
// not-found conditions all come back as {Success:false, Error:...}.
// Transient network failures are retried by the underlying HTTP client;
// nothing above this package retries.
package printavo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/printdesk/printdesk/internal/domain"
	"github.com/printdesk/printdesk/internal/logging"
)

// Config holds Printavo API credentials.
type Config struct {
	URL            string
	Email          string
	Token          string
	TimeoutSeconds int
}

// Client calls the Printavo GraphQL API.
type Client struct {
	cfg  Config
	http *http.Client
	log  *logging.Logger
}

// New creates a Printavo client. Transient failures (connection resets,
// 429s, 5xx) are retried up to three times with backoff.
func New(cfg Config, log *logging.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	std := rc.StandardClient()
	std.Timeout = timeout

	return &Client{
		cfg:  cfg,
		http: std,
		log:  log.Sub("printavo"),
	}
}

// OrderByVisualID looks up one order/quote/invoice by its short visual ID.
func (c *Client) OrderByVisualID(ctx context.Context, visualID string) domain.Result {
	var out struct {
		Orders struct {
			Nodes []gqlOrder `json:"nodes"`
		} `json:"orders"`
	}
	err := c.execute(ctx, queryOrderByVisualID, map[string]any{"visualId": visualID}, &out)
	if err != nil {
		return domain.FailErr(err)
	}
	if len(out.Orders.Nodes) == 0 {
		return domain.Fail("No order found with visual ID %s", visualID)
	}
	return domain.OK(domain.KindOrder, out.Orders.Nodes[0].toDomain())
}

// Order looks up one order by its internal ID.
func (c *Client) Order(ctx context.Context, id string) domain.Result {
	var out struct {
		Order *gqlOrder `json:"order"`
	}
	err := c.execute(ctx, queryOrder, map[string]any{"id": id}, &out)
	if err != nil {
		return domain.FailErr(err)
	}
	if out.Order == nil {
		return domain.Fail("No order found with ID %s", id)
	}
	return domain.OK(domain.KindOrder, out.Order.toDomain())
}

// Orders lists the most recent orders.
func (c *Client) Orders(ctx context.Context, limit int) domain.Result {
	if limit <= 0 {
		limit = 10
	}
	var out struct {
		Orders struct {
			Nodes []gqlOrder `json:"nodes"`
		} `json:"orders"`
	}
	err := c.execute(ctx, queryOrders, map[string]any{"first": limit}, &out)
	if err != nil {
		return domain.FailErr(err)
	}
	items := make([]any, 0, len(out.Orders.Nodes))
	for _, n := range out.Orders.Nodes {
		items = append(items, n.toDomain())
	}
	return domain.OK(domain.KindList, domain.ListData{Element: "order", Items: items})
}

// Customer looks up a customer by internal ID.
func (c *Client) Customer(ctx context.Context, id string) domain.Result {
	var out struct {
		Customer *gqlCustomer `json:"customer"`
	}
	err := c.execute(ctx, queryCustomer, map[string]any{"id": id}, &out)
	if err != nil {
		return domain.FailErr(err)
	}
	if out.Customer == nil {
		return domain.Fail("No customer found with ID %s", id)
	}
	return domain.OK(domain.KindCustomer, out.Customer.toDomain())
}

// CustomerByEmail looks up a customer by email address.
func (c *Client) CustomerByEmail(ctx context.Context, email string) domain.Result {
	var out struct {
		Customers struct {
			Nodes []gqlCustomer `json:"nodes"`
		} `json:"customers"`
	}
	err := c.execute(ctx, queryCustomersSearch, map[string]any{"query": email, "first": 1}, &out)
	if err != nil {
		return domain.FailErr(err)
	}
	if len(out.Customers.Nodes) == 0 {
		return domain.Fail("No customer found with email %s", email)
	}
	return domain.OK(domain.KindCustomer, out.Customers.Nodes[0].toDomain())
}

// Customers searches customers by free-text term.
func (c *Client) Customers(ctx context.Context, query string, limit int) domain.Result {
	if limit <= 0 {
		limit = 10
	}
	var out struct {
		Customers struct {
			Nodes []gqlCustomer `json:"nodes"`
		} `json:"customers"`
	}
	err := c.execute(ctx, queryCustomersSearch, map[string]any{"query": query, "first": limit}, &out)
	if err != nil {
		return domain.FailErr(err)
	}
	items := make([]any, 0, len(out.Customers.Nodes))
	for _, n := range out.Customers.Nodes {
		items = append(items, n.toDomain())
	}
	return domain.OK(domain.KindList, domain.ListData{Element: "customer", Items: items, SearchTerm: query})
}

// CreateQuote creates a quote for the given customer.
func (c *Client) CreateQuote(ctx context.Context, customerID string, input map[string]any) domain.Result {
	return c.createOrder(ctx, mutationQuoteCreate, "quoteCreate", "quote", customerID, input)
}

// CreateInvoice creates an invoice for the given customer.
func (c *Client) CreateInvoice(ctx context.Context, customerID string, input map[string]any) domain.Result {
	return c.createOrder(ctx, mutationInvoiceCreate, "invoiceCreate", "invoice", customerID, input)
}

func (c *Client) createOrder(ctx context.Context, mutation, field, orderType, customerID string, input map[string]any) domain.Result {
	vars := map[string]any{
		"input": buildCreateInput(customerID, input),
	}
	var out map[string]*gqlOrder
	if err := c.execute(ctx, mutation, vars, &out); err != nil {
		return domain.FailErr(err)
	}
	created := out[field]
	if created == nil {
		return domain.Fail("Printavo did not return the created %s", orderType)
	}
	order := created.toDomain()
	order.Type = orderType
	c.log.Info().
		Str("type", orderType).
		Str("id", order.ID).
		Str("visualId", order.VisualID).
		Msg("created order")
	return domain.OK(domain.KindOrder, order)
}

// Summary aggregates recent orders into dashboard stats.
func (c *Client) Summary(ctx context.Context) domain.Result {
	res := c.Orders(ctx, 50)
	if !res.Success {
		return res
	}
	list, ok := res.Data.(domain.ListData)
	if !ok {
		return domain.Fail("unexpected orders payload")
	}

	var stats domain.DashboardStats
	counts := map[string]int{}
	weekOut := time.Now().AddDate(0, 0, 7)
	for _, item := range list.Items {
		o, ok := item.(domain.Order)
		if !ok {
			continue
		}
		stats.RecentCount++
		switch o.Type {
		case "quote":
			stats.OpenQuotes++
		case "invoice":
			stats.OpenInvoices++
		}
		if o.AmountPaid < o.Total {
			stats.UnpaidTotal += o.Total - o.AmountPaid
		}
		if !o.DueAt.IsZero() && o.DueAt.Before(weekOut) {
			stats.DueThisWeek++
		}
		if o.CustomerName != "" {
			counts[o.CustomerName]++
		}
	}
	best := 0
	for name, n := range counts {
		if n > best {
			best = n
			stats.TopCustomer = name
		}
	}
	return domain.OK(domain.KindDashboard, stats)
}

// execute performs one GraphQL request and decodes the data payload into out.
func (c *Client) execute(ctx context.Context, query string, variables map[string]any, out any) error {
	payload, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("email", c.cfg.Email)
	httpReq.Header.Set("token", c.cfg.Token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return &domain.UpstreamError{Service: "printavo", Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.UpstreamError{Service: "printavo", Message: "reading response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return &domain.UpstreamError{Service: "printavo", Status: resp.StatusCode, Message: trimBody(body)}
	}

	var envelope gqlResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &domain.UpstreamError{Service: "printavo", Message: "parsing response: " + err.Error()}
	}
	if len(envelope.Errors) > 0 {
		return &domain.UpstreamError{Service: "printavo", Message: envelope.Errors[0].Message}
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &domain.UpstreamError{Service: "printavo", Message: "decoding data: " + err.Error()}
		}
	}
	return nil
}

// trimBody keeps upstream error text short enough for a log line.
func trimBody(b []byte) string {
	const max = 300
	s := string(bytes.TrimSpace(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

func buildCreateInput(customerID string, extra map[string]any) map[string]any {
	input := map[string]any{"customerId": customerID}
	for k, v := range extra {
		if k == "customerId" {
			continue
		}
		input[k] = v
	}
	return input
}
