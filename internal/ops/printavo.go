package ops

import (
	"context"

	"github.com/printdesk/printdesk/internal/domain"
)

// OrderAPI is the order-management surface the registry calls. The
// printavo adapter implements it.
type OrderAPI interface {
	OrderByVisualID(ctx context.Context, visualID string) domain.Result
	Order(ctx context.Context, id string) domain.Result
	Orders(ctx context.Context, limit int) domain.Result
	Customer(ctx context.Context, id string) domain.Result
	CustomerByEmail(ctx context.Context, email string) domain.Result
	Customers(ctx context.Context, query string, limit int) domain.Result
	CreateQuote(ctx context.Context, customerID string, input map[string]any) domain.Result
	CreateInvoice(ctx context.Context, customerID string, input map[string]any) domain.Result
	Summary(ctx context.Context) domain.Result
}

// RegisterOrderOps wires the order-management operations into the registry.
func RegisterOrderOps(r *Registry, api OrderAPI) {
	r.Register(Descriptor{
		Name:        "get_order_by_visual_id",
		Description: "Fetch an order by its short human-facing visual ID",
		Required:    []string{"visualId"},
		Run: func(ctx context.Context, p Params) domain.Result {
			return api.OrderByVisualID(ctx, p.Str("visualId"))
		},
	})
	r.Register(Descriptor{
		Name:        "get_order",
		Description: "Fetch an order by its internal ID",
		Required:    []string{"id"},
		Run: func(ctx context.Context, p Params) domain.Result {
			return api.Order(ctx, p.Str("id"))
		},
	})
	r.Register(Descriptor{
		Name:        "list_orders",
		Description: "List recent orders, newest first",
		Run: func(ctx context.Context, p Params) domain.Result {
			return api.Orders(ctx, p.Int("limit", 10))
		},
	})
	r.Register(Descriptor{
		Name:        "get_customer",
		Description: "Fetch a customer by ID",
		Required:    []string{"id"},
		Run: func(ctx context.Context, p Params) domain.Result {
			return api.Customer(ctx, p.Str("id"))
		},
	})
	r.Register(Descriptor{
		Name:        "get_customer_by_email",
		Description: "Fetch a customer by email address",
		Required:    []string{"email"},
		Run: func(ctx context.Context, p Params) domain.Result {
			return api.CustomerByEmail(ctx, p.Str("email"))
		},
	})
	r.Register(Descriptor{
		Name:        "list_customers",
		Description: "Search customers by name or company",
		Required:    []string{"query"},
		Run: func(ctx context.Context, p Params) domain.Result {
			return api.Customers(ctx, p.Str("query"), p.Int("limit", 10))
		},
	})
	r.Register(Descriptor{
		Name:        "create_quote",
		Description: "Create a quote for a customer",
		Required:    []string{"customerId"},
		Run: func(ctx context.Context, p Params) domain.Result {
			extra, _ := p["input"].(map[string]any)
			return api.CreateQuote(ctx, p.Str("customerId"), extra)
		},
	})
	r.Register(Descriptor{
		Name:        "create_invoice",
		Description: "Create an invoice for a customer",
		Required:    []string{"customerId"},
		Run: func(ctx context.Context, p Params) domain.Result {
			extra, _ := p["input"].(map[string]any)
			return api.CreateInvoice(ctx, p.Str("customerId"), extra)
		},
	})
	r.Register(Descriptor{
		Name:        "order_summary",
		Description: "Aggregate recent order activity into dashboard stats",
		Run: func(ctx context.Context, _ Params) domain.Result {
			return api.Summary(ctx)
		},
	})
}
