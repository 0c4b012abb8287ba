package ops

import (
	"context"

	"github.com/printdesk/printdesk/internal/domain"
)

// ProductAPI is the promotional-products surface the registry calls. The
// sanmar adapter implements it.
type ProductAPI interface {
	StyleLookup(ctx context.Context, style string) domain.Result
	StyleSearch(ctx context.Context, term string, limit int) domain.Result
	Inventory(ctx context.Context, style, color, size string) domain.Result
}

// RegisterProductOps wires the product catalog operations into the registry.
func RegisterProductOps(r *Registry, api ProductAPI) {
	r.Register(Descriptor{
		Name:        "sanmar_style_lookup",
		Description: "Look up a product by style number",
		Required:    []string{"style"},
		Run: func(ctx context.Context, p Params) domain.Result {
			return api.StyleLookup(ctx, p.Str("style"))
		},
	})
	r.Register(Descriptor{
		Name:        "sanmar_style_search",
		Description: "Search the product catalog by keyword",
		Required:    []string{"term"},
		Run: func(ctx context.Context, p Params) domain.Result {
			return api.StyleSearch(ctx, p.Str("term"), p.Int("limit", 10))
		},
	})
	r.Register(Descriptor{
		Name:        "sanmar_inventory_check",
		Description: "Check warehouse inventory for a style",
		Required:    []string{"style"},
		Run: func(ctx context.Context, p Params) domain.Result {
			return api.Inventory(ctx, p.Str("style"), p.Str("color"), p.Str("size"))
		},
	})
}
