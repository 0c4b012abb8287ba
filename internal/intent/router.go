// Package intent maps free-text chat messages to support-desk operations.
//
// Routing is a fixed-priority rule table: each rule pairs a compiled
// pattern with the operation it selects and an extractor for its
// arguments. Rules are evaluated top to bottom by one generic loop and
// the first match wins; there is no scoring or ranking. Anything no rule
// claims falls through to the general LLM query operation.
package intent

import (
	"regexp"
	"strings"

	"github.com/printdesk/printdesk/internal/domain"
	"github.com/printdesk/printdesk/internal/logging"
)

// Operation names the router can select. They must match registry keys.
const (
	OpGetOrderByVisualID = "get_order_by_visual_id"
	OpListOrders         = "list_orders"
	OpGetCustomerByEmail = "get_customer_by_email"
	OpListCustomers      = "list_customers"
	OpCreateQuote        = "create_quote"
	OpCreateInvoice      = "create_invoice"
	OpStyleLookup        = "sanmar_style_lookup"
	OpStyleSearch        = "sanmar_style_search"
	OpInventoryCheck     = "sanmar_inventory_check"
	OpOrderSummary       = "order_summary"
	OpGeneralQuery       = "general_query"
)

// Input is one routing request: the raw text plus per-session context and
// the message's sentiment flags.
type Input struct {
	Text      string
	Context   *domain.ConversationContext
	Sentiment domain.Sentiment
}

// Match is the routing outcome: the selected operation and its arguments.
type Match struct {
	Operation string
	Params    map[string]any
	Rule      string // name of the rule that fired, for logging
}

// rule is one entry in the ordered match table.
type rule struct {
	name      string
	re        *regexp.Regexp
	operation string
	// build turns regex capture groups into operation params. Returning an
	// error aborts the turn with a validation failure instead of falling
	// through to later rules.
	build func(groups []string, in Input) (map[string]any, error)
}

// Visual-ID patterns. A visual ID is a short 4-5 digit human-facing order
// number; shorter numeric tokens never match and fall through.
var (
	bareVisualIDRe    = regexp.MustCompile(`^#?(\d{4,5})$`)
	phrasedVisualIDRe = regexp.MustCompile(`(?i)(?:get|show|find|search|display|fetch)(?:\s+me)?\s+(?:order|quote|invoice)\s+(?:with\s+)?(?:visual\s+id\s+)?#?(\d{4,5})\b`)
)

// Creation patterns. "create quote 1234" routes here, not to a visual-ID
// lookup: the phrased visual-ID vocabulary deliberately excludes creation
// verbs, so a creation phrase always outranks a trailing numeric token.
var (
	createQuoteRe   = regexp.MustCompile(`(?i)\b(?:create|make|generate|new|add)\s+(?:a\s+)?(?:new\s+)?(?:quote|estimate)\b`)
	createInvoiceRe = regexp.MustCompile(`(?i)\b(?:create|make|generate|new|add)\s+(?:a\s+)?(?:new\s+)?invoice\b`)
	explicitCustRe  = regexp.MustCompile(`(?i)\bcustomer\s+#?([A-Za-z0-9_-]+)\b`)
)

// Lookup patterns.
var (
	emailRe          = regexp.MustCompile(`([\w.+-]+@[\w-]+\.[\w.-]+)`)
	customerSearchRe = regexp.MustCompile(`(?i)(?:find|search|look\s*up|show)\s+(?:me\s+)?customers?\s+(?:named\s+|called\s+|for\s+)?(.+)$`)
	inventoryRe      = regexp.MustCompile(`(?i)(?:inventory|stock)(?:\s+(?:for|of|on))?\s+#?([A-Za-z]*\d[\w-]*)\b`)
	styleLookupRe    = regexp.MustCompile(`(?i)\b(?:style|product)\s+#?([A-Za-z]*\d[\w-]*)\b`)
	productSearchRe  = regexp.MustCompile(`(?i)(?:find|search|look\s*up|show)\s+(?:me\s+)?(?:products?|styles?|shirts?|garments?)\s+(?:like\s+|for\s+)?(.+)$`)
	listOrdersRe     = regexp.MustCompile(`(?i)\b(?:list|show|recent)\s+(?:me\s+)?(?:my\s+)?(?:orders|quotes|invoices)\b`)
	dashboardRe      = regexp.MustCompile(`(?i)\b(?:dashboard|summary|overview)\b`)
)

// Router selects one operation per message.
type Router struct {
	rules []rule
	log   *logging.Logger
}

// NewRouter creates an intent router with the standard rule table.
func NewRouter(log *logging.Logger) *Router {
	r := &Router{log: log.Sub("intent")}
	r.rules = []rule{
		{
			name:      "visual_id_phrased",
			re:        phrasedVisualIDRe,
			operation: OpGetOrderByVisualID,
			build: func(groups []string, _ Input) (map[string]any, error) {
				return map[string]any{"visualId": groups[1]}, nil
			},
		},
		{
			name:      "visual_id_bare",
			re:        bareVisualIDRe,
			operation: OpGetOrderByVisualID,
			build: func(groups []string, _ Input) (map[string]any, error) {
				return map[string]any{"visualId": groups[1]}, nil
			},
		},
		{
			name:      "create_quote",
			re:        createQuoteRe,
			operation: OpCreateQuote,
			build:     buildCreationParams,
		},
		{
			name:      "create_invoice",
			re:        createInvoiceRe,
			operation: OpCreateInvoice,
			build:     buildCreationParams,
		},
		{
			name:      "customer_by_email",
			re:        emailRe,
			operation: OpGetCustomerByEmail,
			build: func(groups []string, _ Input) (map[string]any, error) {
				return map[string]any{"email": groups[1]}, nil
			},
		},
		{
			name:      "customer_search",
			re:        customerSearchRe,
			operation: OpListCustomers,
			build: func(groups []string, _ Input) (map[string]any, error) {
				return map[string]any{"query": strings.TrimSpace(groups[1])}, nil
			},
		},
		{
			name:      "inventory_check",
			re:        inventoryRe,
			operation: OpInventoryCheck,
			build: func(groups []string, _ Input) (map[string]any, error) {
				return map[string]any{"style": strings.ToUpper(groups[1])}, nil
			},
		},
		{
			name:      "style_lookup",
			re:        styleLookupRe,
			operation: OpStyleLookup,
			build: func(groups []string, _ Input) (map[string]any, error) {
				return map[string]any{"style": strings.ToUpper(groups[1])}, nil
			},
		},
		{
			name:      "product_search",
			re:        productSearchRe,
			operation: OpStyleSearch,
			build: func(groups []string, _ Input) (map[string]any, error) {
				return map[string]any{"term": strings.TrimSpace(groups[1])}, nil
			},
		},
		{
			name:      "list_orders",
			re:        listOrdersRe,
			operation: OpListOrders,
			build: func(_ []string, _ Input) (map[string]any, error) {
				return map[string]any{}, nil
			},
		},
		{
			name:      "dashboard",
			re:        dashboardRe,
			operation: OpOrderSummary,
			build: func(_ []string, _ Input) (map[string]any, error) {
				return map[string]any{}, nil
			},
		},
	}
	return r
}

// Route selects the operation for one message. A returned error is always
// a *domain.ValidationError describing what the user must clarify. On any
// successful match (fallback included) the session context's LastIntent is
// updated before returning.
func (r *Router) Route(in Input) (Match, error) {
	text := strings.TrimSpace(in.Text)

	for _, rl := range r.rules {
		groups := rl.re.FindStringSubmatch(text)
		if groups == nil {
			continue
		}

		params, err := rl.build(groups, in)
		if err != nil {
			return Match{Operation: rl.operation, Rule: rl.name}, err
		}

		r.log.Debug().
			Str("rule", rl.name).
			Str("operation", rl.operation).
			Msg("intent matched")

		if in.Context != nil {
			in.Context.LastIntent = rl.operation
		}
		return Match{Operation: rl.operation, Params: params, Rule: rl.name}, nil
	}

	// Nothing matched: forward the raw text to the LLM with context attached.
	if in.Context != nil {
		in.Context.LastIntent = OpGeneralQuery
	}
	params := map[string]any{"text": text}
	if in.Context != nil {
		params["context"] = *in.Context
	}
	params["sentiment"] = in.Sentiment
	return Match{Operation: OpGeneralQuery, Params: params, Rule: "fallback"}, nil
}

// buildCreationParams resolves the customer for quote/invoice creation:
// explicit "customer <id>" text wins, then the session's last customer.
// No resolvable customer is a validation failure, never a silent no-op.
func buildCreationParams(_ []string, in Input) (map[string]any, error) {
	if m := explicitCustRe.FindStringSubmatch(in.Text); m != nil {
		return map[string]any{"customerId": m[1]}, nil
	}
	if in.Context != nil && in.Context.LastCustomerID != "" {
		return map[string]any{"customerId": in.Context.LastCustomerID}, nil
	}
	return nil, &domain.ValidationError{
		Field:   "customerId",
		Message: "no customer in context; ask which customer this is for",
	}
}
