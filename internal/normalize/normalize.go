// Package normalize turns operation results into chat replies. Every
// backend operation returns a tagged domain.Result; the normalizer maps
// the tag to a rich message payload for the UI plus a one-line text
// summary, so the orchestrator never inspects result shapes itself.
package normalize

import (
	"fmt"
	"strings"

	"github.com/printdesk/printdesk/internal/domain"
	"github.com/printdesk/printdesk/internal/logging"
)

// Normalizer converts operation results into reply parts. It is stateless;
// the same result always produces the same output.
type Normalizer struct {
	log *logging.Logger
}

// New creates a normalizer.
func New(log *logging.Logger) *Normalizer {
	return &Normalizer{log: log.Sub("normalize")}
}

// Normalize maps one operation result to its rich payload and summary
// line. Failed results produce a plain-text summary and no rich payload.
func (n *Normalizer) Normalize(operation string, res domain.Result) (*domain.RichMessageData, string) {
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "Something went wrong handling that request."
		}
		return nil, msg
	}

	switch res.Kind {
	case domain.KindOrder:
		return n.order(operation, res.Data)
	case domain.KindCustomer:
		return n.customer(res.Data)
	case domain.KindProduct:
		return n.product(res.Data)
	case domain.KindList:
		return n.list(res.Data)
	case domain.KindDashboard:
		return &domain.RichMessageData{Type: domain.RichTypeDashboard, Content: res.Data},
			"Here's a summary of recent order activity."
	case domain.KindForm:
		return &domain.RichMessageData{Type: domain.RichTypeForm, Content: res.Data},
			"Please fill in the details below."
	case domain.KindAgent:
		return n.agent(res.Data)
	default:
		n.log.Error().
			Str("operation", operation).
			Str("kind", string(res.Kind)).
			Msg("result kind has no normalization rule")
		return nil, "I got a response I don't know how to display."
	}
}

func (n *Normalizer) order(operation string, data any) (*domain.RichMessageData, string) {
	rich := &domain.RichMessageData{Type: domain.RichTypeOrder, Content: data}

	order, ok := data.(domain.Order)
	if !ok {
		return rich, "Here are the order details."
	}

	// Summaries always use the short human-facing ID when one exists.
	switch operation {
	case "create_quote":
		return rich, fmt.Sprintf("Created quote #%s for %s.", order.DisplayID(), order.CustomerName)
	case "create_invoice":
		return rich, fmt.Sprintf("Created invoice #%s for %s.", order.DisplayID(), order.CustomerName)
	default:
		return rich, fmt.Sprintf("Here are the details for order #%s.", order.DisplayID())
	}
}

func (n *Normalizer) customer(data any) (*domain.RichMessageData, string) {
	rich := &domain.RichMessageData{Type: domain.RichTypeCustomer, Content: data}
	if c, ok := data.(domain.Customer); ok {
		return rich, fmt.Sprintf("Here's what I have for %s.", c.Name())
	}
	return rich, "Here are the customer details."
}

func (n *Normalizer) product(data any) (*domain.RichMessageData, string) {
	rich := &domain.RichMessageData{Type: domain.RichTypeProduct, Content: data}
	if p, ok := data.(domain.Product); ok {
		return rich, fmt.Sprintf("Here are the details for style %s.", p.Style)
	}
	return rich, "Here are the product details."
}

// list handles every list-shaped result. An empty list is still a rich
// payload with zero items; the summary says so instead of pretending
// nothing happened.
func (n *Normalizer) list(data any) (*domain.RichMessageData, string) {
	ld, ok := data.(domain.ListData)
	if !ok {
		return &domain.RichMessageData{Type: domain.RichTypeDashboard, Content: data}, "Here's what I found."
	}

	rich := &domain.RichMessageData{Type: richTypeForElement(ld.Element), Content: ld}
	if len(ld.Items) == 0 {
		if ld.SearchTerm != "" {
			return rich, fmt.Sprintf("No %s matched \"%s\".", plural(ld.Element), ld.SearchTerm)
		}
		return rich, fmt.Sprintf("No %s found.", plural(ld.Element))
	}
	if len(ld.Items) == 1 {
		return rich, fmt.Sprintf("I found 1 %s.", ld.Element)
	}
	return rich, fmt.Sprintf("I found %d %s.", len(ld.Items), plural(ld.Element))
}

// plural forms the element word for list summaries. "inventory" is the
// only element that does not take a bare "s".
func plural(element string) string {
	if strings.HasSuffix(element, "y") {
		return element[:len(element)-1] + "ies"
	}
	return element + "s"
}

// agent passes through structured LLM payloads unchanged. A payload with
// no structured type is a plain text reply.
func (n *Normalizer) agent(data any) (*domain.RichMessageData, string) {
	payload, ok := data.(domain.AgentPayload)
	if !ok {
		return nil, "I'm not sure how to answer that."
	}
	if payload.Type != "" {
		return &domain.RichMessageData{Type: payload.Type, Content: payload.Data}, payload.Reply
	}
	return nil, payload.Reply
}

func richTypeForElement(element string) string {
	switch element {
	case "order", "quote", "invoice":
		return domain.RichTypeOrder
	case "customer":
		return domain.RichTypeCustomer
	case "product", "style":
		return domain.RichTypeProduct
	default:
		return domain.RichTypeDashboard
	}
}
