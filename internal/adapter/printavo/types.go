package printavo

import (
	"encoding/json"
	"time"

	"github.com/printdesk/printdesk/internal/domain"
)

// gqlRequest is the GraphQL request body.
type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// gqlResponse is the GraphQL response envelope.
type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

// gqlOrder mirrors the Printavo order node shape.
type gqlOrder struct {
	ID         string  `json:"id"`
	VisualID   string  `json:"visualId"`
	Typename   string  `json:"__typename"`
	Nickname   string  `json:"nickname"`
	Total      float64 `json:"total"`
	AmountPaid float64 `json:"amountPaid"`
	DueAt      string  `json:"dueAt"`
	CreatedAt  string  `json:"createdAt"`
	Status     struct {
		Name string `json:"name"`
	} `json:"status"`
	Contact struct {
		ID       string `json:"id"`
		FullName string `json:"fullName"`
	} `json:"contact"`
}

func (o gqlOrder) toDomain() domain.Order {
	return domain.Order{
		ID:           o.ID,
		VisualID:     o.VisualID,
		Type:         orderType(o.Typename),
		Nickname:     o.Nickname,
		Status:       o.Status.Name,
		Total:        o.Total,
		AmountPaid:   o.AmountPaid,
		CustomerID:   o.Contact.ID,
		CustomerName: o.Contact.FullName,
		DueAt:        parseTime(o.DueAt),
		CreatedAt:    parseTime(o.CreatedAt),
	}
}

// gqlCustomer mirrors the Printavo contact node shape.
type gqlCustomer struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"companyName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (c gqlCustomer) toDomain() domain.Customer {
	return domain.Customer{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

func orderType(typename string) string {
	switch typename {
	case "Quote":
		return "quote"
	case "Invoice":
		return "invoice"
	default:
		return "order"
	}
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// GraphQL documents. Field selections match the Printavo v2 schema subset
// this app needs.
const (
	orderFields = `
		id
		visualId
		__typename
		nickname
		total
		amountPaid
		dueAt
		createdAt
		status { name }
		contact { id fullName }`

	queryOrderByVisualID = `query ($visualId: String!) {
		orders(filter: { visualIds: [$visualId] }, first: 1) {
			nodes {` + orderFields + `}
		}
	}`

	queryOrder = `query ($id: ID!) {
		order(id: $id) {` + orderFields + `}
	}`

	queryOrders = `query ($first: Int!) {
		orders(first: $first, sortOn: CREATED_AT, sortDescending: true) {
			nodes {` + orderFields + `}
		}
	}`

	customerFields = `
		id
		firstName
		lastName
		companyName
		email
		phone`

	queryCustomer = `query ($id: ID!) {
		customer(id: $id) {` + customerFields + `}
	}`

	queryCustomersSearch = `query ($query: String!, $first: Int!) {
		customers(query: $query, first: $first) {
			nodes {` + customerFields + `}
		}
	}`

	mutationQuoteCreate = `mutation ($input: QuoteCreateInput!) {
		quoteCreate(input: $input) {` + orderFields + `}
	}`

	mutationInvoiceCreate = `mutation ($input: InvoiceCreateInput!) {
		invoiceCreate(input: $input) {` + orderFields + `}
	}`
)
