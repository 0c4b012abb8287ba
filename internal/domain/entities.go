package domain

import "time"

// Order is the normalized shape of a Printavo order, quote, or invoice.
// VisualID is the short human-facing identifier, distinct from the opaque ID.
type Order struct {
	ID           string    `json:"id"`
	VisualID     string    `json:"visualId,omitempty"`
	Type         string    `json:"type,omitempty"` // "quote" | "invoice" | "order"
	Nickname     string    `json:"nickname,omitempty"`
	Status       string    `json:"status,omitempty"`
	Total        float64   `json:"total,omitempty"`
	AmountPaid   float64   `json:"amountPaid,omitempty"`
	CustomerID   string    `json:"customerId,omitempty"`
	CustomerName string    `json:"customerName,omitempty"`
	DueAt        time.Time `json:"dueAt,omitzero"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
}

// DisplayID returns the identifier shown to users: the visual ID when
// present, otherwise the internal one.
func (o Order) DisplayID() string {
	if o.VisualID != "" {
		return o.VisualID
	}
	return o.ID
}

// Customer is a normalized Printavo customer.
type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Company   string `json:"company,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Name returns the customer's display name.
func (c Customer) Name() string {
	switch {
	case c.FirstName != "" && c.LastName != "":
		return c.FirstName + " " + c.LastName
	case c.Company != "":
		return c.Company
	case c.FirstName != "":
		return c.FirstName
	default:
		return c.Email
	}
}

// Product is a normalized SanMar catalog style.
type Product struct {
	Style       string   `json:"style"`
	Title       string   `json:"title,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Description string   `json:"description,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	PriceMin    float64  `json:"priceMin,omitempty"`
	PriceMax    float64  `json:"priceMax,omitempty"`
}

// InventoryLevel is stock for one style/color/size combination.
type InventoryLevel struct {
	Style     string `json:"style"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	Warehouse string `json:"warehouse,omitempty"`
	Quantity  int    `json:"quantity"`
}

// DashboardStats is the payload for the order summary dashboard.
type DashboardStats struct {
	OpenQuotes   int     `json:"openQuotes"`
	OpenInvoices int     `json:"openInvoices"`
	UnpaidTotal  float64 `json:"unpaidTotal"`
	DueThisWeek  int     `json:"dueThisWeek"`
	RecentCount  int     `json:"recentCount"`
	TopCustomer  string  `json:"topCustomer,omitempty"`
}
