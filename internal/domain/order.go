package domain

import "time"

// Order statuses that allow the confirmation workflow to proceed. Anything
// else means the order is not paid yet.
const (
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
)

// Order is the commerce system's view of a customer order, reduced to the
// fields the confirmation workflow needs.
type Order struct {
	ID              string
	Number          string
	Status          string
	CustomerName    string
	CustomerEmail   string
	ShippingAddress string
	LineItems       []LineItem
	CreatedAt       time.Time
}

// LineItem carries the print attributes the storefront attached to the order.
type LineItem struct {
	Name string
	Meta map[string]string
}

// Confirmable reports whether the order has been paid for.
func (o *Order) Confirmable() bool {
	return o.Status == OrderStatusProcessing || o.Status == OrderStatusCompleted
}

// Meta returns the first line-item metadata value for key, or "".
func (o *Order) Meta(key string) string {
	for _, item := range o.LineItems {
		if v, ok := item.Meta[key]; ok && v != "" {
			return v
		}
	}
	return ""
}

// LedgerRow is one append-only record summarizing a confirmed order. The
// column order is fixed; the ledger sheet has exactly these ten columns.
type LedgerRow struct {
	Date          string
	OrderNumber   string
	Status        string
	PaperType     string
	PaperSize     string
	BorderSize    string
	Orientation   string
	ProcessedFile string
	CustomerName  string
	Shipping      string
}

// Columns returns the row in sheet column order.
func (r LedgerRow) Columns() []any {
	return []any{
		r.Date,
		r.OrderNumber,
		r.Status,
		r.PaperType,
		r.PaperSize,
		r.BorderSize,
		r.Orientation,
		r.ProcessedFile,
		r.CustomerName,
		r.Shipping,
	}
}
