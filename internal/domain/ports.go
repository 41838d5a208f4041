package domain

import "context"

// Publisher persists artifacts in durable storage. Uploads land in the
// pending area; confirmation moves them to the confirmed area.
type Publisher interface {
	Upload(ctx context.Context, data []byte, name, mimeType string) (Artifact, error)
	ListPending(ctx context.Context, nameContains string) ([]Artifact, error)
	MoveToConfirmed(ctx context.Context, artifactID string) error
}

// Ledger appends order rows to the tabular log. HasOrder supports the
// optional dedupe probe; implementations may scan the order-number column.
type Ledger interface {
	Append(ctx context.Context, row LedgerRow) error
	HasOrder(ctx context.Context, orderNumber string) (bool, error)
}

// Commerce looks up orders in the storefront.
type Commerce interface {
	Order(ctx context.Context, id string) (*Order, error)
}

// Mailer sends the customer-facing confirmation mail. Callers treat it as
// fire-and-forget: a send failure is logged, never propagated.
type Mailer interface {
	SendOrderConfirmed(ctx context.Context, to string, order *Order) error
}
