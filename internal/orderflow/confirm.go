// Package orderflow runs the order confirmation workflow: commerce lookup,
// artifact relocation, ledger append, customer notification.
package orderflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

// Confirmer wires the external collaborators for the confirmation workflow.
// All fields are set once at startup.
type Confirmer struct {
	Publisher domain.Publisher
	Ledger    domain.Ledger
	Commerce  domain.Commerce
	Mailer    domain.Mailer

	// DedupeLedger switches the ledger from append-only to probe-then-append.
	// Off by default: re-confirming an order appends a duplicate row, which is
	// the documented audit-log behavior.
	DedupeLedger bool

	// CallTimeout bounds each external call; zero disables the bound.
	CallTimeout time.Duration

	Logger zerolog.Logger
}

// Result reports what the workflow did. On error it still carries the files
// moved so far, so an operator can reconcile a partial relocation.
type Result struct {
	Order          *domain.Order
	Confirmed      bool
	MovedFiles     []string
	LedgerAppended bool
	LedgerSkipped  bool
	Notified       bool
}

// Confirm runs the workflow for one order id. An unpaid order returns a
// Result with Confirmed=false and no error; every step after the guard is a
// side effect, so nothing runs for unpaid orders.
func (c *Confirmer) Confirm(ctx context.Context, id string) (*Result, error) {
	res := &Result{}
	id = strings.TrimSpace(id)
	if id == "" {
		return res, fmt.Errorf("%w: order id is required", domain.ErrValidation)
	}
	if c.Commerce == nil {
		return res, fmt.Errorf("%w: commerce lookup is not configured", domain.ErrPublish)
	}

	order, err := call(ctx, c.CallTimeout, func(tctx context.Context) (*domain.Order, error) {
		return c.Commerce.Order(tctx, id)
	})
	if err != nil {
		return res, err
	}
	res.Order = order

	if !order.Confirmable() {
		c.Logger.Info().Str("order", id).Str("status", order.Status).Msg("order not yet confirmed")
		return res, nil
	}

	files, err := call(ctx, c.CallTimeout, func(tctx context.Context) ([]domain.Artifact, error) {
		return c.Publisher.ListPending(tctx, id)
	})
	if err != nil {
		return res, err
	}
	if len(files) == 0 {
		return res, fmt.Errorf("%w: no pending files for order %s", domain.ErrNotFound, id)
	}

	for _, f := range files {
		if err := callErr(ctx, c.CallTimeout, func(tctx context.Context) error {
			return c.Publisher.MoveToConfirmed(tctx, f.ID)
		}); err != nil {
			return res, fmt.Errorf("moved %d of %d files: %w", len(res.MovedFiles), len(files), err)
		}
		res.MovedFiles = append(res.MovedFiles, f.Name)
	}

	row := buildRow(order, res.MovedFiles)
	if c.DedupeLedger {
		exists, err := call(ctx, c.CallTimeout, func(tctx context.Context) (bool, error) {
			return c.Ledger.HasOrder(tctx, order.Number)
		})
		if err != nil {
			return res, err
		}
		res.LedgerSkipped = exists
	}
	if !res.LedgerSkipped {
		if err := callErr(ctx, c.CallTimeout, func(tctx context.Context) error {
			return c.Ledger.Append(tctx, row)
		}); err != nil {
			return res, err
		}
		res.LedgerAppended = true
	}
	res.Confirmed = true

	if c.Mailer != nil && order.CustomerEmail != "" {
		if err := callErr(ctx, c.CallTimeout, func(tctx context.Context) error {
			return c.Mailer.SendOrderConfirmed(tctx, order.CustomerEmail, order)
		}); err != nil {
			c.Logger.Warn().Err(err).Str("order", id).Msg("confirmation mail failed")
		} else {
			res.Notified = true
		}
	}

	return res, nil
}

// call runs one external operation under the configured timeout.
func call[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return fn(ctx)
}

func callErr(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	_, err := call(ctx, timeout, func(tctx context.Context) (struct{}, error) {
		return struct{}{}, fn(tctx)
	})
	return err
}

func buildRow(order *domain.Order, moved []string) domain.LedgerRow {
	processed := ""
	for _, name := range moved {
		if strings.HasPrefix(name, "processed_") {
			processed = name
			break
		}
	}
	if processed == "" && len(moved) > 0 {
		processed = moved[0]
	}
	return domain.LedgerRow{
		Date:          time.Now().Format("2006-01-02"),
		OrderNumber:   order.Number,
		Status:        order.Status,
		PaperType:     order.Meta("paper_type"),
		PaperSize:     order.Meta("paper_size"),
		BorderSize:    order.Meta("border_size"),
		Orientation:   order.Meta("orientation"),
		ProcessedFile: processed,
		CustomerName:  order.CustomerName,
		Shipping:      order.ShippingAddress,
	}
}
