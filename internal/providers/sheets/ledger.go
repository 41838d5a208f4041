// Package sheets appends confirmed orders to the Google Sheets ledger.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
	"github.com/brian-kiplagat/image-resizer/internal/infra/credentials"
)

// Order numbers live in the second ledger column.
const orderNumberColumn = "B"

// Ledger appends fixed ten-column rows to one sheet of one spreadsheet.
type Ledger struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewLedger builds a Sheets client authenticated with the service account.
func NewLedger(ctx context.Context, sa *credentials.ServiceAccount, spreadsheetID, sheetName string) (*Ledger, error) {
	if spreadsheetID == "" {
		return nil, errors.New("sheets: spreadsheet id is required")
	}
	if sheetName == "" {
		sheetName = "Orders"
	}
	cfg, err := sa.JWTConfig(sheets.SpreadsheetsScope)
	if err != nil {
		return nil, err
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets: new service: %w", err)
	}
	return &Ledger{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// Append adds one row at the bottom of the ledger. The ledger is append-only;
// nothing here deduplicates (see HasOrder for the optional probe).
func (l *Ledger) Append(ctx context.Context, row domain.LedgerRow) error {
	vr := &sheets.ValueRange{Values: [][]any{row.Columns()}}
	_, err := l.svc.Spreadsheets.Values.
		Append(l.spreadsheetID, l.sheetName+"!A:J", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: sheets append: %v", domain.ErrPublish, wrapTimeout(ctx, err))
	}
	return nil
}

// HasOrder scans the order-number column for the given order number.
func (l *Ledger) HasOrder(ctx context.Context, orderNumber string) (bool, error) {
	rng := fmt.Sprintf("%s!%s:%s", l.sheetName, orderNumberColumn, orderNumberColumn)
	resp, err := l.svc.Spreadsheets.Values.Get(l.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("%w: sheets read: %v", domain.ErrPublish, wrapTimeout(ctx, err))
	}
	want := strings.TrimSpace(orderNumber)
	for _, row := range resp.Values {
		for _, cell := range row {
			if s, ok := cell.(string); ok && strings.TrimSpace(s) == want {
				return true, nil
			}
		}
	}
	return false, nil
}

func wrapTimeout(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return err
}

var _ domain.Ledger = (*Ledger)(nil)
