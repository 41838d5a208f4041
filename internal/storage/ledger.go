package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

// FileLedger appends order rows to a local CSV file. Like the spreadsheet
// ledger it is append-only; HasOrder scans the order-number column.
type FileLedger struct {
	mu   sync.Mutex
	path string
}

// NewFileLedger creates a CSV ledger at basePath/ledger.csv.
func NewFileLedger(basePath string) (*FileLedger, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileLedger{path: filepath.Join(basePath, "ledger.csv")}, nil
}

// Append writes one row at the end of the file.
func (l *FileLedger) Append(ctx context.Context, row domain.LedgerRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open ledger: %v", domain.ErrPublish, err)
	}
	defer f.Close()

	cols := row.Columns()
	record := make([]string, len(cols))
	for i, c := range cols {
		record[i] = fmt.Sprint(c)
	}
	w := csv.NewWriter(f)
	if err := w.Write(record); err != nil {
		return fmt.Errorf("%w: write ledger row: %v", domain.ErrPublish, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: flush ledger row: %v", domain.ErrPublish, err)
	}
	return nil
}

// HasOrder reports whether any existing row carries the order number.
func (l *FileLedger) HasOrder(ctx context.Context, orderNumber string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: open ledger: %v", domain.ErrPublish, err)
	}
	defer f.Close()

	want := strings.TrimSpace(orderNumber)
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return false, fmt.Errorf("%w: read ledger: %v", domain.ErrPublish, err)
	}
	for _, rec := range records {
		if len(rec) > 1 && strings.TrimSpace(rec[1]) == want {
			return true, nil
		}
	}
	return false, nil
}

var _ domain.Ledger = (*FileLedger)(nil)
