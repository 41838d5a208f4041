package storage

import (
	"context"
	"encoding/csv"
	"os"
	"testing"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

func sampleRow(orderNumber string) domain.LedgerRow {
	return domain.LedgerRow{
		Date:          "2026-08-28",
		OrderNumber:   orderNumber,
		Status:        "processing",
		PaperType:     "matte",
		PaperSize:     "A4",
		BorderSize:    "10",
		Orientation:   "Portrait",
		ProcessedFile: "processed_" + orderNumber + "_1.jpg",
		CustomerName:  "Jane Doe",
		Shipping:      "1 Print Lane, Nairobi",
	}
}

func TestFileLedgerAppendWritesTenColumns(t *testing.T) {
	ledger, err := NewFileLedger(t.TempDir())
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	if err := ledger.Append(context.Background(), sampleRow("42")); err != nil {
		t.Fatalf("append: %v", err)
	}

	f, err := os.Open(ledger.path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("rows = %d, want 1", len(records))
	}
	rec := records[0]
	if len(rec) != 10 {
		t.Fatalf("columns = %d, want 10: %v", len(rec), rec)
	}
	if rec[1] != "42" || rec[4] != "A4" || rec[7] != "processed_42_1.jpg" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestFileLedgerAppendIsAppendOnly(t *testing.T) {
	ledger, err := NewFileLedger(t.TempDir())
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := ledger.Append(ctx, sampleRow("42")); err != nil {
			t.Fatalf("append #%d: %v", i+1, err)
		}
	}

	f, err := os.Open(ledger.path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("rows = %d, want duplicate rows preserved", len(records))
	}
}

func TestFileLedgerHasOrder(t *testing.T) {
	ledger, err := NewFileLedger(t.TempDir())
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	ctx := context.Background()

	// Missing file means no rows yet, not an error.
	found, err := ledger.HasOrder(ctx, "42")
	if err != nil || found {
		t.Fatalf("empty ledger: found=%v err=%v", found, err)
	}

	if err := ledger.Append(ctx, sampleRow("42")); err != nil {
		t.Fatalf("append: %v", err)
	}
	found, err = ledger.HasOrder(ctx, "42")
	if err != nil {
		t.Fatalf("has order: %v", err)
	}
	if !found {
		t.Fatalf("order 42 not found after append")
	}
	found, err = ledger.HasOrder(ctx, "7")
	if err != nil {
		t.Fatalf("has order: %v", err)
	}
	if found {
		t.Fatalf("order 7 reported present")
	}
}
