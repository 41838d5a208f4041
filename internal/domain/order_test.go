package domain

import "testing"

func TestConfirmable(t *testing.T) {
	cases := map[string]bool{
		OrderStatusProcessing: true,
		OrderStatusCompleted:  true,
		"pending":             false,
		"on-hold":             false,
		"cancelled":           false,
		"refunded":            false,
		"":                    false,
	}
	for status, want := range cases {
		o := &Order{Status: status}
		if got := o.Confirmable(); got != want {
			t.Errorf("Confirmable(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestOrderMetaScansLineItems(t *testing.T) {
	o := &Order{LineItems: []LineItem{
		{Name: "gift wrap", Meta: map[string]string{"note": "red ribbon"}},
		{Name: "A4 print", Meta: map[string]string{"paper_size": "A4", "paper_type": "matte"}},
	}}
	if got := o.Meta("paper_size"); got != "A4" {
		t.Fatalf("paper_size = %q", got)
	}
	if got := o.Meta("missing"); got != "" {
		t.Fatalf("missing meta = %q, want empty", got)
	}
}

func TestLedgerRowColumns(t *testing.T) {
	row := LedgerRow{
		Date:          "2026-08-28",
		OrderNumber:   "42",
		Status:        "processing",
		PaperType:     "matte",
		PaperSize:     "A4",
		BorderSize:    "10",
		Orientation:   "Portrait",
		ProcessedFile: "processed_42_1.jpg",
		CustomerName:  "Jane Doe",
		Shipping:      "1 Print Lane",
	}
	cols := row.Columns()
	if len(cols) != 10 {
		t.Fatalf("columns = %d, want 10", len(cols))
	}
	if cols[1] != "42" || cols[7] != "processed_42_1.jpg" {
		t.Fatalf("unexpected column order: %v", cols)
	}
}
