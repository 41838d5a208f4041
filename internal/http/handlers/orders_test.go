package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
	"github.com/brian-kiplagat/image-resizer/internal/infra"
	"github.com/brian-kiplagat/image-resizer/internal/orderflow"
	"github.com/brian-kiplagat/image-resizer/internal/printprep"
)

type confirmPublisher struct {
	pending  []domain.Artifact
	moveErr  error
	moved    []string
	rowCount int
}

func (p *confirmPublisher) Upload(ctx context.Context, data []byte, name, mimeType string) (domain.Artifact, error) {
	return domain.Artifact{}, fmt.Errorf("%w: not configured", domain.ErrPublish)
}

func (p *confirmPublisher) ListPending(ctx context.Context, nameContains string) ([]domain.Artifact, error) {
	var out []domain.Artifact
	for _, a := range p.pending {
		if strings.Contains(a.Name, nameContains) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (p *confirmPublisher) MoveToConfirmed(ctx context.Context, artifactID string) error {
	if p.moveErr != nil && len(p.moved) >= 1 {
		return p.moveErr
	}
	p.moved = append(p.moved, artifactID)
	return nil
}

func (p *confirmPublisher) Append(ctx context.Context, row domain.LedgerRow) error {
	p.rowCount++
	return nil
}

func (p *confirmPublisher) HasOrder(ctx context.Context, orderNumber string) (bool, error) {
	return false, nil
}

type fixedCommerce struct {
	order *domain.Order
	err   error
}

func (c *fixedCommerce) Order(ctx context.Context, id string) (*domain.Order, error) {
	return c.order, c.err
}

func confirmApp(pub *confirmPublisher, commerce *fixedCommerce) *App {
	logger := zerolog.New(io.Discard)
	confirmer := &orderflow.Confirmer{
		Publisher: pub,
		Ledger:    pub,
		Commerce:  commerce,
		Logger:    logger,
	}
	cfg := &infra.Config{BodyLimitBytes: 10 << 20}
	return NewApp(cfg, logger, printprep.NewResolver(30), pub, confirmer)
}

func postConfirm(t *testing.T, app *App, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/confirm-order", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ConfirmOrder(rec, req)
	return rec
}

func processingOrder() *domain.Order {
	return &domain.Order{
		ID:            "42",
		Number:        "42",
		Status:        domain.OrderStatusProcessing,
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
	}
}

func TestConfirmOrderSuccess(t *testing.T) {
	pub := &confirmPublisher{pending: []domain.Artifact{
		{ID: "p/1", Name: "processed_42_1.jpg"},
		{ID: "p/2", Name: "original_42_1.jpg"},
	}}
	app := confirmApp(pub, &fixedCommerce{order: processingOrder()})

	rec := postConfirm(t, app, `{"id":"42"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	if payload["message"] != "Order is confirmed and files moved!" {
		t.Fatalf("payload = %v", payload)
	}
	moved, ok := payload["movedFiles"].([]any)
	if !ok || len(moved) != 2 {
		t.Fatalf("movedFiles = %v", payload["movedFiles"])
	}
	if payload["ledgerAppended"] != true {
		t.Fatalf("ledgerAppended = %v", payload["ledgerAppended"])
	}
	if pub.rowCount != 1 {
		t.Fatalf("ledger rows = %d", pub.rowCount)
	}
}

func TestConfirmOrderUnpaidIs200WithoutSideEffects(t *testing.T) {
	order := processingOrder()
	order.Status = "pending"
	pub := &confirmPublisher{pending: []domain.Artifact{{ID: "p/1", Name: "processed_42_1.jpg"}}}
	app := confirmApp(pub, &fixedCommerce{order: order})

	rec := postConfirm(t, app, `{"id":"42"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	if payload["message"] != "Order is not yet confirmed" || payload["status"] != "pending" {
		t.Fatalf("payload = %v", payload)
	}
	if len(pub.moved) != 0 || pub.rowCount != 0 {
		t.Fatalf("side effects ran for unpaid order")
	}
}

func TestConfirmOrderUnknownIs404(t *testing.T) {
	app := confirmApp(&confirmPublisher{}, &fixedCommerce{
		err: fmt.Errorf("%w: order 999", domain.ErrNotFound),
	})
	rec := postConfirm(t, app, `{"id":"999"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestConfirmOrderNoPendingFilesIs404(t *testing.T) {
	app := confirmApp(&confirmPublisher{}, &fixedCommerce{order: processingOrder()})
	rec := postConfirm(t, app, `{"id":"42"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestConfirmOrderPartialMoveSurfacesProgress(t *testing.T) {
	pub := &confirmPublisher{
		pending: []domain.Artifact{
			{ID: "p/1", Name: "processed_42_1.jpg"},
			{ID: "p/2", Name: "original_42_1.jpg"},
		},
		moveErr: fmt.Errorf("%w: storage refused", domain.ErrPublish),
	}
	app := confirmApp(pub, &fixedCommerce{order: processingOrder()})

	rec := postConfirm(t, app, `{"id":"42"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	moved, ok := payload["movedFiles"].([]any)
	if !ok || len(moved) != 1 {
		t.Fatalf("movedFiles = %v", payload["movedFiles"])
	}
	if pub.rowCount != 0 {
		t.Fatalf("ledger appended after failed relocation")
	}
}

func TestConfirmOrderWithoutCommerceIsStructured500(t *testing.T) {
	// The credential-free dev wiring leaves the storefront client unset; the
	// endpoint still answers with a structured payload, never a panic.
	logger := zerolog.New(io.Discard)
	pub := &confirmPublisher{}
	confirmer := &orderflow.Confirmer{Publisher: pub, Ledger: pub, Logger: logger}
	app := NewApp(&infra.Config{BodyLimitBytes: 10 << 20}, logger, printprep.NewResolver(30), pub, confirmer)

	rec := postConfirm(t, app, `{"id":"42"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	if msg, ok := payload["error"].(string); !ok || msg == "" {
		t.Fatalf("missing error field: %v", payload)
	}
}

func TestConfirmOrderMissingIDIs400(t *testing.T) {
	app := confirmApp(&confirmPublisher{}, &fixedCommerce{})
	for _, body := range []string{`{}`, `{"id":"  "}`, `{not json`} {
		rec := postConfirm(t, app, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d", body, rec.Code)
		}
	}
}
