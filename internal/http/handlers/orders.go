package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

type confirmOrderRequest struct {
	ID string `json:"id"`
}

// ConfirmOrder runs the confirmation workflow for one order: commerce
// lookup, status guard, artifact relocation, ledger append, best-effort
// notification.
func (a *App) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	var req confirmOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.clientError(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		a.clientError(w, "id is required")
		return
	}

	res, err := a.Confirmer.Confirm(r.Context(), req.ID)
	if err != nil {
		status := statusFor(err)
		payload := map[string]any{"error": err.Error()}
		// Surface partial relocation so the operator knows what already moved.
		if len(res.MovedFiles) > 0 {
			payload["movedFiles"] = res.MovedFiles
		}
		if status >= http.StatusInternalServerError {
			a.Logger.Error().Err(err).Str("order", req.ID).Msg("confirmation failed")
		}
		a.json(w, status, payload)
		return
	}

	if !res.Confirmed {
		a.json(w, http.StatusOK, map[string]any{
			"message": "Order is not yet confirmed",
			"status":  res.Order.Status,
		})
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"message":        "Order is confirmed and files moved!",
		"movedFiles":     res.MovedFiles,
		"order":          orderView(res.Order),
		"ledgerAppended": res.LedgerAppended,
		"notified":       res.Notified,
	})
}

func orderView(o *domain.Order) map[string]any {
	return map[string]any{
		"id":       o.ID,
		"number":   o.Number,
		"status":   o.Status,
		"customer": o.CustomerName,
		"shipping": o.ShippingAddress,
	}
}
