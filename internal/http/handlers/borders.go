package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
	"github.com/brian-kiplagat/image-resizer/internal/printprep"
)

// AddBorder runs the print-preparation pipeline: decode, resolve target,
// resize, border-composite, encode, publish processed then original.
func (a *App) AddBorder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Config.BodyLimitBytes)

	var req addBorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.clientError(w, "invalid request body: "+err.Error())
		return
	}

	job, err := req.validate()
	if err != nil {
		a.respondPipelineError(w, err, nil)
		return
	}

	canonical, err := printprep.Normalize(job.payload, job.mediaType)
	if err != nil {
		a.respondPipelineError(w, err, nil)
		return
	}

	target, err := a.Resolver.Resolve(job.selector, job.orientation)
	if err != nil {
		a.respondPipelineError(w, err, nil)
		return
	}

	borderPx := 0
	if job.borderColor != nil {
		borderPx = a.Resolver.MillimetersToPixels(job.borderMM)
	}

	result, err := printprep.Compose(canonical, target, job.fit, borderPx, job.borderColor)
	if err != nil {
		a.respondPipelineError(w, err, nil)
		return
	}

	stamp := time.Now().UnixMilli()
	processedName := fmt.Sprintf("processed_%s_%d.jpg", job.orderID, stamp)
	originalName := fmt.Sprintf("original_%s_%d%s", job.orderID, stamp, extensionFor(job.mediaType))

	// Two-phase publish with no rollback: a failure reports which half landed
	// so the operator can reconcile by hand.
	report := domain.PublishReport{}
	processed, err := a.upload(r.Context(), result.Data, processedName, "image/jpeg")
	if err != nil {
		a.respondPipelineError(w, err, publishState(report))
		return
	}
	report.ProcessedUploaded = true
	report.Pair.Processed = processed

	original, err := a.upload(r.Context(), job.payload, originalName, job.mediaType)
	if err != nil {
		a.respondPipelineError(w, err, publishState(report))
		return
	}
	report.OriginalUploaded = true
	report.Pair.Original = original

	a.Logger.Info().
		Str("order", job.orderID).
		Int("width", result.Width).
		Int("height", result.Height).
		Str("file_id", processed.ID).
		Msg("print prepared")

	a.json(w, http.StatusOK, map[string]any{
		"status":           "success",
		"border_size":      job.borderMM,
		"fileId":           processed.ID,
		"viewLink":         processed.Link,
		"originalFileId":   original.ID,
		"originalViewLink": original.Link,
	})
}

// upload publishes one artifact under the external-call timeout.
func (a *App) upload(ctx context.Context, data []byte, name, mimeType string) (domain.Artifact, error) {
	if t := a.Config.ExternalCallTimeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	return a.Publisher.Upload(ctx, data, name, mimeType)
}

// respondPipelineError maps pipeline errors onto the endpoint's wire shapes:
// client errors get 400 {error}, everything else 500 {error, reason}.
func (a *App) respondPipelineError(w http.ResponseWriter, err error, extra map[string]any) {
	switch statusFor(err) {
	case http.StatusBadRequest:
		a.clientError(w, err.Error())
	default:
		a.Logger.Error().Err(err).Msg("pipeline failed")
		a.processingError(w, err.Error(), extra)
	}
}

// publishState reports which publish phase completed for the error payload.
func publishState(report domain.PublishReport) map[string]any {
	extra := map[string]any{
		"processedUploaded": report.ProcessedUploaded,
		"originalUploaded":  report.OriginalUploaded,
	}
	if report.ProcessedUploaded {
		extra["fileId"] = report.Pair.Processed.ID
		extra["viewLink"] = report.Pair.Processed.Link
	}
	return extra
}
