package handlers

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
	"github.com/brian-kiplagat/image-resizer/internal/printprep"
)

// sizesPayload is the explicit width/height pair for custom paper sizes.
// Non-numeric values fail JSON decoding, which rejects the request before any
// image work starts.
type sizesPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// addBorderRequest mirrors the /add-border body. Field names match the
// storefront's payload.
type addBorderRequest struct {
	OriginalBase64Image string        `json:"originalbase64Image"`
	BorderSize          *float64      `json:"border_size"`
	BorderColor         string        `json:"border_color"`
	Orientation         string        `json:"orientation"`
	OrderID             string        `json:"orderID"`
	PaperSize           string        `json:"paperSize"`
	ResizeOption        string        `json:"resizeOption"`
	IsCustom            bool          `json:"isCustom"`
	Sizes               *sizesPayload `json:"sizes"`
}

// printJob is the validated, typed description of one pipeline run.
type printJob struct {
	payload     []byte
	mediaType   string
	selector    printprep.Selector
	orientation printprep.Orientation
	fit         printprep.Fit
	borderMM    float64
	borderColor *color.NRGBA
	orderID     string
}

// validate performs the single validation pass: it either produces a typed
// job or the first enumerated validation error. Field checks run before the
// payload is base64-decoded so malformed requests cost no decode work.
func (req *addBorderRequest) validate() (*printJob, error) {
	job := &printJob{}

	if req.BorderSize == nil {
		return nil, fmt.Errorf("%w: border_size is required", domain.ErrValidation)
	}
	if *req.BorderSize < 0 || *req.BorderSize > 100 {
		return nil, fmt.Errorf("%w: border_size must be between 0 and 100", domain.ErrValidation)
	}
	job.borderMM = *req.BorderSize

	orientation, err := printprep.ParseOrientation(req.Orientation)
	if err != nil {
		return nil, err
	}
	job.orientation = orientation

	fit, err := printprep.ParseFit(req.ResizeOption)
	if err != nil {
		return nil, err
	}
	job.fit = fit

	job.orderID = strings.TrimSpace(req.OrderID)
	if job.orderID == "" {
		return nil, fmt.Errorf("%w: orderID is required", domain.ErrValidation)
	}

	if req.IsCustom {
		if req.Sizes == nil {
			return nil, fmt.Errorf("%w: sizes is required when isCustom is set", domain.ErrValidation)
		}
		if req.Sizes.Width <= 0 || req.Sizes.Height <= 0 {
			return nil, fmt.Errorf("%w: sizes must be positive numbers", domain.ErrValidation)
		}
		job.selector = printprep.Selector{Custom: true, Width: req.Sizes.Width, Height: req.Sizes.Height}
	} else {
		if strings.TrimSpace(req.PaperSize) == "" {
			return nil, fmt.Errorf("%w: paperSize is required", domain.ErrValidation)
		}
		job.selector = printprep.Selector{Key: req.PaperSize}
	}

	// Absence of a color disables bordering; width alone is not enough.
	if strings.TrimSpace(req.BorderColor) != "" {
		c, err := printprep.ParseHexColor(req.BorderColor)
		if err != nil {
			return nil, err
		}
		job.borderColor = &c
	}

	if strings.TrimSpace(req.OriginalBase64Image) == "" {
		return nil, fmt.Errorf("%w: originalbase64Image is required", domain.ErrValidation)
	}
	payload, mediaType, err := printprep.DecodePayload(req.OriginalBase64Image)
	if err != nil {
		return nil, err
	}
	job.payload = payload
	job.mediaType = mediaType

	return job, nil
}

// extensionFor picks a file extension for the original upload's name.
func extensionFor(mediaType string) string {
	switch strings.ToLower(mediaType) {
	case "application/pdf", "pdf":
		return ".pdf"
	case "image/heic", "image/heif", "application/octet-stream", "octet-stream":
		return ".heic"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	default:
		return ".jpg"
	}
}
