package printprep

import (
	"fmt"
	"math"
	"strings"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

// ISO 216 sheet sizes in millimeters, portrait.
var paperSizesMM = map[string][2]float64{
	"A0": {841, 1189},
	"A1": {594, 841},
	"A2": {420, 594},
	"A3": {297, 420},
	"A4": {210, 297},
	"A5": {148, 210},
	"A6": {105, 148},
	"B0": {1000, 1414},
	"B1": {707, 1000},
	"B2": {500, 707},
	"B3": {353, 500},
	"B4": {250, 353},
	"B5": {176, 250},
	"B6": {125, 176},
}

const mmPerInch = 25.4

// DefaultPrintDPI is the print resolution assumed when none is configured.
const DefaultPrintDPI = 600

// Resolver converts physical paper sizes and millimeter border widths into
// pixel counts at a fixed print resolution. It is immutable after
// construction and safe for concurrent use.
type Resolver struct {
	dpi float64
}

// NewResolver builds a resolver for the given print resolution. Non-positive
// values fall back to DefaultPrintDPI.
func NewResolver(dpi float64) *Resolver {
	if dpi <= 0 {
		dpi = DefaultPrintDPI
	}
	return &Resolver{dpi: dpi}
}

// DPI returns the configured print resolution.
func (r *Resolver) DPI() float64 {
	return r.dpi
}

// MillimetersToPixels converts a physical length to pixels at the configured
// print resolution.
func (r *Resolver) MillimetersToPixels(mm float64) int {
	return int(math.Round(mm * r.dpi / mmPerInch))
}

// Resolve maps a paper selector and an orientation to concrete target pixel
// dimensions. Named keys go through the ISO 216 table; custom selectors take
// the caller-supplied pixel pair verbatim. Landscape swaps the axes.
func (r *Resolver) Resolve(sel Selector, orientation Orientation) (Dimensions, error) {
	var dims Dimensions
	if sel.Custom {
		if sel.Width <= 0 || sel.Height <= 0 {
			return Dimensions{}, fmt.Errorf("%w: custom sizes must be positive numbers", domain.ErrValidation)
		}
		dims = Dimensions{Width: int(math.Round(sel.Width)), Height: int(math.Round(sel.Height))}
	} else {
		key := strings.ToUpper(strings.TrimSpace(sel.Key))
		mm, ok := paperSizesMM[key]
		if !ok {
			return Dimensions{}, fmt.Errorf("%w: unknown paper size %q", domain.ErrGeometry, sel.Key)
		}
		dims = Dimensions{
			Width:  r.MillimetersToPixels(mm[0]),
			Height: r.MillimetersToPixels(mm[1]),
		}
	}
	if orientation == OrientationLandscape {
		dims.Width, dims.Height = dims.Height, dims.Width
	}
	return dims, nil
}

// PaperKeys lists the supported named paper sizes, for validation messages.
func PaperKeys() []string {
	keys := make([]string, 0, len(paperSizesMM))
	for k := range paperSizesMM {
		keys = append(keys, k)
	}
	return keys
}
