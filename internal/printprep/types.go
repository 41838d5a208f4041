// Package printprep turns a customer upload into a print-ready raster: it
// resolves physical paper sizes to pixels, normalizes PDF/HEIC/raster inputs
// into a canonical bitmap, and composes the result onto a bordered canvas.
package printprep

import (
	"fmt"
	"image"
	"strings"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

// Orientation selects which way the resolved paper dimensions face.
type Orientation string

const (
	OrientationPortrait  Orientation = "Portrait"
	OrientationLandscape Orientation = "Landscape"
)

// ParseOrientation validates a caller-supplied orientation string.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(strings.TrimSpace(s)) {
	case OrientationPortrait:
		return OrientationPortrait, nil
	case OrientationLandscape:
		return OrientationLandscape, nil
	}
	return "", fmt.Errorf("%w: orientation must be Portrait or Landscape", domain.ErrValidation)
}

// Fit is the strategy reconciling source dimensions with the target region.
type Fit string

const (
	FitCover   Fit = "cover"
	FitContain Fit = "contain"
	FitFill    Fit = "fill"
	FitInside  Fit = "inside"
	FitOutside Fit = "outside"
)

// ParseFit validates a caller-supplied resize option. Unknown strategies are
// a client error, never a silent fallback.
func ParseFit(s string) (Fit, error) {
	switch Fit(strings.ToLower(strings.TrimSpace(s))) {
	case FitCover:
		return FitCover, nil
	case FitContain:
		return FitContain, nil
	case FitFill:
		return FitFill, nil
	case FitInside:
		return FitInside, nil
	case FitOutside:
		return FitOutside, nil
	}
	return "", fmt.Errorf("%w: unknown resize option %q", domain.ErrGeometry, s)
}

// Dimensions is a resolved pixel pair.
type Dimensions struct {
	Width  int
	Height int
}

// Selector picks either a named paper size or explicit custom pixel
// dimensions. Custom and Key are mutually exclusive.
type Selector struct {
	Key    string
	Custom bool
	Width  float64
	Height float64
}

// Canonical is a fully decoded bitmap, independent of the original container
// format, plus its intrinsic dimensions. It lives only for the duration of
// one pipeline invocation.
type Canonical struct {
	Image  image.Image
	Width  int
	Height int
	Format string
}

// Result is the final encoded output raster.
type Result struct {
	Data   []byte
	Width  int
	Height int
}
