package printprep

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

// ParseHexColor parses a #RRGGBB string into an opaque color. Alpha is always
// forced to fully opaque. Malformed input (wrong length, non-hex characters)
// is rejected rather than left undefined.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w: border_color must be a #RRGGBB hex string", domain.ErrValidation)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: border_color %q is not valid hex", domain.ErrValidation, s)
	}
	return color.NRGBA{
		R: uint8((v >> 16) & 0xFF),
		G: uint8((v >> 8) & 0xFF),
		B: uint8(v & 0xFF),
		A: 255,
	}, nil
}
