package printprep

import (
	"errors"
	"image/color"
	"testing"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#000000", color.NRGBA{0, 0, 0, 255}},
		{"#FFFFFF", color.NRGBA{255, 255, 255, 255}},
		{"#FF0000", color.NRGBA{255, 0, 0, 255}},
		{"00ff7f", color.NRGBA{0, 255, 127, 255}},
		{"  #123456  ", color.NRGBA{0x12, 0x34, 0x56, 255}},
	}
	for _, tc := range cases {
		got, err := ParseHexColor(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseHexColorRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "#FFF", "#12345", "#GGHHII", "red", "#1234567"} {
		if _, err := ParseHexColor(in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%q: err = %v, want ErrValidation", in, err)
		}
	}
}
