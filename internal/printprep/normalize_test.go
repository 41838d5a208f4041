package printprep

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

func pngPayload(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDecodePayloadReadsMediaTag(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03}
	tagged := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
	data, mediaType, err := DecodePayload(tagged)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mediaType != "image/png" {
		t.Fatalf("mediaType = %q, want image/png", mediaType)
	}
	if !bytes.Equal(data, raw) {
		t.Fatalf("data mismatch: %v", data)
	}
}

func TestDecodePayloadDefaultsToJPEG(t *testing.T) {
	_, mediaType, err := DecodePayload(base64.StdEncoding.EncodeToString([]byte("x")))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mediaType != "image/jpeg" {
		t.Fatalf("mediaType = %q, want image/jpeg", mediaType)
	}
}

func TestDecodePayloadRejectsBadBase64(t *testing.T) {
	if _, _, err := DecodePayload("data:image/png;base64,!!!not-base64!!!"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestDecodePayloadRejectsEmpty(t *testing.T) {
	if _, _, err := DecodePayload("data:image/png;base64,"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestNormalizeRasterProbesDimensions(t *testing.T) {
	canonical, err := Normalize(pngPayload(t, 32, 20), "image/png")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if canonical.Width != 32 || canonical.Height != 20 {
		t.Fatalf("dims = %dx%d, want 32x20", canonical.Width, canonical.Height)
	}
	if canonical.Format != "png" {
		t.Fatalf("format = %q, want png", canonical.Format)
	}
	if canonical.Image == nil {
		t.Fatalf("image not materialized")
	}
}

func TestNormalizeUnknownTagFallsBackToImageDecode(t *testing.T) {
	// A PNG payload under a generic image tag still decodes via the probe.
	canonical, err := Normalize(pngPayload(t, 8, 8), "image/x-unknown")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if canonical.Width != 8 || canonical.Height != 8 {
		t.Fatalf("dims = %dx%d, want 8x8", canonical.Width, canonical.Height)
	}
}

func TestNormalizeRejectsPDFWithoutHeader(t *testing.T) {
	_, err := Normalize([]byte("not a pdf at all"), "application/pdf")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestNormalizeCorruptPDFIsDecodeError(t *testing.T) {
	_, err := Normalize([]byte("%PDF-1.7 garbage that is not a document"), "application/pdf")
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestNormalizeCorruptHEICIsDecodeError(t *testing.T) {
	_, err := Normalize([]byte("definitely not heic"), "image/heic")
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestNormalizeOctetStreamTreatedAsHEIC(t *testing.T) {
	// The fallback path routes octet-stream through the HEIC decoder, so a
	// non-HEIC payload surfaces a decode error rather than a raster probe
	// failure.
	_, err := Normalize(pngPayload(t, 4, 4), "application/octet-stream")
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}

func TestNormalizeCorruptRasterIsDecodeError(t *testing.T) {
	_, err := Normalize([]byte{0xde, 0xad}, "image/png")
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}
