package printprep

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"regexp"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gen2brain/go-fitz"
	"github.com/jdeng/goheif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

// PDF pages are rendered at 3x the 72dpi user-space baseline to approximate
// print resolution before the compositor rescales.
const pdfRenderDPI = 216

var dataURIPattern = regexp.MustCompile(`^data:([a-zA-Z0-9.+/-]+);base64,`)

// DecodePayload splits a data-URI tagged base64 payload into raw bytes and
// the declared media type. Untagged payloads are assumed to be JPEG.
func DecodePayload(tagged string) ([]byte, string, error) {
	mediaType := "image/jpeg"
	if m := dataURIPattern.FindStringSubmatch(tagged); m != nil {
		mediaType = strings.ToLower(m[1])
		tagged = tagged[len(m[0]):]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(tagged))
	if err != nil {
		return nil, "", fmt.Errorf("%w: payload is not valid base64", domain.ErrValidation)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: payload is empty", domain.ErrValidation)
	}
	return data, mediaType, nil
}

// Normalize fully materializes a canonical raster from a tagged binary
// payload. PDF and HEIC containers are decoded here so the compositor always
// starts from committed intrinsic dimensions.
func Normalize(data []byte, mediaType string) (*Canonical, error) {
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "application/pdf", "pdf":
		return normalizePDF(data)
	case "image/heic", "image/heif", "application/octet-stream", "octet-stream":
		return normalizeHEIC(data)
	default:
		return normalizeRaster(data)
	}
}

func normalizePDF(data []byte) (*Canonical, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("%w: payload tagged as pdf has no PDF header", domain.ErrValidation)
	}
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %v", domain.ErrDecode, err)
	}
	defer doc.Close()
	if doc.NumPage() < 1 {
		return nil, fmt.Errorf("%w: pdf has no renderable pages", domain.ErrDecode)
	}
	// Only the first page is printed.
	img, err := doc.ImageDPI(0, pdfRenderDPI)
	if err != nil {
		return nil, fmt.Errorf("%w: render pdf page: %v", domain.ErrDecode, err)
	}
	b := img.Bounds()
	return &Canonical{Image: img, Width: b.Dx(), Height: b.Dy(), Format: "pdf"}, nil
}

func normalizeHEIC(data []byte) (*Canonical, error) {
	img, err := goheif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode heic: %v", domain.ErrDecode, err)
	}
	b := img.Bounds()
	return &Canonical{Image: img, Width: b.Dx(), Height: b.Dy(), Format: "heic"}, nil
}

func normalizeRaster(data []byte) (*Canonical, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", domain.ErrDecode, err)
	}
	b := img.Bounds()
	return &Canonical{Image: img, Width: b.Dx(), Height: b.Dy(), Format: format}, nil
}
