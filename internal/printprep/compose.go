package printprep

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/jpegli"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Compose places a canonical raster onto the final print canvas.
//
// Geometry follows the physical-unit convention: the image is resized into
// the target region shrunk by the border width on each side, then centered on
// a solid canvas of exactly the target dimensions. With a zero border width
// or no border color the resized buffer is encoded as-is, with no canvas
// step.
func Compose(src *Canonical, target Dimensions, fit Fit, borderPx int, borderColor *color.NRGBA) (*Result, error) {
	if src == nil || src.Image == nil {
		return nil, fmt.Errorf("%w: no canonical image", domain.ErrDecode)
	}
	if target.Width <= 0 || target.Height <= 0 {
		return nil, fmt.Errorf("%w: target dimensions must be positive", domain.ErrGeometry)
	}
	if borderPx < 0 {
		return nil, fmt.Errorf("%w: border width must not be negative", domain.ErrValidation)
	}

	bordered := borderPx > 0 && borderColor != nil
	inner := target
	if bordered {
		inner = Dimensions{Width: target.Width - 2*borderPx, Height: target.Height - 2*borderPx}
		if inner.Width <= 0 || inner.Height <= 0 {
			return nil, fmt.Errorf("%w: border of %dpx leaves no printable area on a %dx%d canvas",
				domain.ErrGeometry, borderPx, target.Width, target.Height)
		}
	}

	resized, err := resizeTo(src.Image, inner, fit)
	if err != nil {
		return nil, err
	}

	out := resized
	if bordered {
		canvas := imaging.New(target.Width, target.Height, *borderColor)
		out = imaging.PasteCenter(canvas, resized)
	}

	data, err := encodeJPEG(out)
	if err != nil {
		return nil, err
	}
	b := out.Bounds()
	return &Result{Data: data, Width: b.Dx(), Height: b.Dy()}, nil
}

// resizeTo applies one of the five fit strategies against the region.
func resizeTo(img image.Image, region Dimensions, fit Fit) (*image.NRGBA, error) {
	w, h := region.Width, region.Height
	switch fit {
	case FitCover:
		// Uniform scale covering the region, overflow cropped.
		return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos), nil
	case FitContain:
		// Uniform scale inside the region, remainder padded white.
		fitted := scaleToFit(img, w, h)
		fb := fitted.Bounds()
		if fb.Dx() == w && fb.Dy() == h {
			return fitted, nil
		}
		return imaging.PasteCenter(imaging.New(w, h, white), fitted), nil
	case FitFill:
		// Per-axis scale, aspect ratio ignored.
		return imaging.Resize(img, w, h, imaging.Lanczos), nil
	case FitInside:
		// Scale down only; never upscale.
		return imaging.Fit(img, w, h, imaging.Lanczos), nil
	case FitOutside:
		// Scale up only so both axes are at least the region.
		b := img.Bounds()
		if b.Dx() >= w && b.Dy() >= h {
			return imaging.Clone(img), nil
		}
		scale := math.Max(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
		nw := int(math.Ceil(float64(b.Dx()) * scale))
		nh := int(math.Ceil(float64(b.Dy()) * scale))
		return imaging.Resize(img, nw, nh, imaging.Lanczos), nil
	}
	return nil, fmt.Errorf("%w: unknown resize option %q", domain.ErrGeometry, fit)
}

// scaleToFit scales uniformly so the image fits the region, upscaling if
// needed (imaging.Fit only ever shrinks).
func scaleToFit(img image.Image, w, h int) *image.NRGBA {
	b := img.Bounds()
	scale := math.Min(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	nw := int(math.Round(float64(b.Dx()) * scale))
	nh := int(math.Round(float64(b.Dy()) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	if nw > w {
		nw = w
	}
	if nh > h {
		nh = h
	}
	return imaging.Resize(img, nw, nh, imaging.Lanczos)
}

// encodeJPEG writes the output at quality 100 with full 4:4:4 chroma. The
// stdlib encoder subsamples chroma to 4:2:0 at every quality, which softens
// thin border edges on print output, so encoding goes through jpegli with an
// explicit sampling ratio instead.
func encodeJPEG(img image.Image) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := jpegli.Encode(buf, img, &jpegli.EncodingOptions{
		Quality:           100,
		ChromaSubsampling: image.YCbCrSubsampleRatio444,
	})
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
