// Package utils holds byte and image helpers shared by the HTTP layer and
// services.
package utils

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// maxSourcePixels rejects decompression bombs before any resampling.
const maxSourcePixels = 40_000_000

var (
	ErrEmptyImage       = errors.New("empty image")
	ErrUnsupportedImage = errors.New("unsupported image format (jpeg/png/webp)")
	ErrImageTooLarge    = errors.New("image dimensions too large")
)

// NormalizeToJPG decodes a jpeg, png or webp image, applies its EXIF
// orientation, scales it down to maxWidth (when positive) and re-encodes it
// as JPEG at the given quality.
func NormalizeToJPG(input []byte, maxWidth int, quality int) ([]byte, error) {
	if len(input) == 0 {
		return nil, ErrEmptyImage
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	cfg, _, err := decodeConfig(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	if cfg.Width*cfg.Height > maxSourcePixels {
		return nil, ErrImageTooLarge
	}

	img, err := decode(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	img = applyOrientation(img, readEXIFOrientation(bytes.NewReader(input)))
	if maxWidth > 0 {
		img = resizeMaxWidth(img, maxWidth)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func decodeConfig(r *bytes.Reader) (image.Config, string, error) {
	if cfg, err := jpeg.DecodeConfig(r); err == nil {
		return cfg, "jpeg", nil
	}
	_, _ = r.Seek(0, io.SeekStart)
	if cfg, err := png.DecodeConfig(r); err == nil {
		return cfg, "png", nil
	}
	_, _ = r.Seek(0, io.SeekStart)
	if cfg, err := webp.DecodeConfig(r); err == nil {
		return cfg, "webp", nil
	}
	return image.Config{}, "", ErrUnsupportedImage
}

func decode(r *bytes.Reader) (image.Image, error) {
	if img, err := jpeg.Decode(r); err == nil {
		return img, nil
	}
	_, _ = r.Seek(0, io.SeekStart)
	if img, err := png.Decode(r); err == nil {
		return img, nil
	}
	_, _ = r.Seek(0, io.SeekStart)
	if img, err := webp.Decode(r); err == nil {
		return img, nil
	}
	return nil, ErrUnsupportedImage
}

// readEXIFOrientation returns 1 (as stored) when the tag is absent.
func readEXIFOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	ori, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return ori
}

// EXIF orientation:
// 2 mirror, 3 rotate 180, 4 flip, 5 transpose,
// 6 rotate 90 CW, 7 transverse, 8 rotate 90 CCW.
func applyOrientation(src image.Image, ori int) image.Image {
	switch ori {
	case 2:
		return remap(src, false, func(x, y, w, h int) (int, int) { return w - 1 - x, y })
	case 3:
		return remap(src, false, func(x, y, w, h int) (int, int) { return w - 1 - x, h - 1 - y })
	case 4:
		return remap(src, false, func(x, y, w, h int) (int, int) { return x, h - 1 - y })
	case 5:
		return remap(src, true, func(x, y, w, h int) (int, int) { return y, x })
	case 6:
		return remap(src, true, func(x, y, w, h int) (int, int) { return h - 1 - y, x })
	case 7:
		return remap(src, true, func(x, y, w, h int) (int, int) { return h - 1 - y, w - 1 - x })
	case 8:
		return remap(src, true, func(x, y, w, h int) (int, int) { return y, w - 1 - x })
	default:
		return src
	}
}

// remap copies every source pixel (x, y) to to(x, y, w, h) in a new image,
// swapping the output dimensions when transpose is set.
func remap(src image.Image, transpose bool, to func(x, y, w, h int) (int, int)) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	rect := image.Rect(0, 0, w, h)
	if transpose {
		rect = image.Rect(0, 0, h, w)
	}
	dst := image.NewRGBA(rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := to(x, y, w, h)
			dst.Set(dx, dy, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func resizeMaxWidth(src image.Image, maxW int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW {
		return src
	}

	newH := int(math.Round(float64(h) * float64(maxW) / float64(w)))
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
