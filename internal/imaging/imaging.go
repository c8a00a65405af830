// Package imaging normalizes uploaded pictures into bounded WebP images.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
)

var (
	ErrEmpty           = errors.New("empty_file")
	ErrTooLarge        = errors.New("file_too_large")
	ErrUnsupportedType = errors.New("unsupported_file_type")
)

const (
	ContentType = "image/webp"
	Extension   = "webp"
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

type Image struct {
	Data   []byte
	Width  int
	Height int
}

type Processor struct {
	MaxBytes     int64
	MaxDimension int
	Quality      float32
}

func (p Processor) Check(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if p.MaxBytes > 0 && int64(len(data)) > p.MaxBytes {
		return "", ErrTooLarge
	}

	mt := mimetype.Detect(data)
	for _, allowed := range allowedTypes {
		if mt.Is(allowed) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
}

// Process validates data, shrinks it to fit MaxDimension and re-encodes it as WebP.
func (p Processor) Process(data []byte) (*Image, error) {
	if _, err := p.Check(data); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}

	img := fit(src, p.MaxDimension)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: p.quality()}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	b := img.Bounds()
	return &Image{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

func (p Processor) quality() float32 {
	if p.Quality <= 0 || p.Quality > 100 {
		return 80
	}
	return p.Quality
}

func fit(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return src
	}

	nw, nh := maxDim, maxDim
	if w >= h {
		nh = max(1, h*maxDim/w)
	} else {
		nw = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
