package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCheckRejects(t *testing.T) {
	p := Processor{MaxBytes: 64}

	_, err := p.Check(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = p.Check(bytes.Repeat([]byte("a"), 65))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = p.Check([]byte("plain text, not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestCheckAcceptsPNG(t *testing.T) {
	ct, err := Processor{}.Check(pngBytes(t, 4, 4))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
}

func TestProcessDownscalesToWebP(t *testing.T) {
	p := Processor{MaxDimension: 10, Quality: 75}

	out, err := p.Process(pngBytes(t, 40, 20))
	require.NoError(t, err)
	assert.Equal(t, 10, out.Width)
	assert.Equal(t, 5, out.Height)

	decoded, err := webp.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 5), decoded.Bounds())
}

func TestProcessKeepsSmallImages(t *testing.T) {
	out, err := Processor{MaxDimension: 1920}.Process(pngBytes(t, 8, 6))
	require.NoError(t, err)
	assert.Equal(t, 8, out.Width)
	assert.Equal(t, 6, out.Height)
}
