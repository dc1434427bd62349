package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes renders a small solid-color PNG.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	img, ext, err := Decode(pngBytes(t, 8, 8))
	require.NoError(t, err)
	assert.Equal(t, "png", ext)
	assert.Equal(t, 8, img.Bounds().Dx())
}

func TestDecodeRejectsNonImage(t *testing.T) {
	_, _, err := Decode([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestComputeBlurHash(t *testing.T) {
	img, _, err := Decode(pngBytes(t, 200, 100))
	require.NoError(t, err)

	hash, err := ComputeBlurHash(img)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

func TestStorageRoundTrip(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	data := pngBytes(t, 4, 4)
	name, err := s.Save(data, "png")
	require.NoError(t, err)
	assert.True(t, s.Exists(name))

	got, err := s.Get(name)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, s.Delete(name))
	assert.False(t, s.Exists(name))

	// Deleting again is fine.
	assert.NoError(t, s.Delete(name))
}

func TestStorageNamesAreUnique(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	a, err := s.Save([]byte("a"), "jpg")
	require.NoError(t, err)
	b, err := s.Save([]byte("b"), "jpg")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
