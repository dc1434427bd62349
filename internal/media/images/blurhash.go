package images

import (
	"image"

	"github.com/bbrks/go-blurhash"
)

// blurHashSize is the thumbnail edge used for encoding. BlurHash quality
// does not improve beyond small inputs, and encoding cost grows fast.
const blurHashSize = 64

// ComputeBlurHash encodes a compact placeholder hash for the image.
func ComputeBlurHash(img image.Image) (string, error) {
	return blurhash.Encode(4, 3, shrinkForBlurHash(img))
}

// shrinkForBlurHash scales the image down with nearest-neighbor sampling.
// Fidelity is irrelevant here; the hash is a blur by definition.
func shrinkForBlurHash(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= blurHashSize && h <= blurHashSize {
		return img
	}

	scale := float64(blurHashSize) / float64(max(w, h))
	newW := max(int(float64(w)*scale), 1)
	newH := max(int(float64(h)*scale), 1)

	out := image.NewRGBA(image.Rect(0, 0, newW, newH))
	for y := range newH {
		srcY := bounds.Min.Y + y*h/newH
		for x := range newW {
			srcX := bounds.Min.X + x*w/newW
			out.Set(x, y, img.At(srcX, srcY))
		}
	}
	return out
}
