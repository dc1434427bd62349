package images

import (
	"bytes"
	"fmt"
	"image"

	// Registered decoders for the supported upload formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Decode parses image bytes and returns the decoded image and its file
// extension. Anything that is not a JPEG, PNG, GIF or WebP fails.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	switch format {
	case "jpeg":
		return img, "jpg", nil
	case "png", "gif", "webp":
		return img, format, nil
	default:
		return nil, "", fmt.Errorf("unsupported image format %q", format)
	}
}
