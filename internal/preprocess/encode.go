package preprocess

import (
	"bytes"
	"image"
	"image/png"
)

// EncodePNG serializes a normalized image for the recognition engine, which
// consumes encoded image bytes rather than pixel buffers.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
