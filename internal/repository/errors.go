package repository

import "errors"

var (
	// ErrUnsupportedDocument means the payload is not JPEG, PNG or PDF.
	ErrUnsupportedDocument = errors.New("unsupported document type")
	// ErrNoPageImage means a PDF parsed fine but its first page carries no
	// raster image to recognize.
	ErrNoPageImage = errors.New("pdf first page has no raster image")
)
