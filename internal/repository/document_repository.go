package repository

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	"github.com/wudi/pdfkit/extractor"
	"github.com/wudi/pdfkit/ir"

	apperrors "github.com/anime-shed/kyc-verifier-go/internal/errors"
)

// DocumentRepository turns raw uploaded or fetched bytes into decoded pixels
// ready for normalization.
type DocumentRepository interface {
	// Sniff reports the detected content type and whether it is accepted.
	Sniff(data []byte) (string, bool)
	// Decode decodes a JPEG/PNG directly, or rasterizes the first page of a
	// PDF by extracting its embedded page image.
	Decode(ctx context.Context, data []byte) (image.Image, error)
}

type documentRepository struct{}

func NewDocumentRepository() DocumentRepository {
	return &documentRepository{}
}

// Accepted upload encodings. Anything else is rejected before processing.
var acceptedTypes = []string{"image/jpeg", "image/png", "application/pdf"}

func (r *documentRepository) Sniff(data []byte) (string, bool) {
	mtype := mimetype.Detect(data)
	for _, accepted := range acceptedTypes {
		if mtype.Is(accepted) {
			return accepted, true
		}
	}
	return mtype.String(), false
}

func (r *documentRepository) Decode(ctx context.Context, data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("empty document payload", nil)
	}

	detected, ok := r.Sniff(data)
	if !ok {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("unsupported document type %q", detected), ErrUnsupportedDocument)
	}

	if detected == "application/pdf" {
		return r.decodePDFFirstPage(ctx, data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewDecodeError("failed to decode document image", err)
	}
	return img, nil
}

// decodePDFFirstPage parses the PDF and returns the first embedded image of
// its first page. Scanned ID documents carry the scan as a single page-sized
// XObject; later pages are ignored.
func (r *documentRepository) decodePDFFirstPage(ctx context.Context, data []byte) (image.Image, error) {
	doc, err := ir.NewDefault().Parse(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewDecodeError("failed to parse pdf", err)
	}
	dec := doc.Decoded()
	if dec == nil {
		return nil, apperrors.NewDecodeError("pdf missing decoded backing store", nil)
	}

	ext, err := extractor.New(dec)
	if err != nil {
		return nil, apperrors.NewDecodeError("failed to build pdf extractor", err)
	}
	assets, err := ext.ExtractImages()
	if err != nil {
		return nil, apperrors.NewDecodeError("failed to extract pdf images", err)
	}

	firstPage := -1
	for _, asset := range assets {
		if firstPage == -1 || asset.Page < firstPage {
			firstPage = asset.Page
		}
	}
	for _, asset := range assets {
		if asset.Page != firstPage {
			continue
		}
		img, err := asset.ToImage()
		if err != nil {
			return nil, apperrors.NewDecodeError("failed to decode pdf page image", err)
		}
		return img, nil
	}
	return nil, apperrors.NewDecodeError("pdf has no recognizable page image", ErrNoPageImage)
}
