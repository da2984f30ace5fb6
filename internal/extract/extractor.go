// Package extract recovers identity fields from merged OCR text.
//
// Extractors are pure over the recognized corpus: they never touch the image
// or the oracle, so results are deterministic for fixed oracle output.
package extract

import (
	"github.com/anime-shed/kyc-verifier-go/internal/ocr"
	"github.com/anime-shed/kyc-verifier-go/pkg/models"
)

// DocumentType selects the extraction strategy.
type DocumentType string

const (
	DocumentPAN     DocumentType = "pan"
	DocumentAadhaar DocumentType = "aadhaar"
)

// Result is the outcome of extracting one document. A missing identifier is
// a normal, reportable outcome (Found=false), not an error.
type Result struct {
	ID      string
	Found   bool
	Message string
	Fields  models.ExtractedFields
}

// DocumentExtractor is one document-type-specific extraction strategy.
type DocumentExtractor interface {
	// DocumentType identifies the strategy.
	DocumentType() DocumentType
	// Modes lists the recognition passes this document is read under, in
	// corpus order.
	Modes() []ocr.Mode
	// Extract scans the merged recognition corpus for the document's
	// identifier and secondary fields.
	Extract(corpus string) Result
}
