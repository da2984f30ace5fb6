package extract

import (
	"strings"

	"github.com/anime-shed/kyc-verifier-go/internal/ocr"
	"github.com/anime-shed/kyc-verifier-go/pkg/models"
)

// AadhaarExtractor recovers the 12-digit Aadhaar number plus best-effort
// name, date of birth and address. No confusion correction is applied; the
// code is numeric-only so there is no letter/digit ambiguity to repair.
type AadhaarExtractor struct{}

func NewAadhaarExtractor() *AadhaarExtractor {
	return &AadhaarExtractor{}
}

func (e *AadhaarExtractor) DocumentType() DocumentType { return DocumentAadhaar }

func (e *AadhaarExtractor) Modes() []ocr.Mode { return ocr.AadhaarModes }

// Extract tries the grouped 4-4-4 pattern before the contiguous 12-digit
// pattern; the first pattern family that yields any match wins and its first
// match is taken with internal spaces stripped.
func (e *AadhaarExtractor) Extract(corpus string) Result {
	fields := models.ExtractedFields{}

	aadhaar, found := "", false
	if match, ok := firstMatch(corpus, aadhaarNumberMatchers); ok {
		aadhaar = strings.ReplaceAll(match, " ", "")
		found = len(aadhaar) == 12
	}

	if name, ok := firstMatch(corpus, aadhaarNameMatchers); ok {
		fields[models.FieldName] = name
	}
	if dob, ok := firstMatch(corpus, aadhaarDOBMatchers); ok {
		fields[models.FieldDOB] = dob
	}
	if address, ok := firstMatch(corpus, aadhaarAddressMatchers); ok {
		fields[models.FieldAddress] = address
	}

	if !found {
		return Result{
			Message: "Could not find valid Aadhaar pattern",
			Fields:  fields,
		}
	}

	fields[models.FieldAadhaar] = aadhaar
	return Result{
		ID:      aadhaar,
		Found:   true,
		Message: "Aadhaar extracted successfully",
		Fields:  fields,
	}
}
