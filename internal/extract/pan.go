package extract

import (
	"strings"

	"github.com/anime-shed/kyc-verifier-go/internal/ocr"
	"github.com/anime-shed/kyc-verifier-go/pkg/models"
)

// PANExtractor recovers the 10-character structural PAN code plus best-effort
// holder name and date of birth.
type PANExtractor struct{}

func NewPANExtractor() *PANExtractor {
	return &PANExtractor{}
}

func (e *PANExtractor) DocumentType() DocumentType { return DocumentPAN }

func (e *PANExtractor) Modes() []ocr.Mode { return ocr.PANModes }

// Extract scans for 10-character alphanumeric tokens, applies confusion
// correction and accepts the first token that becomes structurally valid.
// The raw corpus is scanned first; if nothing validates, the scan repeats on
// a whitespace-stripped copy to catch codes the oracle split across tokens.
func (e *PANExtractor) Extract(corpus string) Result {
	fields := models.ExtractedFields{}

	pan, found := scanForPAN(strings.ToUpper(corpus))
	if !found {
		clean := strings.ReplaceAll(strings.ReplaceAll(corpus, " ", ""), "\n", "")
		pan, found = scanForPAN(strings.ToUpper(clean))
	}

	// Secondary fields are best-effort and independent of PAN success.
	if name, ok := firstMatch(corpus, panNameMatchers); ok {
		fields[models.FieldName] = name
	}
	if dob, ok := firstMatch(corpus, panDOBMatchers); ok {
		fields[models.FieldDOB] = dob
	}

	if !found {
		return Result{
			Message: "Could not find valid PAN pattern",
			Fields:  fields,
		}
	}

	fields[models.FieldPAN] = pan
	return Result{
		ID:      pan,
		Found:   true,
		Message: "PAN extracted successfully",
		Fields:  fields,
	}
}

// scanForPAN corrects every candidate token and takes the first one matching
// the 5-letter/4-digit/1-letter structure. First match wins; candidates that
// stay invalid after correction are skipped.
func scanForPAN(corpus string) (string, bool) {
	for _, token := range panTokenRe.FindAllString(corpus, -1) {
		corrected := CorrectPANCode(token)
		if panStructuralRe.MatchString(corrected) {
			return corrected, true
		}
	}
	return "", false
}
