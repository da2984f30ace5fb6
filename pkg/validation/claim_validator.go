package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/anime-shed/kyc-verifier-go/pkg/models"
)

// Issue is a single validation finding on the declared fields.
type Issue struct {
	Field   string
	Message string
}

// ClaimValidator checks declared identity values before any OCR work runs,
// so malformed claims fail fast with a client error.
type ClaimValidator struct {
	panRe     *regexp.Regexp
	aadhaarRe *regexp.Regexp
	dobRe     *regexp.Regexp
}

func NewClaimValidator() *ClaimValidator {
	return &ClaimValidator{
		panRe:     regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`),
		aadhaarRe: regexp.MustCompile(`^\d{12}$`),
		dobRe:     regexp.MustCompile(`^\d{2}[/\-]\d{2}[/\-]\d{4}$`),
	}
}

// ValidateClaims checks the declared fields. requireIdentifiers is set for
// the combined verification flow, where name and both identity numbers are
// mandatory; standalone extraction passes false.
func (v *ClaimValidator) ValidateClaims(claimed models.ClaimedFields, requireIdentifiers bool) []Issue {
	var issues []Issue

	if strings.TrimSpace(claimed.Name) == "" {
		issues = append(issues, Issue{Field: "name", Message: "name is required"})
	}

	if requireIdentifiers && strings.TrimSpace(claimed.PANNumber) == "" {
		issues = append(issues, Issue{Field: "pan_number", Message: "pan_number is required"})
	}
	if requireIdentifiers && strings.TrimSpace(claimed.AadhaarNumber) == "" {
		issues = append(issues, Issue{Field: "aadhaar_number", Message: "aadhaar_number is required"})
	}

	if pan := strings.ToUpper(strings.TrimSpace(claimed.PANNumber)); pan != "" && !v.panRe.MatchString(pan) {
		issues = append(issues, Issue{Field: "pan_number", Message: "pan_number must be 5 letters, 4 digits and a letter"})
	}
	if aadhaar := strings.ReplaceAll(strings.TrimSpace(claimed.AadhaarNumber), " ", ""); aadhaar != "" && !v.aadhaarRe.MatchString(aadhaar) {
		issues = append(issues, Issue{Field: "aadhaar_number", Message: "aadhaar_number must be 12 digits"})
	}
	if dob := strings.TrimSpace(claimed.DateOfBirth); dob != "" && !v.dobRe.MatchString(dob) {
		issues = append(issues, Issue{Field: "date_of_birth", Message: "date_of_birth must be DD/MM/YYYY or DD-MM-YYYY"})
	}

	return issues
}

// ConvertIssuesToMessages flattens issues into printable messages.
func (v *ClaimValidator) ConvertIssuesToMessages(issues []Issue) []string {
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return messages
}
