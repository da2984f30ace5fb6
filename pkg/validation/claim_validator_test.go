package validation

import (
	"strings"
	"testing"

	"github.com/anime-shed/kyc-verifier-go/pkg/models"
)

func TestValidateClaims(t *testing.T) {
	validator := NewClaimValidator()

	tests := []struct {
		name               string
		claimed            models.ClaimedFields
		requireIdentifiers bool
		wantIssues         int
		wantField          string
	}{
		{
			name: "complete valid claims",
			claimed: models.ClaimedFields{
				Name:          "John Doe",
				PANNumber:     "ABCDE1234F",
				AadhaarNumber: "123456789012",
				DateOfBirth:   "01/01/1990",
			},
			requireIdentifiers: true,
			wantIssues:         0,
		},
		{
			name:               "missing name",
			claimed:            models.ClaimedFields{PANNumber: "ABCDE1234F", AadhaarNumber: "123456789012"},
			requireIdentifiers: true,
			wantIssues:         1,
			wantField:          "name",
		},
		{
			name:               "identifiers optional for standalone extraction",
			claimed:            models.ClaimedFields{Name: "John Doe"},
			requireIdentifiers: false,
			wantIssues:         0,
		},
		{
			name:               "identifiers required for verification",
			claimed:            models.ClaimedFields{Name: "John Doe"},
			requireIdentifiers: true,
			wantIssues:         2,
		},
		{
			name: "malformed pan",
			claimed: models.ClaimedFields{
				Name:          "John Doe",
				PANNumber:     "1234567890",
				AadhaarNumber: "123456789012",
			},
			requireIdentifiers: true,
			wantIssues:         1,
			wantField:          "pan_number",
		},
		{
			name: "malformed aadhaar",
			claimed: models.ClaimedFields{
				Name:          "John Doe",
				PANNumber:     "ABCDE1234F",
				AadhaarNumber: "12345",
			},
			requireIdentifiers: true,
			wantIssues:         1,
			wantField:          "aadhaar_number",
		},
		{
			name: "malformed dob",
			claimed: models.ClaimedFields{
				Name:        "John Doe",
				DateOfBirth: "1990-01-01",
			},
			requireIdentifiers: false,
			wantIssues:         1,
			wantField:          "date_of_birth",
		},
		{
			name: "lowercase pan accepted",
			claimed: models.ClaimedFields{
				Name:      "John Doe",
				PANNumber: "abcde1234f",
			},
			requireIdentifiers: false,
			wantIssues:         0,
		},
		{
			name: "spaced aadhaar accepted",
			claimed: models.ClaimedFields{
				Name:          "John Doe",
				AadhaarNumber: "1234 5678 9012",
			},
			requireIdentifiers: false,
			wantIssues:         0,
		},
		{
			name: "dash separated dob accepted",
			claimed: models.ClaimedFields{
				Name:        "John Doe",
				DateOfBirth: "01-01-1990",
			},
			requireIdentifiers: false,
			wantIssues:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := validator.ValidateClaims(tt.claimed, tt.requireIdentifiers)
			if len(issues) != tt.wantIssues {
				t.Fatalf("Expected %d issues, got %d: %+v", tt.wantIssues, len(issues), issues)
			}
			if tt.wantField != "" && issues[0].Field != tt.wantField {
				t.Errorf("Expected issue on field %s, got %s", tt.wantField, issues[0].Field)
			}
		})
	}
}

func TestConvertIssuesToMessages(t *testing.T) {
	validator := NewClaimValidator()

	issues := validator.ValidateClaims(models.ClaimedFields{}, true)
	messages := validator.ConvertIssuesToMessages(issues)

	if len(messages) != len(issues) {
		t.Fatalf("Expected %d messages, got %d", len(issues), len(messages))
	}
	for _, msg := range messages {
		if !strings.Contains(msg, ": ") {
			t.Errorf("Expected field-prefixed message, got %q", msg)
		}
	}
}
