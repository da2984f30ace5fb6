package extract

import (
	"testing"

	"github.com/anime-shed/kyc-verifier-go/pkg/models"
)

func TestPANExtractor_ValidCode(t *testing.T) {
	corpus := "INCOME TAX DEPARTMENT\nGOVT OF INDIA\nPermanent Account Number\nABCDE1234F"

	result := NewPANExtractor().Extract(corpus)

	if !result.Found {
		t.Fatalf("Expected PAN to be found: %s", result.Message)
	}
	if result.ID != "ABCDE1234F" {
		t.Errorf("Expected ABCDE1234F, got %s", result.ID)
	}
	if result.Message != "PAN extracted successfully" {
		t.Errorf("Unexpected message: %s", result.Message)
	}
	if result.Fields[models.FieldPAN] != "ABCDE1234F" {
		t.Errorf("Expected pan field in extracted data, got %v", result.Fields)
	}
}

func TestPANExtractor_LowercaseCorpus(t *testing.T) {
	result := NewPANExtractor().Extract("pan: abcde1234f")
	if !result.Found || result.ID != "ABCDE1234F" {
		t.Errorf("Expected case-folded extraction, got %+v", result)
	}
}

func TestPANExtractor_ConfusedCharactersRepaired(t *testing.T) {
	// The oracle read 2 as Z in a digit slot.
	result := NewPANExtractor().Extract("number ABCDE1Z34F issued")
	if !result.Found {
		t.Fatalf("Expected corrected PAN to be found: %s", result.Message)
	}
	if result.ID != "ABCDE1234F" {
		t.Errorf("Expected ABCDE1234F after correction, got %s", result.ID)
	}
}

func TestPANExtractor_WhitespaceSplitCode(t *testing.T) {
	// A code the oracle split across tokens is only recovered on the
	// stripped rescan.
	result := NewPANExtractor().Extract("ABCDE 1234F")
	if !result.Found {
		t.Fatalf("Expected split PAN to be found: %s", result.Message)
	}
	if result.ID != "ABCDE1234F" {
		t.Errorf("Expected ABCDE1234F, got %s", result.ID)
	}
}

func TestPANExtractor_NotFound(t *testing.T) {
	result := NewPANExtractor().Extract("no code in this text")

	if result.Found {
		t.Error("Expected no PAN to be found")
	}
	if result.ID != "" {
		t.Errorf("Expected empty ID, got %s", result.ID)
	}
	if result.Message != "Could not find valid PAN pattern" {
		t.Errorf("Unexpected message: %s", result.Message)
	}
	if result.Fields == nil {
		t.Error("Expected non-nil fields map")
	}
}

func TestPANExtractor_InvalidCandidatesSkipped(t *testing.T) {
	// The first 10-char token stays structurally invalid after correction;
	// the scan must move on to the real code.
	result := NewPANExtractor().Extract("XXXXXXXXXX then ABCDE1234F")
	if !result.Found || result.ID != "ABCDE1234F" {
		t.Errorf("Expected scan to skip invalid candidate, got %+v", result)
	}
}

func TestPANExtractor_SecondaryFields(t *testing.T) {
	corpus := "Name: JOHN DOE\nDate of Birth: 01/01/1990\nABCDE1234F"

	result := NewPANExtractor().Extract(corpus)

	if result.Fields[models.FieldName] != "JOHN DOE" {
		t.Errorf("Expected name JOHN DOE, got %q", result.Fields[models.FieldName])
	}
	if result.Fields[models.FieldDOB] != "01/01/1990" {
		t.Errorf("Expected dob 01/01/1990, got %q", result.Fields[models.FieldDOB])
	}
}

func TestPANExtractor_SecondaryFieldsIndependentOfCode(t *testing.T) {
	// Name and DOB are reported even when no valid code exists.
	result := NewPANExtractor().Extract("Name: JANE ROE\nDOB: 31/12/1985")

	if result.Found {
		t.Error("Expected no PAN in corpus")
	}
	if result.Fields[models.FieldName] != "JANE ROE" {
		t.Errorf("Expected name JANE ROE, got %q", result.Fields[models.FieldName])
	}
	if result.Fields[models.FieldDOB] != "31/12/1985" {
		t.Errorf("Expected dob 31/12/1985, got %q", result.Fields[models.FieldDOB])
	}
}
