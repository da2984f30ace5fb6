package models

// Canonical extracted-field keys. A key is present in ExtractedFields only
// when a pattern actually matched; absence means "not found".
const (
	FieldPAN     = "pan"
	FieldAadhaar = "aadhaar"
	FieldName    = "name"
	FieldDOB     = "dob"
	FieldAddress = "address"
)

// ExtractedFields maps field keys to the values recovered from a document.
type ExtractedFields map[string]string

// Merge returns a copy of e with all entries from other added. Entries in
// other win on key collision, matching how a later document overrides an
// earlier one in a combined verification.
func (e ExtractedFields) Merge(other ExtractedFields) ExtractedFields {
	merged := make(ExtractedFields, len(e)+len(other))
	for k, v := range e {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// ClaimedFields carries the user-declared identity values to verify against.
type ClaimedFields struct {
	Name          string `json:"name"`
	PANNumber     string `json:"pan_number,omitempty"`
	AadhaarNumber string `json:"aadhaar_number,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Address       string `json:"address,omitempty"`
}

// FieldScore is the comparison result for a single field.
type FieldScore struct {
	Field     string  `json:"field"`
	Extracted string  `json:"extracted"`
	Provided  string  `json:"provided"`
	Score     float64 `json:"score"`
	Distance  int     `json:"distance"`
	Match     bool    `json:"match"`
}

// VerificationResult aggregates per-field scores into an overall verdict.
//
// OverallMatch starts true and flips false the moment any produced FieldScore
// fails; fields missing on either side are excluded from scoring rather than
// counted as failures. With zero comparable fields the result is
// OverallMatch=true and OverallScore=0.
type VerificationResult struct {
	OverallMatch  bool            `json:"overall_match"`
	OverallScore  float64         `json:"overall_score"`
	FieldScores   []FieldScore    `json:"field_scores"`
	ExtractedData ExtractedFields `json:"extracted_data"`
}
