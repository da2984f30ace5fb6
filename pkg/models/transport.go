package models

// Status values returned by the extraction and verification endpoints.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// ExtractionResponse is the body of /kyc/pan and /kyc/aadhaar.
type ExtractionResponse struct {
	Status        string          `json:"status"`
	PAN           *string         `json:"pan,omitempty"`
	Aadhaar       *string         `json:"aadhaar,omitempty"`
	Message       string          `json:"message"`
	ExtractedData ExtractedFields `json:"extracted_data"`
}

// VerifyResponse is the body of /kyc/verify.
type VerifyResponse struct {
	Status             string             `json:"status"`
	VerificationResult VerificationResult `json:"verification_result"`
	Timestamp          string             `json:"timestamp"`
}

// HealthResponse reports liveness plus engine reachability.
type HealthResponse struct {
	Status              string                 `json:"status"`
	TesseractConfigured bool                   `json:"tesseract_configured"`
	TesseractVersion    string                 `json:"tesseract_version,omitempty"`
	Metrics             map[string]interface{} `json:"metrics,omitempty"`
	Time                string                 `json:"time"`
}
