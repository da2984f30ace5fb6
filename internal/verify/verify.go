package verify

import (
	"math"

	"github.com/anime-shed/kyc-verifier-go/pkg/models"
)

// DefaultThreshold is the minimum similarity score for a field to match.
const DefaultThreshold = 80.0

// Display labels for scored fields, in scoring order.
const (
	labelPAN     = "PAN"
	labelAadhaar = "Aadhaar"
	labelName    = "Name"
	labelDOB     = "Date of Birth"
)

// Engine turns per-field similarity scores into a verification verdict.
type Engine struct {
	threshold float64
}

func NewEngine(threshold float64) *Engine {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Engine{threshold: threshold}
}

// Verify compares extracted fields against claimed values. A field is scored
// only when both sides are present and non-empty; a field absent on either
// side is excluded from scoring, never treated as a failure. With zero
// comparable fields the result is OverallMatch=true, OverallScore=0.
func (e *Engine) Verify(extracted models.ExtractedFields, claimed models.ClaimedFields) models.VerificationResult {
	result := models.VerificationResult{
		OverallMatch:  true,
		FieldScores:   []models.FieldScore{},
		ExtractedData: extracted,
	}

	comparisons := []struct {
		label    string
		key      string
		provided string
	}{
		{labelPAN, models.FieldPAN, claimed.PANNumber},
		{labelAadhaar, models.FieldAadhaar, claimed.AadhaarNumber},
		{labelName, models.FieldName, claimed.Name},
		{labelDOB, models.FieldDOB, claimed.DateOfBirth},
	}

	var total float64
	for _, cmp := range comparisons {
		value, ok := extracted[cmp.key]
		if !ok || cmp.provided == "" {
			continue
		}
		score := round2(Similarity(value, cmp.provided))
		match := score >= e.threshold
		result.FieldScores = append(result.FieldScores, models.FieldScore{
			Field:     cmp.label,
			Extracted: value,
			Provided:  cmp.provided,
			Score:     score,
			Distance:  EditDistance(value, cmp.provided),
			Match:     match,
		})
		if !match {
			result.OverallMatch = false
		}
		total += score
	}

	if len(result.FieldScores) > 0 {
		result.OverallScore = round2(total / float64(len(result.FieldScores)))
	}
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
