package ocr

import (
	"errors"
	"testing"
)

func TestBuildCorpus_JoinsInPassOrder(t *testing.T) {
	passes := []Pass{
		{Mode: ModeGeneralBlock, Text: "first"},
		{Mode: ModeSingleBlock, Text: "second"},
		{Mode: ModeSparseText, Text: "third"},
	}

	corpus := BuildCorpus(passes)
	expected := "first\nsecond\nthird"
	if corpus != expected {
		t.Errorf("Expected %q, got %q", expected, corpus)
	}
}

func TestBuildCorpus_SkipsFailedPasses(t *testing.T) {
	passes := []Pass{
		{Mode: ModeGeneralBlock, Text: "first"},
		{Mode: ModeSingleBlock, Err: errors.New("pass timed out")},
		{Mode: ModeSparseText, Text: "third"},
	}

	corpus := BuildCorpus(passes)
	expected := "first\nthird"
	if corpus != expected {
		t.Errorf("Expected failed pass to contribute nothing, got %q", corpus)
	}
}

func TestBuildCorpus_AllFailed(t *testing.T) {
	passes := []Pass{
		{Mode: ModeGeneralBlock, Err: errors.New("boom")},
		{Mode: ModeSingleBlock, Err: errors.New("boom")},
	}

	if corpus := BuildCorpus(passes); corpus != "" {
		t.Errorf("Expected empty corpus, got %q", corpus)
	}
}

func TestBuildCorpus_Empty(t *testing.T) {
	if corpus := BuildCorpus(nil); corpus != "" {
		t.Errorf("Expected empty corpus for no passes, got %q", corpus)
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeGeneralBlock, "general_block"},
		{ModeSingleBlock, "single_block"},
		{ModeSparseText, "sparse_text"},
		{ModeSparseTextOSD, "sparse_text_osd"},
		{Mode(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.expected {
			t.Errorf("Mode(%d).String() = %q, expected %q", tt.mode, got, tt.expected)
		}
	}
}

func TestDocumentModeSets(t *testing.T) {
	if len(PANModes) != 4 {
		t.Errorf("Expected 4 PAN modes, got %d", len(PANModes))
	}
	if len(AadhaarModes) != 3 {
		t.Errorf("Expected 3 Aadhaar modes, got %d", len(AadhaarModes))
	}
	// Aadhaar reads under the same leading hints, without the OSD pass.
	for i, mode := range AadhaarModes {
		if PANModes[i] != mode {
			t.Errorf("Expected AadhaarModes[%d] to equal PANModes[%d]", i, i)
		}
	}
}
