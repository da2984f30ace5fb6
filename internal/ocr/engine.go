package ocr

import (
	"context"
	"strings"
)

// Mode is a layout-assumption hint for a single recognition pass. The
// declared order is the canonical corpus order.
type Mode int

const (
	// ModeGeneralBlock assumes fully automatic page segmentation.
	ModeGeneralBlock Mode = iota
	// ModeSingleBlock assumes one uniform block of text.
	ModeSingleBlock
	// ModeSparseText finds as much text as possible in no particular order.
	ModeSparseText
	// ModeSparseTextOSD is sparse text with orientation and script detection.
	ModeSparseTextOSD
)

func (m Mode) String() string {
	switch m {
	case ModeGeneralBlock:
		return "general_block"
	case ModeSingleBlock:
		return "single_block"
	case ModeSparseText:
		return "sparse_text"
	case ModeSparseTextOSD:
		return "sparse_text_osd"
	default:
		return "unknown"
	}
}

// PANModes and AadhaarModes are the layout hints each document type is read
// under. Slice order determines corpus order.
var (
	PANModes     = []Mode{ModeGeneralBlock, ModeSingleBlock, ModeSparseText, ModeSparseTextOSD}
	AadhaarModes = []Mode{ModeGeneralBlock, ModeSingleBlock, ModeSparseText}
)

// Pass is one oracle invocation's output. Never mutated after creation.
type Pass struct {
	Mode Mode
	Text string
	Err  error
}

// Engine is the external text-recognition oracle. Implementations may be
// non-deterministic and may omit or corrupt characters.
type Engine interface {
	// Recognize returns raw text for an encoded image under the given mode.
	Recognize(ctx context.Context, imageBytes []byte, mode Mode) (string, error)
	// Version reports the engine version, or an error when the engine is
	// unreachable. Used by the liveness probe.
	Version() (string, error)
}

// BuildCorpus joins pass outputs into a single newline-separated corpus in
// pass order. Failed passes contribute nothing; given fixed pass outputs the
// result is deterministic regardless of how the passes were executed.
func BuildCorpus(passes []Pass) string {
	texts := make([]string, 0, len(passes))
	for _, p := range passes {
		if p.Err != nil {
			continue
		}
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n")
}
