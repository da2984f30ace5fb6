package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	apperrors "github.com/anime-shed/kyc-verifier-go/internal/errors"
)

// EngineConfig carries the OCR engine settings resolved at process start.
type EngineConfig struct {
	Language       string
	TessdataPrefix string
}

// TesseractEngine implements Engine on top of a local Tesseract install.
// A fresh client is created per pass; gosseract clients are not safe for
// concurrent reuse.
type TesseractEngine struct {
	cfg EngineConfig
}

func NewTesseractEngine(cfg EngineConfig) *TesseractEngine {
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &TesseractEngine{cfg: cfg}
}

func (e *TesseractEngine) pageSegMode(mode Mode) gosseract.PageSegMode {
	switch mode {
	case ModeSingleBlock:
		return gosseract.PSM_SINGLE_BLOCK
	case ModeSparseText:
		return gosseract.PSM_SPARSE_TEXT
	case ModeSparseTextOSD:
		return gosseract.PSM_SPARSE_TEXT_OSD
	default:
		return gosseract.PSM_AUTO
	}
}

// Recognize runs one Tesseract pass. The blocking C call is abandoned when
// ctx expires; the caller treats that as a failed pass, not a failed request.
func (e *TesseractEngine) Recognize(ctx context.Context, imageBytes []byte, mode Mode) (string, error) {
	type passResult struct {
		text string
		err  error
	}
	done := make(chan passResult, 1)

	go func() {
		client := gosseract.NewClient()
		defer client.Close()

		if err := client.SetLanguage(e.cfg.Language); err != nil {
			done <- passResult{err: fmt.Errorf("set language %q: %w", e.cfg.Language, err)}
			return
		}
		if e.cfg.TessdataPrefix != "" {
			if err := client.SetTessdataPrefix(e.cfg.TessdataPrefix); err != nil {
				done <- passResult{err: fmt.Errorf("set tessdata prefix: %w", err)}
				return
			}
		}
		if err := client.SetPageSegMode(e.pageSegMode(mode)); err != nil {
			done <- passResult{err: fmt.Errorf("set page seg mode %s: %w", mode, err)}
			return
		}
		if err := client.SetImageFromBytes(imageBytes); err != nil {
			done <- passResult{err: fmt.Errorf("set image: %w", err)}
			return
		}
		text, err := client.Text()
		done <- passResult{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		return "", apperrors.NewTimeoutError(fmt.Sprintf("recognition pass %s timed out", mode), ctx.Err())
	}
}

// Version reports the Tesseract version string.
func (e *TesseractEngine) Version() (version string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tesseract unavailable: %v", r)
		}
	}()
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version(), nil
}
