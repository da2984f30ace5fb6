package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anime-shed/kyc-verifier-go/internal/extract"
	"github.com/anime-shed/kyc-verifier-go/internal/factory"
	"github.com/anime-shed/kyc-verifier-go/internal/logger"
	"github.com/anime-shed/kyc-verifier-go/internal/observer"
	"github.com/anime-shed/kyc-verifier-go/internal/ocr"
	"github.com/anime-shed/kyc-verifier-go/internal/preprocess"
	"github.com/anime-shed/kyc-verifier-go/internal/repository"
	"github.com/anime-shed/kyc-verifier-go/internal/storage"
	"github.com/anime-shed/kyc-verifier-go/internal/verify"
	"github.com/anime-shed/kyc-verifier-go/pkg/models"
	"github.com/anime-shed/kyc-verifier-go/pkg/validation"

	apperrors "github.com/anime-shed/kyc-verifier-go/internal/errors"
)

// DocumentInput is one uploaded or URL-sourced document.
type DocumentInput struct {
	Filename string
	Data     []byte
	URL      string
}

// VerifyRequest is the combined verification input.
type VerifyRequest struct {
	PANDocument     DocumentInput
	AadhaarDocument DocumentInput
	Claimed         models.ClaimedFields
}

// KYCService runs the extraction and verification pipeline.
type KYCService interface {
	// ExtractDocument runs the full per-document pipeline. A missing
	// identifier is reported through the Result, not an error.
	ExtractDocument(ctx context.Context, docType extract.DocumentType, input DocumentInput) (extract.Result, error)
	// Verify extracts both documents and scores them against the claims.
	Verify(ctx context.Context, req VerifyRequest) (*models.VerifyResponse, error)
	// EngineVersion reports the recognition engine version for the probe.
	EngineVersion() (string, error)
}

type kycService struct {
	repo       repository.DocumentRepository
	normalizer *preprocess.Normalizer
	runner     *ocr.Runner
	engine     ocr.Engine
	verifier   *verify.Engine
	validator  *validation.ClaimValidator
	factories  *factory.ComponentFactory
	tempStore  *storage.TempStore
	events     observer.Subject
}

// NewKYCService creates a new KYC pipeline service
func NewKYCService(
	repo repository.DocumentRepository,
	normalizer *preprocess.Normalizer,
	runner *ocr.Runner,
	engine ocr.Engine,
	verifier *verify.Engine,
	validator *validation.ClaimValidator,
	factories *factory.ComponentFactory,
	tempStore *storage.TempStore,
	events observer.Subject,
) KYCService {
	return &kycService{
		repo:       repo,
		normalizer: normalizer,
		runner:     runner,
		engine:     engine,
		verifier:   verifier,
		validator:  validator,
		factories:  factories,
		tempStore:  tempStore,
		events:     events,
	}
}

func (s *kycService) ExtractDocument(ctx context.Context, docType extract.DocumentType, input DocumentInput) (extract.Result, error) {
	start := time.Now()
	s.publish(ctx, observer.KYCEvent{
		EventType:    observer.ExtractionStarted,
		Timestamp:    start,
		DocumentType: string(docType),
	})

	result, err := s.runPipeline(ctx, docType, input)

	if err != nil {
		s.publish(ctx, observer.KYCEvent{
			EventType:      observer.ExtractionFailed,
			Timestamp:      time.Now(),
			DocumentType:   string(docType),
			ProcessingTime: time.Since(start),
			ErrorMessage:   err.Error(),
		})
		return extract.Result{}, err
	}

	s.publish(ctx, observer.KYCEvent{
		EventType:      observer.ExtractionCompleted,
		Timestamp:      time.Now(),
		DocumentType:   string(docType),
		ProcessingTime: time.Since(start),
		Success:        result.Found,
	})
	return result, nil
}

// runPipeline resolves the document bytes, stages them in scratch storage,
// and runs normalize -> recognition passes -> extraction. The scratch file
// is removed on every exit path.
func (s *kycService) runPipeline(ctx context.Context, docType extract.DocumentType, input DocumentInput) (extract.Result, error) {
	data, err := s.resolveDocument(ctx, input)
	if err != nil {
		return extract.Result{}, err
	}
	if len(data) == 0 {
		return extract.Result{}, apperrors.NewValidationError("empty document payload", nil)
	}

	path, cleanup, err := s.tempStore.Save(input.Filename, data)
	if err != nil {
		return extract.Result{}, apperrors.NewInternalError("failed to stage document", err)
	}
	defer cleanup()

	staged, err := os.ReadFile(path)
	if err != nil {
		return extract.Result{}, apperrors.NewInternalError("failed to read staged document", err)
	}

	img, err := s.repo.Decode(ctx, staged)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeDecode) {
			// Undecodable bytes are a normal FAILED outcome, not a fault.
			return extract.Result{
				Message: "Failed to process image",
				Fields:  models.ExtractedFields{},
			}, nil
		}
		return extract.Result{}, err
	}

	normalized, err := s.normalizer.Normalize(img)
	if err != nil {
		return extract.Result{
			Message: "Failed to process image",
			Fields:  models.ExtractedFields{},
		}, nil
	}

	encoded, err := preprocess.EncodePNG(normalized)
	if err != nil {
		return extract.Result{}, apperrors.NewInternalError("failed to encode normalized image", err)
	}

	extractor, err := s.factories.ExtractorFactory.CreateExtractor(docType)
	if err != nil {
		return extract.Result{}, apperrors.NewInternalError("unknown document type", err)
	}

	passes := s.runner.RunPasses(ctx, encoded, extractor.Modes())
	corpus := ocr.BuildCorpus(passes)
	return extractor.Extract(corpus), nil
}

// resolveDocument returns the raw bytes for an input, fetching URL-sourced
// documents through the matching fetcher.
func (s *kycService) resolveDocument(ctx context.Context, input DocumentInput) ([]byte, error) {
	if input.URL == "" {
		return input.Data, nil
	}

	scheme := factory.HTTPFetcher
	if strings.HasPrefix(input.URL, "azure://") || strings.Contains(input.URL, ".blob.core.windows.net") {
		scheme = factory.AzureFetcher
	}
	fetcher, err := s.factories.FetcherFactory.CreateFetcher(scheme)
	if err != nil {
		return nil, apperrors.NewValidationError("document source not supported", err)
	}

	data, err := fetcher.FetchDocument(ctx, input.URL)
	if err != nil {
		s.publish(ctx, observer.KYCEvent{
			EventType:    observer.DocumentFetchFailed,
			Timestamp:    time.Now(),
			ErrorMessage: err.Error(),
		})
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewTimeoutError("document fetch timed out", err)
		}
		return nil, apperrors.NewNetworkError("failed to fetch document", err)
	}

	s.publish(ctx, observer.KYCEvent{
		EventType: observer.DocumentFetched,
		Timestamp: time.Now(),
		Metadata:  map[string]interface{}{"bytes": len(data)},
	})
	return data, nil
}

func (s *kycService) Verify(ctx context.Context, req VerifyRequest) (*models.VerifyResponse, error) {
	if issues := s.validator.ValidateClaims(req.Claimed, true); len(issues) > 0 {
		return nil, apperrors.NewValidationError(
			strings.Join(s.validator.ConvertIssuesToMessages(issues), "; "), nil)
	}

	allExtracted := models.ExtractedFields{}

	// Each document's failure degrades only its own contribution.
	panResult, err := s.ExtractDocument(ctx, extract.DocumentPAN, req.PANDocument)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"document_type": extract.DocumentPAN,
		}).Error("PAN extraction failed during verification")
	} else {
		allExtracted = allExtracted.Merge(panResult.Fields)
	}

	aadhaarResult, err := s.ExtractDocument(ctx, extract.DocumentAadhaar, req.AadhaarDocument)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"document_type": extract.DocumentAadhaar,
		}).Error("Aadhaar extraction failed during verification")
	} else {
		allExtracted = allExtracted.Merge(aadhaarResult.Fields)
	}

	verification := s.verifier.Verify(allExtracted, req.Claimed)

	status := models.StatusFailed
	if verification.OverallMatch {
		status = models.StatusSuccess
	}

	s.publish(ctx, observer.KYCEvent{
		EventType: observer.VerificationCompleted,
		Timestamp: time.Now(),
		Success:   verification.OverallMatch,
		Metadata: map[string]interface{}{
			"overall_score": verification.OverallScore,
			"field_count":   len(verification.FieldScores),
		},
	})

	return &models.VerifyResponse{
		Status:             status,
		VerificationResult: verification,
		Timestamp:          time.Now().Format(time.RFC3339),
	}, nil
}

func (s *kycService) EngineVersion() (string, error) {
	return s.engine.Version()
}

func (s *kycService) publish(ctx context.Context, event observer.KYCEvent) {
	if s.events != nil {
		s.events.NotifyObservers(ctx, event)
	}
}
