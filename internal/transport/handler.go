package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/anime-shed/kyc-verifier-go/internal/config"
	"github.com/anime-shed/kyc-verifier-go/internal/extract"
	"github.com/anime-shed/kyc-verifier-go/internal/logger"
	"github.com/anime-shed/kyc-verifier-go/internal/observer"
	"github.com/anime-shed/kyc-verifier-go/internal/service"
	"github.com/anime-shed/kyc-verifier-go/pkg/models"

	apperrors "github.com/anime-shed/kyc-verifier-go/internal/errors"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func NewHandler(svc service.KYCService, metrics *observer.MetricsObserver, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck(svc, metrics))
	r.POST("/kyc/pan", extractDocument(svc, cfg, extract.DocumentPAN))
	r.POST("/kyc/aadhaar", extractDocument(svc, cfg, extract.DocumentAadhaar))
	r.POST("/kyc/verify", verifyKYC(svc, cfg))

	return r
}

// documentInput resolves the document source for a multipart field: either
// an uploaded file or a remote URL form value named "<field>_url" (plain
// "url" for single-document endpoints).
func documentInput(c *gin.Context, fileField, urlField string) (service.DocumentInput, error) {
	if fileHeader, err := c.FormFile(fileField); err == nil {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowedExtensions[ext] {
			return service.DocumentInput{}, apperrors.NewValidationError(
				fmt.Sprintf("invalid file type %q, allowed: jpg, jpeg, png, pdf", ext), nil)
		}
		data, err := readUpload(fileHeader)
		if err != nil {
			return service.DocumentInput{}, apperrors.NewValidationError("failed to read upload", err)
		}
		return service.DocumentInput{Filename: fileHeader.Filename, Data: data}, nil
	}

	if docURL := c.PostForm(urlField); docURL != "" {
		if err := validateDocumentURL(docURL); err != nil {
			return service.DocumentInput{}, err
		}
		return service.DocumentInput{Filename: filepath.Base(docURL), URL: docURL}, nil
	}

	return service.DocumentInput{}, apperrors.NewValidationError(
		fmt.Sprintf("no %s provided", fileField), nil)
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func validateDocumentURL(documentURL string) error {
	parsedURL, err := url.Parse(documentURL)
	if err != nil {
		return apperrors.NewValidationError("Invalid URL format", err)
	}
	if parsedURL.Host == "" {
		return apperrors.NewValidationError("URL must have a valid host", nil)
	}
	return nil
}

func extractDocument(svc service.KYCService, cfg *config.Config, docType extract.DocumentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"document_type": docType,
			"ip":            c.ClientIP(),
		}).Info("Processing document extraction request")

		input, err := documentInput(c, "file", "url")
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "invalid document input", err)
			return
		}

		result, err := svc.ExtractDocument(ctx, docType, input)
		if err != nil {
			respondError(c, determineStatusCode(err), "extraction failed", err)
			return
		}

		c.JSON(extractionStatus(result), extractionResponse(docType, result))
	}
}

// extractionStatus maps a pipeline result to its HTTP status: a missing
// identifier is a reportable outcome, not an error, but still signals an
// unprocessable document.
func extractionStatus(result extract.Result) int {
	if result.Found {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}

func extractionResponse(docType extract.DocumentType, result extract.Result) models.ExtractionResponse {
	resp := models.ExtractionResponse{
		Status:        models.StatusFailed,
		Message:       result.Message,
		ExtractedData: result.Fields,
	}
	if result.Found {
		resp.Status = models.StatusSuccess
	}

	var id *string
	if result.Found {
		id = &result.ID
	}
	if docType == extract.DocumentPAN {
		resp.PAN = id
	} else {
		resp.Aadhaar = id
	}
	return resp
}

func verifyKYC(svc service.KYCService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Processing verification request")

		panInput, err := documentInput(c, "pan_file", "pan_url")
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "invalid PAN document", err)
			return
		}
		aadhaarInput, err := documentInput(c, "aadhaar_file", "aadhaar_url")
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "invalid Aadhaar document", err)
			return
		}

		req := service.VerifyRequest{
			PANDocument:     panInput,
			AadhaarDocument: aadhaarInput,
			Claimed: models.ClaimedFields{
				Name:          c.PostForm("name"),
				PANNumber:     c.PostForm("pan_number"),
				AadhaarNumber: c.PostForm("aadhaar_number"),
				DateOfBirth:   c.PostForm("date_of_birth"),
				Address:       c.PostForm("address"),
			},
		}

		resp, err := svc.Verify(ctx, req)
		if err != nil {
			respondError(c, determineStatusCode(err), "verification failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"overall_match":      resp.VerificationResult.OverallMatch,
			"overall_score":      resp.VerificationResult.OverallScore,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Verification request completed")

		c.JSON(http.StatusOK, resp)
	}
}

func healthCheck(svc service.KYCService, metrics *observer.MetricsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		version, err := svc.EngineVersion()
		resp := models.HealthResponse{
			Status:              "healthy",
			TesseractConfigured: err == nil && version != "",
			TesseractVersion:    version,
			Time:                time.Now().UTC().Format(time.RFC3339),
		}
		if metrics != nil {
			resp.Metrics = metrics.GetMetrics()
		}
		c.JSON(http.StatusOK, resp)
	}
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
