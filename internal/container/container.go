package container

import (
	"net/http"

	"github.com/anime-shed/kyc-verifier-go/internal/config"
	"github.com/anime-shed/kyc-verifier-go/internal/factory"
	"github.com/anime-shed/kyc-verifier-go/internal/logger"
	"github.com/anime-shed/kyc-verifier-go/internal/observer"
	"github.com/anime-shed/kyc-verifier-go/internal/ocr"
	"github.com/anime-shed/kyc-verifier-go/internal/preprocess"
	"github.com/anime-shed/kyc-verifier-go/internal/repository"
	"github.com/anime-shed/kyc-verifier-go/internal/service"
	"github.com/anime-shed/kyc-verifier-go/internal/storage"
	"github.com/anime-shed/kyc-verifier-go/internal/transport"
	"github.com/anime-shed/kyc-verifier-go/internal/verify"
	"github.com/anime-shed/kyc-verifier-go/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Handler    http.Handler
	Service    service.KYCService
	Metrics    *observer.MetricsObserver
	workerPool *ocr.WorkerPool
}

// NewContainer wires the full dependency graph.
func NewContainer(cfg *config.Config) (*Container, error) {
	tempStore, err := storage.NewTempStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	repo := repository.NewDocumentRepository()
	normalizer := preprocess.NewNormalizer()

	engine := ocr.NewTesseractEngine(ocr.EngineConfig{
		Language:       cfg.OCRLanguage,
		TessdataPrefix: cfg.TessdataPrefix,
	})
	pool := ocr.NewWorkerPool(0)
	pool.Start()
	runner := ocr.NewRunner(engine, pool, cfg.OCRPassTimeout)

	verifier := verify.NewEngine(cfg.MatchThreshold)
	validator := validation.NewClaimValidator()
	factories := factory.NewComponentFactory(cfg)

	metrics := observer.NewMetricsObserver()
	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	svc := service.NewKYCService(
		repo,
		normalizer,
		runner,
		engine,
		verifier,
		validator,
		factories,
		tempStore,
		events,
	)

	return &Container{
		Config:     cfg,
		Handler:    transport.NewHandler(svc, metrics, cfg),
		Service:    svc,
		Metrics:    metrics,
		workerPool: pool,
	}, nil
}

// Close releases container resources.
func (c *Container) Close() {
	if c.workerPool != nil {
		c.workerPool.Close()
	}
}
