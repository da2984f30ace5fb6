package factory

import (
	"fmt"

	"github.com/anime-shed/kyc-verifier-go/internal/config"
	"github.com/anime-shed/kyc-verifier-go/internal/extract"
	"github.com/anime-shed/kyc-verifier-go/internal/storage"
)

// FetcherScheme represents supported remote document sources
type FetcherScheme string

const (
	// HTTPFetcher for plain http(s) document URLs
	HTTPFetcher FetcherScheme = "http"
	// AzureFetcher for Azure blob container URLs
	AzureFetcher FetcherScheme = "azure"
)

// ExtractorFactory creates document extractors
type ExtractorFactory interface {
	CreateExtractor(docType extract.DocumentType) (extract.DocumentExtractor, error)
}

// FetcherFactory creates remote document fetchers
type FetcherFactory interface {
	CreateFetcher(scheme FetcherScheme) (storage.DocumentFetcher, error)
}

type extractorFactory struct{}

// NewExtractorFactory creates a new extractor factory
func NewExtractorFactory() ExtractorFactory {
	return &extractorFactory{}
}

// CreateExtractor creates the extraction strategy for a document type
func (f *extractorFactory) CreateExtractor(docType extract.DocumentType) (extract.DocumentExtractor, error) {
	switch docType {
	case extract.DocumentPAN:
		return extract.NewPANExtractor(), nil
	case extract.DocumentAadhaar:
		return extract.NewAadhaarExtractor(), nil
	default:
		return nil, fmt.Errorf("unsupported document type: %s", docType)
	}
}

type fetcherFactory struct {
	cfg *config.Config
}

// NewFetcherFactory creates a new fetcher factory
func NewFetcherFactory(cfg *config.Config) FetcherFactory {
	return &fetcherFactory{cfg: cfg}
}

// CreateFetcher creates a document fetcher for the given source scheme
func (f *fetcherFactory) CreateFetcher(scheme FetcherScheme) (storage.DocumentFetcher, error) {
	switch scheme {
	case HTTPFetcher:
		return storage.NewHTTPDocumentFetcher(f.cfg.MaxRequestBodySize, f.cfg.FetchTimeout), nil
	case AzureFetcher:
		if !f.cfg.BlobSourceEnabled() {
			return nil, fmt.Errorf("azure source not configured")
		}
		return storage.NewAzureDocumentFetcher(f.cfg.AzureAccountName, f.cfg.AzureAccountKey)
	default:
		return nil, fmt.Errorf("unsupported fetcher scheme: %s", scheme)
	}
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	ExtractorFactory ExtractorFactory
	FetcherFactory   FetcherFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(cfg *config.Config) *ComponentFactory {
	return &ComponentFactory{
		ExtractorFactory: NewExtractorFactory(),
		FetcherFactory:   NewFetcherFactory(cfg),
	}
}
