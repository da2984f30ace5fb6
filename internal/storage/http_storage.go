package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DocumentFetcher retrieves raw document bytes from a remote source.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, documentURL string) ([]byte, error)
}

// HTTPDocumentFetcher implements DocumentFetcher over plain HTTP(S).
type HTTPDocumentFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPDocumentFetcher creates an HTTP document fetcher. maxBytes caps the
// response body; document scans beyond it are rejected. timeout bounds a
// single fetch attempt end to end.
func NewHTTPDocumentFetcher(maxBytes int64, timeout time.Duration) DocumentFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		DisableCompression:     false,
		MaxResponseHeaderBytes: 4096,

		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
	}

	return &HTTPDocumentFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxBytes: maxBytes,
	}
}

// FetchDocument downloads the document with up to 3 attempts. 4xx responses
// are non-retryable; 5xx and transport errors are retried with backoff.
func (h *HTTPDocumentFetcher) FetchDocument(ctx context.Context, documentURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", documentURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, application/pdf, */*")
	req.Header.Set("User-Agent", "KYC-Verifier/1.0")

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		resp, err := h.client.Do(req)
		if err != nil {
			lastErr = err
			if attempt < 2 {
				time.Sleep(time.Duration(attempt+1) * time.Second)
			}
			continue
		}

		if resp.StatusCode == http.StatusOK {
			data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("read document body: %w", err)
			}
			if int64(len(data)) > h.maxBytes {
				return nil, fmt.Errorf("document exceeds %d bytes", h.maxBytes)
			}
			return data, nil
		}

		resp.Body.Close()
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, fmt.Errorf("client error: status code %d", resp.StatusCode)
		}
		lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
		if attempt < 2 {
			time.Sleep(time.Duration(attempt+1) * time.Second)
		}
	}

	return nil, fmt.Errorf("failed to fetch document after 3 attempts: %w", lastErr)
}
