package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is resolved once at process start and passed down explicitly; the
// extraction pipeline never reads ambient environment state.
type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	FetchTimeout       time.Duration
	OCRPassTimeout     time.Duration
	MaxRequestBodySize int64

	// UploadDir holds per-request scratch files, uniquely named and removed
	// when the request finishes.
	UploadDir string

	// OCR engine settings handed to the recognition oracle at construction.
	OCRLanguage    string
	TessdataPrefix string

	// MatchThreshold is the minimum similarity score for a field to count as
	// matched.
	MatchThreshold float64

	// Optional Azure credentials for blob-sourced documents.
	AzureAccountName string
	AzureAccountKey  string
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// BlobSourceEnabled reports whether Azure-sourced documents can be fetched.
func (c *Config) BlobSourceEnabled() bool {
	return c.AzureAccountName != "" && c.AzureAccountKey != ""
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 60*time.Second),
		FetchTimeout:       parseDurationOrDefault("FETCH_TIMEOUT", 15*time.Second),
		OCRPassTimeout:     parseDurationOrDefault("OCR_PASS_TIMEOUT", 10*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 20*1024*1024), // 20MB, two document scans
		UploadDir:          getEnvOrDefault("UPLOAD_DIR", "uploads"),
		OCRLanguage:        getEnvOrDefault("OCR_LANGUAGE", "eng"),
		TessdataPrefix:     os.Getenv("TESSDATA_PREFIX"),
		MatchThreshold:     parseFloatOrDefault("MATCH_THRESHOLD", 80.0),
		AzureAccountName:   os.Getenv("AZURE_ACCOUNT_NAME"),
		AzureAccountKey:    os.Getenv("AZURE_ACCOUNT_KEY"),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.FetchTimeout <= 0 || cfg.OCRPassTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, ocr=%s)",
			cfg.RequestTimeout, cfg.FetchTimeout, cfg.OCRPassTimeout)
	}
	if cfg.MatchThreshold <= 0 || cfg.MatchThreshold > 100 {
		return nil, fmt.Errorf("MATCH_THRESHOLD must be in (0,100] (got %v)", cfg.MatchThreshold)
	}
	if cfg.UploadDir == "" {
		return nil, fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
