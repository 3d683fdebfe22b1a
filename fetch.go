package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
)

// Handles reading codec input from local files or HTTP URLs
type FetchService struct {
	client *http.Client
	config *Config
	logger *log.Logger
}

// Creates a new fetch service
func NewFetchService(config *Config) *FetchService {
	return &FetchService{
		client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
		config: config,
		logger: log.New(os.Stdout, "[Fetcher] ", log.LstdFlags),
	}
}

// Reports whether the input names a remote resource
func IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// Reads the whole input, from disk or over HTTP
func (f *FetchService) Read(ctx context.Context, input string) ([]byte, error) {
	if IsURL(input) {
		return f.Download(ctx, input)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("unable to open input file: %w", err)
	}

	return data, nil
}

// Downloads the body of an HTTP resource
func (f *FetchService) Download(ctx context.Context, url string) ([]byte, error) {
	f.logger.Printf("Downloading %s...", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	f.logger.Printf("Downloaded %d bytes", len(body))
	return body, nil
}
