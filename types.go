package main

import (
	"os"
	"time"
)

const (
	OpCompress   = "compress"
	OpDecompress = "decompress"
)

// Codec request sent to the websocket service
type Request struct {
	ID             string `json:"id"`              // Request ID, echoed in the response
	Op             string `json:"op"`              // "compress" or "decompress"
	Format         string `json:"format"`          // Wire format name ("legacy", "packed"); empty means legacy, or autodetect on decompress
	LegacyFallback bool   `json:"legacy_fallback"` // Decode unresolved references like the old tool
	Payload        []byte `json:"payload"`         // Input bytes (base64 in JSON)
}

// Codec response returned by the websocket service
type Response struct {
	ID      string `json:"id"`              // ID of the request this answers
	Op      string `json:"op"`              // Operation that was performed
	Format  string `json:"format"`          // Wire format that was used
	Tokens  int    `json:"tokens"`          // Number of tokens in the stream
	Payload []byte `json:"payload"`         // Output bytes (base64 in JSON)
	Error   string `json:"error,omitempty"` // Non-empty when the request failed
}

// Application configuration
type Config struct {
	ListenAddr       string
	Path             string
	URL              string
	HandshakeTimeout time.Duration
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	HTTPTimeout      time.Duration
	MaxMessageSize   int64
	Format           string
}

func DefaultConfig() *Config {
	config := &Config{
		ListenAddr:       "localhost:7878",
		Path:             "/lz78",
		URL:              "ws://localhost:7878/lz78",
		HandshakeTimeout: 10 * time.Second,
		ReadTimeout:      60 * time.Second,
		WriteTimeout:     10 * time.Second,
		HTTPTimeout:      30 * time.Second,
		MaxMessageSize:   64 << 20,
		Format:           "legacy",
	}

	// Environment overrides, applied before command line flags
	if addr := os.Getenv("LZ78_ADDR"); addr != "" {
		config.ListenAddr = addr
	}
	if url := os.Getenv("LZ78_URL"); url != "" {
		config.URL = url
	}

	return config
}
