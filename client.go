package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"
)

// Client orchestrates a single compress or decompress run
type Client struct {
	config  *Config
	fetcher *FetchService
	logger  *log.Logger
}

// Creates a new client with all dependencies
func NewClient(config *Config) *Client {
	return &Client{
		config:  config,
		fetcher: NewFetchService(config),
		logger:  log.New(os.Stdout, "[Client] ", log.LstdFlags),
	}
}

// Reads the input, runs the codec locally or remotely and writes the output
func (c *Client) Run(ctx context.Context, opts *Options) (*Report, error) {
	data, err := c.fetcher.Read(ctx, opts.Input)
	if err != nil {
		return nil, err
	}

	req := Request{
		Op:             opts.Op,
		Format:         opts.Format,
		LegacyFallback: opts.LegacyFallback,
		Payload:        data,
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var resp *Response
	if opts.Remote {
		resp, err = c.callRemote(ctx, req)
	} else {
		resp, err = Process(req)
	}
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	// Interrupted runs leave no output behind
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.WriteFile(opts.Output, resp.Payload, 0o644); err != nil {
		return nil, fmt.Errorf("unable to open output file: %w", err)
	}

	report := &Report{
		Op:          opts.Op,
		Format:      resp.Format,
		Input:       opts.Input,
		Output:      opts.Output,
		InputBytes:  len(data),
		OutputBytes: len(resp.Payload),
		Tokens:      resp.Tokens,
		Elapsed:     elapsed,
	}
	if opts.Remote {
		report.Remote = c.config.URL
	}

	if opts.Stats {
		plain := data
		if opts.Op == OpDecompress {
			plain = resp.Payload
		}
		if report.ZstdBytes, err = ZstdSize(plain); err != nil {
			c.logger.Printf("Failed to measure zstd size: %v", err)
		}
	}

	return report, nil
}

// Sends the request to a codec service and waits for the answer
func (c *Client) callRemote(ctx context.Context, req Request) (*Response, error) {
	ws := NewWSClient(c.config)
	if err := ws.Connect(ctx); err != nil {
		return nil, err
	}
	defer ws.Close()

	resp, err := ws.Call(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("remote %s failed: %w", req.Op, err)
	}

	return resp, nil
}
