package main

import (
	"fmt"

	"github.com/branila/lz78/lz78"
)

// Runs a codec request and returns the response payload
func Process(req Request) (*Response, error) {
	switch req.Op {
	case OpCompress:
		return compress(req)
	case OpDecompress:
		return decompress(req)
	default:
		return nil, fmt.Errorf("invalid operation %q", req.Op)
	}
}

func compress(req Request) (*Response, error) {
	format := lz78.FormatLegacy
	if req.Format != "" {
		f, err := lz78.ParseFormat(req.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	tokens := lz78.Encode(req.Payload)
	payload, err := lz78.Marshal(tokens, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tokens: %w", err)
	}

	return &Response{
		ID:      req.ID,
		Op:      req.Op,
		Format:  format.String(),
		Tokens:  len(tokens),
		Payload: payload,
	}, nil
}

func decompress(req Request) (*Response, error) {
	format := lz78.DetectFormat(req.Payload)
	if req.Format != "" {
		f, err := lz78.ParseFormat(req.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	tokens, err := lz78.Unmarshal(req.Payload, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s stream: %w", format, err)
	}

	var opts []lz78.Option
	if req.LegacyFallback {
		opts = append(opts, lz78.WithLegacyFallback())
	}
	if format == lz78.FormatPacked {
		opts = append(opts, lz78.WithExactTerminator())
	}

	payload, err := lz78.Decode(tokens, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tokens: %w", err)
	}

	return &Response{
		ID:      req.ID,
		Op:      req.Op,
		Format:  format.String(),
		Tokens:  len(tokens),
		Payload: payload,
	}, nil
}
