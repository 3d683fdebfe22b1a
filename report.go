package main

import (
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Summary of a finished codec run
type Report struct {
	Op          string
	Format      string
	Input       string
	Output      string
	Remote      string        // Service URL when the run was remote
	InputBytes  int           // Size of the data read
	OutputBytes int           // Size of the data written
	Tokens      int           // Tokens produced or consumed
	ZstdBytes   int           // zstd size of the uncompressed side, 0 if not measured
	Elapsed     time.Duration // Time spent in the codec
}

// Output size relative to the uncompressed size
func (r *Report) Ratio() float64 {
	plain := r.InputBytes
	packed := r.OutputBytes
	if r.Op == OpDecompress {
		plain, packed = packed, plain
	}
	if plain == 0 {
		return 0
	}
	return float64(packed) / float64(plain)
}

// Measures how large the data gets with zstd at its default level
func ZstdSize(data []byte) (int, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer encoder.Close()

	return len(encoder.EncodeAll(data, nil)), nil
}
