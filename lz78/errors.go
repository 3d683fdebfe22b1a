package lz78

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is matched by every parse failure of a token stream.
	ErrMalformed = errors.New("lz78: malformed token stream")

	// ErrUnresolvedReference reports a token whose reference index is not
	// in the dictionary yet.
	ErrUnresolvedReference = errors.New("lz78: unresolved reference")
)

// SyntaxError describes where a token stream stopped making sense.
type SyntaxError struct {
	Offset int // byte offset into the encoded stream
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("lz78: malformed token stream at offset %d: %s", e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrMalformed
}
