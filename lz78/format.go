package lz78

import (
	"bytes"
	"fmt"
)

// Format selects the wire encoding of a token stream.
type Format int

const (
	FormatLegacy Format = iota
	FormatPacked
)

func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy"
	case FormatPacked:
		return "packed"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps a format name to its Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "legacy":
		return FormatLegacy, nil
	case "packed":
		return FormatPacked, nil
	}
	return 0, fmt.Errorf("unknown format %q (want legacy or packed)", name)
}

// DetectFormat guesses the format of an encoded stream. Legacy streams
// always start with a digit, packed streams with the magic.
func DetectFormat(data []byte) Format {
	if bytes.HasPrefix(data, []byte(packedMagic)) {
		return FormatPacked
	}
	return FormatLegacy
}

// Marshal renders tokens in format f.
func Marshal(tokens []Token, f Format) ([]byte, error) {
	switch f {
	case FormatLegacy:
		return AppendLegacy([]byte{}, tokens), nil
	case FormatPacked:
		return AppendPacked(nil, tokens)
	}
	return nil, fmt.Errorf("marshal: unsupported %v", f)
}

// Unmarshal parses a stream written in format f.
func Unmarshal(data []byte, f Format) ([]Token, error) {
	switch f {
	case FormatLegacy:
		return ParseLegacy(data)
	case FormatPacked:
		return ParsePacked(data)
	}
	return nil, fmt.Errorf("unmarshal: unsupported %v", f)
}

// Compress encodes src and renders the tokens in format f.
func Compress(src []byte, f Format) ([]byte, error) {
	return Marshal(Encode(src), f)
}

// Decompress parses data in format f and decodes it. Packed streams always
// decode their terminator exactly.
func Decompress(data []byte, f Format, opts ...Option) ([]byte, error) {
	tokens, err := Unmarshal(data, f)
	if err != nil {
		return nil, err
	}
	if f == FormatPacked {
		opts = append(opts, WithExactTerminator())
	}
	return Decode(tokens, opts...)
}
