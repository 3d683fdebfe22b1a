package lz78

import "fmt"

// Fill is the byte the decoder writes for a Final token's missing literal
// unless WithExactTerminator is set.
const Fill = ' '

// Option configures a Decoder.
type Option func(*Decoder)

// WithLegacyFallback makes an unresolved reference decode the way the old
// tool did instead of failing: the new phrase becomes a NUL byte followed by
// the token's literal. The output is meaningless but the stream keeps going.
func WithLegacyFallback() Option {
	return func(d *Decoder) {
		d.legacyFallback = true
	}
}

// WithExactTerminator makes Final tokens contribute only the referenced
// phrase, with no Fill byte.
func WithExactTerminator() Option {
	return func(d *Decoder) {
		d.exactTerminator = true
	}
}

// Decoder rebuilds the index to phrase dictionary from a token stream.
type Decoder struct {
	dict            [][]byte
	legacyFallback  bool
	exactTerminator bool
}

// NewDecoder creates a decoder holding only the empty phrase.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	d.reset()
	return d
}

func (d *Decoder) reset() {
	d.dict = make([][]byte, 1, 256)
	d.dict[0] = []byte{}
}

// Len is the number of dictionary entries, the empty phrase included.
func (d *Decoder) Len() int {
	return len(d.dict)
}

// Phrase returns dictionary entry i.
func (d *Decoder) Phrase(i int) ([]byte, bool) {
	if i < 0 || i >= len(d.dict) {
		return nil, false
	}
	return d.dict[i], true
}

// Decode resets the dictionary and reconstructs the bytes described by
// tokens. Every token adds exactly one entry, Final ones included.
func (d *Decoder) Decode(tokens []Token) ([]byte, error) {
	d.reset()

	var result []byte
	for n, tok := range tokens {
		var tail []byte
		switch {
		case !tok.Final:
			tail = []byte{tok.Char}
		case !d.exactTerminator:
			tail = []byte{Fill}
		}

		var entry []byte
		if prefix, ok := d.Phrase(tok.Ref); ok {
			entry = make([]byte, 0, len(prefix)+len(tail))
			entry = append(entry, prefix...)
			entry = append(entry, tail...)
		} else {
			if !d.legacyFallback {
				return nil, fmt.Errorf("%w: token %d refers to entry %d, dictionary has %d",
					ErrUnresolvedReference, n, tok.Ref, len(d.dict))
			}
			// The phrase being built is still empty here, so its first
			// byte reads as NUL.
			entry = append([]byte{0}, tail...)
		}

		result = append(result, entry...)
		d.dict = append(d.dict, entry)
	}

	if result == nil {
		result = []byte{}
	}
	return result, nil
}

// Decode is a convenience wrapper around a fresh Decoder.
func Decode(tokens []Token, opts ...Option) ([]byte, error) {
	return NewDecoder(opts...).Decode(tokens)
}
