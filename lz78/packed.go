package lz78

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/icza/bitio"
)

const (
	packedMagic   = "LZ78"
	packedVersion = 1
	packedHeader  = len(packedMagic) + 1
)

// refWidth is the number of bits needed for the reference of the token at
// position n. At that point the dictionary holds n+1 entries, so the
// largest valid reference is n.
func refWidth(n int) uint8 {
	w := bits.Len(uint(n))
	if w == 0 {
		w = 1
	}
	return uint8(w)
}

// AppendPacked appends tokens to dst in the packed binary form: the magic,
// a version byte, the token count as a uvarint, then a bit stream of
// (reference, final flag, literal) triples with the literal left out of
// Final tokens.
func AppendPacked(dst []byte, tokens []Token) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	buf.WriteString(packedMagic)
	buf.WriteByte(packedVersion)

	var count [binary.MaxVarintLen64]byte
	buf.Write(count[:binary.PutUvarint(count[:], uint64(len(tokens)))])

	w := bitio.NewWriter(buf)
	for n, tok := range tokens {
		if tok.Ref < 0 || tok.Ref > n {
			return nil, fmt.Errorf("%w: token %d refers to entry %d, dictionary has %d",
				ErrUnresolvedReference, n, tok.Ref, n+1)
		}
		if err := w.WriteBits(uint64(tok.Ref), refWidth(n)); err != nil {
			return nil, err
		}
		if err := w.WriteBool(tok.Final); err != nil {
			return nil, err
		}
		if tok.Final {
			continue
		}
		if err := w.WriteByte(tok.Char); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParsePacked reads a stream written by AppendPacked.
func ParsePacked(data []byte) ([]Token, error) {
	if len(data) < packedHeader || string(data[:len(packedMagic)]) != packedMagic {
		return nil, &SyntaxError{Offset: 0, Msg: "missing packed header"}
	}
	if v := data[len(packedMagic)]; v != packedVersion {
		return nil, &SyntaxError{Offset: len(packedMagic), Msg: fmt.Sprintf("unsupported version %d", v)}
	}

	body := bytes.NewReader(data[packedHeader:])
	count, err := binary.ReadUvarint(body)
	if err != nil {
		return nil, &SyntaxError{Offset: packedHeader, Msg: "bad token count"}
	}
	// Every token takes at least two bits.
	if count > uint64(body.Len())*4 {
		return nil, &SyntaxError{Offset: packedHeader, Msg: fmt.Sprintf("token count %d exceeds body", count)}
	}

	bodyStart := len(data) - body.Len()
	r := bitio.NewReader(body)
	truncated := func(n int) error {
		return &SyntaxError{Offset: bodyStart, Msg: fmt.Sprintf("truncated at token %d", n)}
	}

	tokens := make([]Token, 0, count)
	for n := 0; n < int(count); n++ {
		ref, err := r.ReadBits(refWidth(n))
		if err != nil {
			return nil, truncated(n)
		}
		final, err := r.ReadBool()
		if err != nil {
			return nil, truncated(n)
		}
		tok := Token{Ref: int(ref), Final: final}
		if !final {
			if tok.Char, err = r.ReadByte(); err != nil {
				return nil, truncated(n)
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
