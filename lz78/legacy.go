package lz78

import (
	"strconv"
)

const (
	legacyDelimiter  = '^'
	legacyTerminator = 0
)

// AppendLegacy appends tokens to dst in the legacy text form:
// decimal reference, '^', one byte. Final tokens carry a NUL byte.
func AppendLegacy(dst []byte, tokens []Token) []byte {
	for _, tok := range tokens {
		dst = strconv.AppendInt(dst, int64(tok.Ref), 10)
		dst = append(dst, legacyDelimiter)
		if tok.Final {
			dst = append(dst, legacyTerminator)
		} else {
			dst = append(dst, tok.Char)
		}
	}
	return dst
}

// ParseLegacy splits a legacy stream into tokens. Any NUL in literal
// position is read as a terminator, since the format cannot tell the two
// apart.
func ParseLegacy(data []byte) ([]Token, error) {
	var tokens []Token
	for i := 0; i < len(data); {
		start := i
		for i < len(data) && data[i] != legacyDelimiter {
			if data[i] < '0' || data[i] > '9' {
				return nil, &SyntaxError{Offset: i, Msg: strconv.Quote(string(data[i])) + " in reference"}
			}
			i++
		}
		if i == len(data) {
			return nil, &SyntaxError{Offset: start, Msg: "missing '^' delimiter"}
		}
		if i == start {
			return nil, &SyntaxError{Offset: start, Msg: "empty reference"}
		}
		ref, err := strconv.Atoi(string(data[start:i]))
		if err != nil {
			return nil, &SyntaxError{Offset: start, Msg: "reference out of range"}
		}

		i++ // delimiter
		if i == len(data) {
			return nil, &SyntaxError{Offset: i, Msg: "missing trailing character"}
		}
		c := data[i]
		i++

		if c == legacyTerminator {
			tokens = append(tokens, Token{Ref: ref, Final: true})
		} else {
			tokens = append(tokens, Token{Ref: ref, Char: c})
		}
	}
	return tokens, nil
}
