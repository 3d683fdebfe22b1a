package lz78

// Encoder turns a byte sequence into tokens. The trie is rebuilt on every
// call to Encode and kept afterwards so callers can inspect it.
type Encoder struct {
	trie *Trie
}

// NewEncoder creates an encoder with an empty dictionary.
func NewEncoder() *Encoder {
	return &Encoder{trie: NewTrie()}
}

// Encode returns the token stream for src. An empty input gives no tokens.
//
// The current match is tracked as a trie node rather than a byte buffer:
// stepping to a child is the same as looking up buffer+c, and the parent of
// a failed step is the lookup of buffer without its last byte.
func (e *Encoder) Encode(src []byte) []Token {
	e.trie = NewTrie()

	var tokens []Token
	current := 0 // node of the phrase matched so far
	for _, c := range src {
		if next, ok := e.trie.child(current, c); ok {
			current = next
			continue
		}
		tokens = append(tokens, Token{Ref: current, Char: c})
		e.trie.addChild(current, c)
		current = 0
	}

	// The input ended inside a phrase the trie already holds.
	if current != 0 {
		tokens = append(tokens, Token{Ref: current, Final: true})
	}
	return tokens
}

// Trie returns the dictionary built by the last Encode.
func (e *Encoder) Trie() *Trie {
	return e.trie
}

// Encode is a convenience wrapper around a fresh Encoder.
func Encode(src []byte) []Token {
	return NewEncoder().Encode(src)
}
