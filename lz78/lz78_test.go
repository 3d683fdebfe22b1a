package lz78

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKnownVector(t *testing.T) {
	tokens := Encode([]byte("ABABABA"))
	require.Equal(t, []Token{
		{Ref: 0, Char: 'A'},
		{Ref: 0, Char: 'B'},
		{Ref: 1, Char: 'B'},
		{Ref: 3, Char: 'A'},
	}, tokens)

	wire, err := Compress([]byte("ABABABA"), FormatLegacy)
	require.NoError(t, err)
	assert.Equal(t, "0^A0^B1^B3^A", string(wire))

	got, err := Decompress(wire, FormatLegacy)
	require.NoError(t, err)
	assert.Equal(t, "ABABABA", string(got))
}

func TestTerminatorCollision(t *testing.T) {
	tokens := Encode([]byte("AA"))
	require.Equal(t, []Token{{Ref: 0, Char: 'A'}, {Ref: 1, Final: true}}, tokens)

	wire, err := Compress([]byte("AA"), FormatLegacy)
	require.NoError(t, err)
	assert.Equal(t, []byte("0^A1^\x00"), wire)

	// The legacy format turns the terminator into a trailing space.
	got, err := Decompress(wire, FormatLegacy)
	require.NoError(t, err)
	assert.Equal(t, "AA ", string(got))

	// The packed format keeps the input intact.
	packed, err := Compress([]byte("AA"), FormatPacked)
	require.NoError(t, err)
	got, err = Decompress(packed, FormatPacked)
	require.NoError(t, err)
	assert.Equal(t, "AA", string(got))
}

func TestLegacyCorruptsNULLiterals(t *testing.T) {
	input := []byte("a\x00a\x00")
	require.Equal(t, []Token{
		{Ref: 0, Char: 'a'},
		{Ref: 0, Char: 0},
		{Ref: 1, Char: 0},
	}, Encode(input))

	wire, err := Compress(input, FormatLegacy)
	require.NoError(t, err)
	got, err := Decompress(wire, FormatLegacy)
	require.NoError(t, err)
	assert.Equal(t, "a a ", string(got))

	packed, err := Compress(input, FormatPacked)
	require.NoError(t, err)
	got, err = Decompress(packed, FormatPacked)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, Encode(nil))
	assert.Empty(t, Encode([]byte{}))

	wire, err := Compress(nil, FormatLegacy)
	require.NoError(t, err)
	assert.Empty(t, wire)

	got, err := Decompress(nil, FormatLegacy)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	packed, err := Compress(nil, FormatPacked)
	require.NoError(t, err)
	assert.Equal(t, []byte("LZ78\x01\x00"), packed)
	got, err = Decompress(packed, FormatPacked)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// unaryGrowth returns the LZ78 token count and trie size for n copies of a
// single byte: phrases of length 1, 2, 3, ... until the input runs out,
// with a Final token for any leftover.
func unaryGrowth(n int) (tokens, trieLen int) {
	k := 0
	for (k+1)*(k+2)/2 <= n {
		k++
	}
	tokens = k
	if n > k*(k+1)/2 {
		tokens++
	}
	return tokens, k + 1
}

func TestUnaryAlphabetGrowth(t *testing.T) {
	for _, n := range []int{1, 2, 3, 6, 10, 12, 100, 5050, 5051} {
		input := bytes.Repeat([]byte{'a'}, n)
		wantTokens, wantTrie := unaryGrowth(n)

		enc := NewEncoder()
		tokens := enc.Encode(input)
		require.Len(t, tokens, wantTokens, "n=%d", n)
		assert.Equal(t, wantTrie, enc.Trie().Len(), "n=%d", n)

		for i, tok := range tokens {
			if tok.Final {
				assert.Equal(t, len(tokens)-1, i)
				continue
			}
			assert.Equal(t, i, tok.Ref, "each phrase extends the previous one")
		}

		dec := NewDecoder(WithExactTerminator())
		got, err := dec.Decode(tokens)
		require.NoError(t, err)
		assert.Equal(t, input, got)
		assert.Equal(t, len(tokens)+1, dec.Len())
	}
}

func TestDecoderDictionaryMirrorsTrie(t *testing.T) {
	input := []byte("the rain in spain stays mainly in the plain")
	enc := NewEncoder()
	tokens := enc.Encode(input)

	dec := NewDecoder()
	_, err := dec.Decode(tokens)
	require.NoError(t, err)
	require.Equal(t, len(tokens)+1, dec.Len())

	// Entry i was defined by token i-1; a Final token defines no trie node.
	for i := 0; i < dec.Len(); i++ {
		if i > 0 && tokens[i-1].Final {
			continue
		}
		phrase, ok := dec.Phrase(i)
		require.True(t, ok)
		assert.Equal(t, i, enc.Trie().Lookup(phrase), "entry %d %q", i, phrase)
	}
	_, ok := dec.Phrase(dec.Len())
	assert.False(t, ok)
}

func TestDeterminism(t *testing.T) {
	input := []byte(strings.Repeat("determinism ", 40))
	for _, f := range []Format{FormatLegacy, FormatPacked} {
		first, err := Compress(input, f)
		require.NoError(t, err)
		second, err := Compress(input, f)
		require.NoError(t, err)
		assert.Equal(t, first, second, f.String())

		a, err := Decompress(first, f)
		require.NoError(t, err)
		b, err := Decompress(first, f)
		require.NoError(t, err)
		assert.Equal(t, a, b, f.String())
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(78))
	random := make([]byte, 4096)
	rng.Read(random)

	skewed := make([]byte, 8192)
	for i := range skewed {
		skewed[i] = "aaaabbc\x00"[rng.Intn(8)]
	}

	tests := []struct {
		name  string
		input []byte
	}{
		{"single", []byte("x")},
		{"text", []byte("It was the best of times, it was the worst of times.")},
		{"random", random},
		{"skewed", skewed},
		{"zeros", make([]byte, 1000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed, err := Compress(tt.input, FormatPacked)
			require.NoError(t, err)
			got, err := Decompress(packed, FormatPacked)
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)

			// Legacy round-trips exactly when no token carries a NUL.
			tokens := Encode(tt.input)
			if hasNUL(tokens) {
				return
			}
			wire, err := Compress(tt.input, FormatLegacy)
			require.NoError(t, err)
			got, err = Decompress(wire, FormatLegacy)
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}

func hasNUL(tokens []Token) bool {
	for _, tok := range tokens {
		if tok.Final || tok.Char == 0 {
			return true
		}
	}
	return false
}

func TestUnresolvedReference(t *testing.T) {
	tokens := []Token{{Ref: 0, Char: 'A'}, {Ref: 5, Char: 'B'}}

	_, err := Decode(tokens)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedReference))

	dec := NewDecoder(WithLegacyFallback())
	got, err := dec.Decode(tokens)
	require.NoError(t, err)
	assert.Equal(t, []byte("A\x00B"), got)
	assert.Equal(t, 3, dec.Len())

	// Negative references are never resolvable.
	_, err = Decode([]Token{{Ref: -1, Char: 'A'}})
	assert.ErrorIs(t, err, ErrUnresolvedReference)
}

func TestLegacyFallbackThroughWire(t *testing.T) {
	got, err := Decompress([]byte("0^A7^\x00"), FormatLegacy, WithLegacyFallback())
	require.NoError(t, err)
	assert.Equal(t, []byte("A\x00 "), got)
}

func TestDecoderReuse(t *testing.T) {
	dec := NewDecoder()
	first, err := dec.Decode(Encode([]byte("ABABABA")))
	require.NoError(t, err)
	second, err := dec.Decode(Encode([]byte("xyz")))
	require.NoError(t, err)
	assert.Equal(t, "ABABABA", string(first))
	assert.Equal(t, "xyz", string(second))
	assert.Equal(t, 4, dec.Len())
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, `(3,'A')`, Token{Ref: 3, Char: 'A'}.String())
	assert.Equal(t, `(1,$)`, Token{Ref: 1, Final: true}.String())
}
