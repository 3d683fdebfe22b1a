// Package lz78 implements LZ78 dictionary compression.
//
// The encoder walks the input once, growing a trie of every phrase it has
// seen, and emits one Token per new phrase: the index of the longest known
// prefix plus the byte that extends it. The decoder rebuilds the same
// dictionary from the tokens alone, so both sides must number phrases in
// exactly the same order. Entry 0 is always the empty phrase.
//
// # Wire formats
//
// FormatLegacy is the historical text form: each token is the decimal
// reference, a '^' byte and one literal byte, with nothing between tokens.
// A token that closes the input without defining a new phrase carries a NUL
// byte. Because a NUL literal looks the same, the decoder turns every NUL in
// that position into a space, so "AA" comes back as "AA ". This is kept on
// purpose for compatibility with files written by older tools.
//
// FormatPacked is a versioned binary form that has a real terminator flag
// and therefore round-trips every input, NUL bytes included.
//
// # Malformed input
//
// Parsing is strict and returns a *SyntaxError (matching ErrMalformed with
// errors.Is). A reference to a dictionary entry that does not exist yet is
// ErrUnresolvedReference unless the decoder is built WithLegacyFallback.
package lz78
