package lz78

import "fmt"

// Token is one step of the compressed stream: the phrase at dictionary
// index Ref followed by Char. A Final token closes the input on a phrase
// that was already known; it has no literal and Char is ignored.
type Token struct {
	Ref   int
	Char  byte
	Final bool
}

func (t Token) String() string {
	if t.Final {
		return fmt.Sprintf("(%d,$)", t.Ref)
	}
	return fmt.Sprintf("(%d,%q)", t.Ref, t.Char)
}
