package machine

import (
	"fmt"
	"unicode/utf8"
)

// Symbol is the content of a single tape cell. It is always exactly one
// character; use NewSymbol to build one from untrusted text.
type Symbol rune

// Empty is the distinguished blank-cell symbol. Cells that were never
// written read as Empty.
const Empty Symbol = '_'

// NewSymbol converts a one-character string into a Symbol. Anything shorter
// or longer than a single character is rejected.
func NewSymbol(s string) (Symbol, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("symbol %q is not a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return Symbol(r), nil
}

func (s Symbol) String() string {
	return string(rune(s))
}

// MarshalText renders the symbol as its single character, so JSON payloads
// carry "0" rather than a code point number.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a symbol back from its textual form.
func (s *Symbol) UnmarshalText(text []byte) error {
	parsed, err := NewSymbol(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
