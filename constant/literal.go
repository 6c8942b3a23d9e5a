package constant

import (
	"strconv"
	"strings"

	"github.com/teranos/glenum/errors"
)

// LiteralErrKind identifies a literal parse failure category.
type LiteralErrKind uint8

const (
	LiteralEmpty LiteralErrKind = iota
	LiteralBadDigit
	LiteralOverflow
)

// String returns a stable label for the failure kind.
func (k LiteralErrKind) String() string {
	switch k {
	case LiteralEmpty:
		return "no digits"
	case LiteralBadDigit:
		return "bad digit"
	case LiteralOverflow:
		return "exceeds 64 bits"
	default:
		return "invalid"
	}
}

// LiteralError reports a literal that could not be decoded.
// It matches errors.ErrInvalidLiteral under errors.Is.
type LiteralError struct {
	Token string
	Kind  LiteralErrKind
}

func (e *LiteralError) Error() string {
	return "invalid numeric literal " + strconv.Quote(e.Token) + ": " + e.Kind.String()
}

// Is lets errors.Is(err, errors.ErrInvalidLiteral) see through the concrete type.
func (e *LiteralError) Is(target error) bool {
	return target == errors.ErrInvalidLiteral
}

// Literal is a decoded numeric token: a magnitude and whether a leading
// minus sign was present.
type Literal struct {
	Magnitude uint64
	Negative  bool
}

// radixPrefixes is checked in order; matching is case-insensitive.
var radixPrefixes = []struct {
	prefix string
	base   int
}{
	{"0x", 16},
	{"0b", 2},
	{"0o", 8},
}

// ParseLiteral decodes a registry value token such as "0x8B30", "-1",
// "0b1010" or "1_000". Whitespace around the token and after a leading minus
// is ignored, and underscores between digits are dropped. Negative literals
// are decimal only: "-0x10" fails with LiteralBadDigit.
func ParseLiteral(token string) (Literal, error) {
	s := strings.TrimSpace(token)

	var lit Literal
	if strings.HasPrefix(s, "-") {
		lit.Negative = true
		s = strings.TrimSpace(s[1:])
	}

	base := 10
	if !lit.Negative {
		for _, rp := range radixPrefixes {
			if len(s) >= len(rp.prefix) && strings.EqualFold(s[:len(rp.prefix)], rp.prefix) {
				base = rp.base
				s = s[len(rp.prefix):]
				break
			}
		}
	}

	digits := strings.ReplaceAll(s, "_", "")
	if digits == "" {
		return Literal{}, &LiteralError{Token: token, Kind: LiteralEmpty}
	}

	mag, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		kind := LiteralBadDigit
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			kind = LiteralOverflow
		}
		return Literal{}, &LiteralError{Token: token, Kind: kind}
	}

	lit.Magnitude = mag
	return lit, nil
}
