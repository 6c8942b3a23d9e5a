// Package constant turns registry value tokens into typed integer constants.
//
// A token is first decoded by ParseLiteral into a magnitude and a sign flag,
// then Classify picks the narrowest standard width (8, 32 or 64 bits) that
// holds it. 16-bit widths are never produced: targets only distinguish byte,
// 32-bit and 64-bit integers.
package constant

import (
	"fmt"

	"github.com/teranos/glenum/errors"
)

// Supported bit widths, narrowest first.
var widths = [...]uint{8, 32, 64}

// IntegralType is the inferred representation of a constant.
type IntegralType struct {
	BitWidth uint `json:"bitwidth" yaml:"bitwidth" toml:"bitwidth"`
	Signed   bool `json:"signed" yaml:"signed" toml:"signed"`
}

// String returns the short Rust-style spelling, e.g. "u8" or "i64".
func (t IntegralType) String() string {
	if t.Signed {
		return fmt.Sprintf("i%d", t.BitWidth)
	}
	return fmt.Sprintf("u%d", t.BitWidth)
}

// Constant is a typed registry value. Value is always the magnitude; a
// negative literal is recorded only through Type.Signed.
type Constant struct {
	Value uint64       `json:"value" yaml:"value" toml:"value"`
	Type  IntegralType `json:"type" yaml:"type" toml:"type"`
}

// String renders the constant as "<type>(<signed decimal or hex>)".
func (c Constant) String() string {
	if c.Type.Signed {
		return fmt.Sprintf("%s(-%d)", c.Type, c.Value)
	}
	return fmt.Sprintf("%s(%#x)", c.Type, c.Value)
}

// New classifies a decoded literal.
func New(lit Literal) (Constant, error) {
	ty, err := Classify(lit.Magnitude, lit.Negative)
	if err != nil {
		return Constant{}, err
	}
	return Constant{Value: lit.Magnitude, Type: ty}, nil
}

// Parse decodes and classifies a registry value token in one step.
func Parse(token string) (Constant, error) {
	lit, err := ParseLiteral(token)
	if err != nil {
		return Constant{}, err
	}
	c, err := New(lit)
	if err != nil {
		return Constant{}, errors.WithDetailf(err, "literal: %q", token)
	}
	return c, nil
}
