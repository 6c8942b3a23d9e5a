package constant

import (
	"math"

	"github.com/teranos/glenum/errors"
)

// maxMagnitude returns the largest magnitude a width can carry.
//
// Signed 8 and 32 bit types hold magnitudes up to their positive maximum.
// The 64 bit signed bound is 2^63 so that INT64_MIN stays representable.
func maxMagnitude(width uint, signed bool) uint64 {
	switch {
	case !signed && width == 64:
		return math.MaxUint64
	case !signed:
		return 1<<width - 1
	case width == 64:
		return 1 << 63
	default:
		return 1<<(width-1) - 1
	}
}

// Classify picks the narrowest supported width for a magnitude.
// Magnitudes that fit no width fail with errors.ErrOutOfRange.
func Classify(magnitude uint64, signed bool) (IntegralType, error) {
	for _, w := range widths {
		if magnitude <= maxMagnitude(w, signed) {
			return IntegralType{BitWidth: w, Signed: signed}, nil
		}
	}
	kind := "unsigned"
	if signed {
		kind = "signed"
	}
	return IntegralType{}, errors.Wrapf(errors.ErrOutOfRange, "magnitude %d does not fit a %s 64-bit integer", magnitude, kind)
}
