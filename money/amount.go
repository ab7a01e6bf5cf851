// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package money implements Amount, the ledger's fixed-point monetary type:
// four fractional digits, signed, exact add/subtract, no rounding. The
// spec's mandated range, at least +-10^18, does not fit a plain scaled
// int64 (max ~9.2*10^14 at this scale), so Amount stores its magnitude in
// a github.com/holiman/uint256.Int — the teacher's own overflow-checked
// 256-bit integer, used throughout its EVM packages (precompile contracts,
// token vault balances) for exactly this "bigger than a machine word,
// still fixed-width, still overflow-checked" requirement — plus a separate
// sign flag, since uint256.Int itself is unsigned.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Scale is the number of fractional digits every Amount is stored at.
const Scale = 4

// ErrOverflow is returned by Add/Sub when the exact result cannot be
// represented, and by Parse when the input exceeds the representable range.
var ErrOverflow = errors.New("money: amount overflow")

// ErrSyntax is returned by Parse for any input that is not a plain decimal
// literal with an optional sign, e.g. scientific notation or garbage text.
var ErrSyntax = errors.New("money: invalid amount syntax")

// Amount is a signed fixed-point value with exactly Scale fractional
// digits, stored as a 256-bit magnitude of 10^-Scale units plus a sign.
// The zero value is zero.
type Amount struct {
	mag uint256.Int
	neg bool
}

// Zero is the additive identity.
var Zero = Amount{}

// FromMagnitudeBytes rebuilds an Amount from the 32-byte big-endian
// magnitude and sign produced by MagnitudeBytes, the wire/storage encoding
// backends persist. A zero magnitude always normalizes to a non-negative
// Amount regardless of neg.
func FromMagnitudeBytes(neg bool, magnitude [32]byte) Amount {
	var mag uint256.Int
	mag.SetBytes32(magnitude[:])
	if mag.IsZero() {
		neg = false
	}
	return Amount{mag: mag, neg: neg}
}

// MagnitudeBytes returns the big-endian 256-bit magnitude of a, for
// backends that need a fixed-width on-disk or wire encoding. Pair with
// IsNegative to reconstruct the signed value.
func (a Amount) MagnitudeBytes() [32]byte { return a.mag.Bytes32() }

// Parse converts text into an Amount. Surrounding whitespace is trimmed.
// Scientific notation is rejected. A leading '+' or '-' is accepted; the
// caller (the deposit/withdrawal validation path) is responsible for
// rejecting negative results where the spec forbids them (see errs.ErrNegativeAmount).
//
// Parse never rounds: any fractional part with more than Scale digits is an
// error, not a truncation, so precision loss is always visible as a
// rejected row rather than a silently mutated amount.
func Parse(text string) (Amount, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Zero, fmt.Errorf("%w: empty", ErrSyntax)
	}
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		return Zero, fmt.Errorf("%w: scientific notation not allowed: %q", ErrSyntax, text)
	}

	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}
	if s == "" {
		return Zero, fmt.Errorf("%w: %q", ErrSyntax, text)
	}

	intPart, fracPart, hasFrac := s, "", false
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart, hasFrac = s[:i], s[i+1:], true
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || (hasFrac && !isDigits(fracPart)) {
		return Zero, fmt.Errorf("%w: %q", ErrSyntax, text)
	}
	if len(fracPart) > Scale {
		return Zero, fmt.Errorf("%w: more than %d fractional digits: %q", ErrSyntax, Scale, text)
	}
	for len(fracPart) < Scale {
		fracPart += "0"
	}

	// intPart and the zero-padded fracPart concatenate directly into the
	// decimal digits of the scaled magnitude: "12" + "3400" == 123400,
	// which is exactly 12.34 * 10^Scale.
	var mag uint256.Int
	if err := mag.SetFromDecimal(intPart + fracPart); err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrOverflow, text)
	}
	if mag.IsZero() {
		neg = false
	}
	return Amount{mag: mag, neg: neg}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String renders the amount in canonical form: an optional '-', the
// integer part, '.', and exactly Scale fractional digits.
func (a Amount) String() string {
	digits := a.mag.Dec()
	for len(digits) <= Scale {
		digits = "0" + digits
	}
	intPart, fracPart := digits[:len(digits)-Scale], digits[len(digits)-Scale:]
	sign := ""
	if a.neg {
		sign = "-"
	}
	return sign + intPart + "." + fracPart
}

// MarshalText implements encoding.TextMarshaler, the same typed-wrapper
// idiom the teacher uses for common.Hash/common.Address.
func (a Amount) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Add returns a+b, or ErrOverflow if the exact sum overflows the 256-bit
// magnitude (astronomically larger than the spec's mandated +-10^18, but
// still a fixed width that must be checked rather than silently wrapped).
func (a Amount) Add(b Amount) (Amount, error) {
	mag, neg, overflow := signedAdd(a.mag, a.neg, b.mag, b.neg)
	if overflow {
		return Zero, ErrOverflow
	}
	if mag.IsZero() {
		neg = false
	}
	return Amount{mag: mag, neg: neg}, nil
}

// Sub returns a-b, or ErrOverflow under the same condition as Add.
func (a Amount) Sub(b Amount) (Amount, error) {
	return a.Add(Amount{mag: b.mag, neg: !b.neg})
}

func signedAdd(aMag uint256.Int, aNeg bool, bMag uint256.Int, bNeg bool) (uint256.Int, bool, bool) {
	if aNeg == bNeg {
		sum, overflow := new(uint256.Int).AddOverflow(&aMag, &bMag)
		return *sum, aNeg, overflow
	}
	switch aMag.Cmp(&bMag) {
	case 0:
		return uint256.Int{}, false, false
	case 1:
		return *new(uint256.Int).Sub(&aMag, &bMag), aNeg, false
	default:
		return *new(uint256.Int).Sub(&bMag, &aMag), bNeg, false
	}
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Amount) Cmp(b Amount) int {
	if a.neg != b.neg {
		if a.mag.IsZero() && b.mag.IsZero() {
			return 0
		}
		if a.neg {
			return -1
		}
		return 1
	}
	c := a.mag.Cmp(&b.mag)
	if a.neg {
		return -c
	}
	return c
}

// IsNegative reports whether a < 0.
func (a Amount) IsNegative() bool { return a.neg }
