// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package money

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAndString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.0", "1.0000"},
		{"  1.5 ", "1.5000"},
		{"-80.0", "-80.0000"},
		{"0", "0.0000"},
		{"+2.0", "2.0000"},
		{".5", "0.5000"},
		{"10000000000000.0001", "10000000000000.0001"},
	}
	for _, c := range cases {
		a, err := Parse(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, a.String(), c.in)
	}
}

func TestParseRejectsScientificNotation(t *testing.T) {
	_, err := Parse("1e10")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParseRejectsExtraPrecision(t *testing.T) {
	// Scenario 6: the reference implementation does not round silently; an
	// amount with more than four fractional digits is a syntax error, not a
	// truncated value.
	_, err := Parse("1.00015")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "-", "1.", "..1"} {
		_, err := Parse(in)
		require.Error(t, err, in)
	}
}

func TestAddSub(t *testing.T) {
	a, _ := Parse("100.0")
	b, _ := Parse("80.0")
	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, "180.0000", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	require.Equal(t, "20.0000", diff.String())

	neg, err := b.Sub(a)
	require.NoError(t, err)
	require.True(t, neg.IsNegative())
	require.Equal(t, "-20.0000", neg.String())
}

func TestCmp(t *testing.T) {
	a, _ := Parse("1.0")
	b, _ := Parse("2.0")
	require.Equal(t, -1, a.Cmp(b))
	require.Equal(t, 1, b.Cmp(a))
	require.Equal(t, 0, a.Cmp(a))
}

func TestAddOverflow(t *testing.T) {
	var maxBytes [32]byte
	for i := range maxBytes {
		maxBytes[i] = 0xFF
	}
	max := FromMagnitudeBytes(false, maxBytes)
	one, _ := Parse("0.0001")
	_, err := max.Add(one)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestParseRejectsMagnitudeBeyond256Bits(t *testing.T) {
	// 80 nines overflows a 256-bit magnitude (max ~1.16*10^77) long before
	// the digit count exhausts, exercising the overflow path Parse itself
	// can reach (as opposed to Add/Sub's).
	huge := strings.Repeat("9", 80)
	_, err := Parse(huge)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestRangeAtLeastPlusMinus1e18(t *testing.T) {
	// Spec requires a representable range of at least +-10^18; this must
	// not spuriously overflow the way a plain scaled int64 would.
	big, err := Parse("500000000000000000.0000")
	require.NoError(t, err)
	require.Equal(t, "500000000000000000.0000", big.String())

	neg, err := Zero.Sub(big)
	require.NoError(t, err)
	require.Equal(t, "-500000000000000000.0000", neg.String())
}

func TestMagnitudeBytesRoundTrip(t *testing.T) {
	a, _ := Parse("12.3400")
	b := FromMagnitudeBytes(a.IsNegative(), a.MagnitudeBytes())
	require.Equal(t, a.String(), b.String())

	neg, _ := Parse("-80.0")
	n2 := FromMagnitudeBytes(neg.IsNegative(), neg.MagnitudeBytes())
	require.Equal(t, neg.String(), n2.String())
}

func TestZeroIsNoop(t *testing.T) {
	a, _ := Parse("0")
	require.False(t, a.IsNegative())
	require.Equal(t, "0.0000", a.String())
}
