// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dedup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFreshThenProbablySeen(t *testing.T) {
	f, err := New(1000, DefaultFalsePositiveRate)
	require.NoError(t, err)

	require.Equal(t, Fresh, f.ObserveAndCheck(42))
	require.Equal(t, ProbablySeen, f.ObserveAndCheck(42))
}

func TestDistinctIDsDontCollideInSmallSample(t *testing.T) {
	f, err := New(1000, DefaultFalsePositiveRate)
	require.NoError(t, err)

	for i := uint32(0); i < 200; i++ {
		require.Equal(t, Fresh, f.ObserveAndCheck(i), "id %d should be fresh", i)
	}
}

func TestNewDefaultsBadParameters(t *testing.T) {
	f, err := New(0, 0)
	require.NoError(t, err)
	require.NotNil(t, f)
}
