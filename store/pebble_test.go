// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ledgerd/event"
	"github.com/luxfi/ledgerd/money"
)

func openTestPebble(t *testing.T) *Pebble {
	t.Helper()
	p, err := OpenPebble(filepath.Join(t.TempDir(), "shard-0"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestPebbleInsertGet(t *testing.T) {
	p := openTestPebble(t)
	amount, _ := money.Parse("12.3400")

	require.NoError(t, p.Insert(1, Deposit{Client: 9, Amount: amount, State: StateClear}))

	d, ok, err := p.Get(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, event.ClientID(9), d.Client)
	require.Equal(t, amount.String(), d.Amount.String())
	require.Equal(t, StateClear, d.State)
}

func TestPebbleGetMissing(t *testing.T) {
	p := openTestPebble(t)
	_, ok, err := p.Get(42)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPebbleMutateAndRemove(t *testing.T) {
	p := openTestPebble(t)
	amount, _ := money.Parse("1.0")
	require.NoError(t, p.Insert(1, Deposit{Client: 1, Amount: amount, State: StateClear}))

	err := p.Mutate(1, func(d Deposit, ok bool) (Deposit, bool) {
		require.True(t, ok)
		d.State = StateDisputed
		return d, true
	})
	require.NoError(t, err)

	d, _, _ := p.Get(1)
	require.Equal(t, StateDisputed, d.State)

	require.NoError(t, p.Remove(1))
	_, ok, _ := p.Get(1)
	require.False(t, ok)
}

func TestPebbleNegativeAmountRoundTrips(t *testing.T) {
	p := openTestPebble(t)
	zero, _ := money.Parse("0")
	neg, err := zero.Sub(mustParse(t, "80.0"))
	require.NoError(t, err)

	require.NoError(t, p.Insert(1, Deposit{Client: 1, Amount: neg, State: StateClear}))
	d, _, err := p.Get(1)
	require.NoError(t, err)
	require.True(t, d.Amount.IsNegative())
	require.Equal(t, "-80.0000", d.Amount.String())
}

func mustParse(t *testing.T, s string) money.Amount {
	t.Helper()
	a, err := money.Parse(s)
	require.NoError(t, err)
	return a
}
