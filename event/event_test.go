// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	require.Equal(t, KindDeposit, ParseKind("deposit"))
	require.Equal(t, KindWithdrawal, ParseKind("withdrawal"))
	require.Equal(t, KindDispute, ParseKind("dispute"))
	require.Equal(t, KindResolve, ParseKind("resolve"))
	require.Equal(t, KindChargeback, ParseKind("chargeback"))
	require.Equal(t, KindUnknown, ParseKind("transfer"))
	require.Equal(t, KindUnknown, ParseKind(""))
}

func TestHasAmount(t *testing.T) {
	require.True(t, KindDeposit.HasAmount())
	require.True(t, KindWithdrawal.HasAmount())
	require.False(t, KindDispute.HasAmount())
	require.False(t, KindResolve.HasAmount())
	require.False(t, KindChargeback.HasAmount())
}

func TestIsDisputeFamily(t *testing.T) {
	require.True(t, KindDispute.IsDisputeFamily())
	require.True(t, KindResolve.IsDisputeFamily())
	require.True(t, KindChargeback.IsDisputeFamily())
	require.False(t, KindDeposit.IsDisputeFamily())
	require.False(t, KindWithdrawal.IsDisputeFamily())
}

func TestStringers(t *testing.T) {
	require.Equal(t, "42", ClientID(42).String())
	require.Equal(t, "7", TxID(7).String())
	require.Equal(t, "unknown", KindUnknown.String())
}
