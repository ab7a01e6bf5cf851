// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ledgerd/errs"
	"github.com/luxfi/ledgerd/event"
)

func TestObserveAppliedAndRejected(t *testing.T) {
	r := New()
	r.ObserveApplied(event.KindDeposit)
	r.ObserveApplied(event.KindDeposit)
	r.ObserveRejected(event.KindWithdrawal, errs.KindInsufficientFunds)
	r.ObserveRejected(event.KindDeposit, errs.KindDuplicateTx)

	var buf bytes.Buffer
	require.NoError(t, r.WriteSummary(&buf))

	out := buf.String()
	require.Contains(t, out, "ledgerd_events_applied_total")
	require.Contains(t, out, "ledgerd_events_rejected_total")
	require.Contains(t, out, "ledgerd_dedup_hits_total 1")
}

func TestWriteSummaryOmitsZeroCounters(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	require.NoError(t, r.WriteSummary(&buf))
	require.Empty(t, buf.String())
}

func TestTwoRecordersDoNotCollide(t *testing.T) {
	require.NotPanics(t, func() {
		New()
		New()
	})
}
