// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package router

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ledgerd/event"
)

type fakeSink struct {
	ch chan event.Event
}

func newFakeSink() *fakeSink {
	return &fakeSink{ch: make(chan event.Event, 16)}
}

func (f *fakeSink) Inbox() chan<- event.Event { return f.ch }

func TestShardForIsStableModulo(t *testing.T) {
	shards := []Sink{newFakeSink(), newFakeSink(), newFakeSink()}
	r := New(shards)

	require.Equal(t, 0, r.ShardFor(0))
	require.Equal(t, 1, r.ShardFor(1))
	require.Equal(t, 2, r.ShardFor(2))
	require.Equal(t, 0, r.ShardFor(3))
}

func TestRoutePreservesFIFOPerClient(t *testing.T) {
	sinks := []*fakeSink{newFakeSink(), newFakeSink()}
	shards := make([]Sink, len(sinks))
	for i, s := range sinks {
		shards[i] = s
	}
	r := New(shards)

	for tx := 0; tx < 5; tx++ {
		r.Route(event.Event{Kind: event.KindDeposit, Client: 4, Tx: event.TxID(tx)})
	}
	r.Close()

	target := sinks[r.ShardFor(4)]
	var got []event.TxID
	for ev := range target.ch {
		got = append(got, ev.Tx)
	}
	for i, tx := range got {
		require.Equal(t, event.TxID(i), tx)
	}
}

func TestCloseClosesEveryShard(t *testing.T) {
	sinks := []*fakeSink{newFakeSink(), newFakeSink()}
	shards := make([]Sink, len(sinks))
	for i, s := range sinks {
		shards[i] = s
	}
	r := New(shards)
	r.Close()

	for _, s := range sinks {
		_, open := <-s.ch
		require.False(t, open)
	}
}
