// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package router implements the shard router: it partitions the input
// event stream across N per-client workers by client id, preserving FIFO
// order within a shard. Grounded on the teacher's dispatch-by-reservation
// idiom in core/txpool.TxPool, generalized from per-account subpool
// reservation to per-shard channel routing.
package router

import "github.com/luxfi/ledgerd/event"

// Sink is the subset of worker.Worker the router needs: somewhere to send
// an event, and a way to signal "no more events" when the input drains.
type Sink interface {
	Inbox() chan<- event.Event
}

// Router partitions by ClientID % N. It is the only point where input is
// fanned out; nothing downstream reorders events for a given client.
type Router struct {
	shards []Sink
}

// New returns a router over the given shards, indexed 0..len(shards)-1.
func New(shards []Sink) *Router {
	return &Router{shards: shards}
}

// ShardFor returns the shard index a given client routes to.
func (r *Router) ShardFor(client event.ClientID) int {
	return int(uint16(client)) % len(r.shards)
}

// Route sends ev to its shard's inbox. It blocks if that shard's inbox is
// full, which is the backpressure spec §5 requires: a slow worker throttles
// the reader rather than the router dropping or reordering work.
func (r *Router) Route(ev event.Event) {
	shard := r.shards[r.ShardFor(ev.Client)]
	shard.Inbox() <- ev
}

// Close signals every shard that input has drained, by closing its inbox.
// Workers range over their inbox and exit their Run loop once this
// completes.
func (r *Router) Close() {
	for _, s := range r.shards {
		close(s.Inbox())
	}
}
