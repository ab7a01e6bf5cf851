// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package aggregate implements the snapshot aggregator: after all workers
// report drained, it joins each shard's account table into one output
// sequence. Grounded on the teacher's sequential read-and-emit idiom in
// cmd/export/main.go.
package aggregate

import "github.com/luxfi/ledgerd/account"

// Snapshotter is the subset of worker.Worker the aggregator needs.
type Snapshotter interface {
	Snapshot() []account.Row
}

// Join concatenates every shard's rows. Row order is unspecified (spec
// §4.8) — callers that need a deterministic order (tests, golden output)
// sort afterwards.
func Join(shards []Snapshotter) []account.Row {
	var rows []account.Row
	for _, s := range shards {
		rows = append(rows, s.Snapshot()...)
	}
	return rows
}
