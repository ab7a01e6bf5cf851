// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dedup implements approximate set membership over observed
// transaction ids, wrapping github.com/holiman/bloomfilter/v2 — already a
// teacher dependency, whose log-bloom type (core/types/bloom.go) is this
// pack's in-tree precedent for bitset-membership filtering, generalized
// here to a tunable, properly sized bloom filter per spec §4.3.
package dedup

import (
	"fmt"

	"github.com/holiman/bloomfilter/v2"
)

// Verdict is the result of ObserveAndCheck.
type Verdict uint8

const (
	// Fresh means tx was not previously observed (subject to the filter's
	// false-positive rate).
	Fresh Verdict = iota
	// ProbablySeen means tx appears to have been observed before. Per spec
	// this is an accepted loss: a false positive on a genuinely new TxID
	// causes the event to be dropped with a warning rather than applied.
	ProbablySeen
)

// DefaultFalsePositiveRate is the spec's default maximum false-positive
// rate (10^-5).
const DefaultFalsePositiveRate = 1e-5

// Filter rejects replays of deposit/withdrawal TxIDs cheaply. Dispute-family
// events never consult it — they reference an existing TxID rather than
// minting a new one.
type Filter struct {
	bf *bloomfilter.Filter
}

// New sizes a filter for expectedItems entries at falsePositiveRate (the
// spec's "~30MiB at 10^7 events for 10^-5" sizing guidance is exactly what
// bloomfilter.NewOptimal computes from these two parameters).
func New(expectedItems uint64, falsePositiveRate float64) (*Filter, error) {
	if expectedItems == 0 {
		expectedItems = 1
	}
	if falsePositiveRate <= 0 || falsePositiveRate >= 1 {
		falsePositiveRate = DefaultFalsePositiveRate
	}
	bf, err := bloomfilter.NewOptimal(expectedItems, falsePositiveRate)
	if err != nil {
		return nil, fmt.Errorf("dedup: size filter: %w", err)
	}
	return &Filter{bf: bf}, nil
}

// hashable adapts a uint32 TxID to bloomfilter.Hashable, which the library
// needs as two independent uint64 hash seeds.
type hashable uint32

func (h hashable) Hash() (uint64, uint64) {
	// Spread the 32-bit id across both halves of a 64-bit Hashable so the
	// bloom filter's own double hashing has real entropy to double-hash
	// instead of hashing just the identity value twice.
	v := uint64(h)
	return v*0x9E3779B185EBCA87 + 1, v*0xC2B2AE3D27D4EB4F + 1
}

// ObserveAndCheck records tx as seen and reports whether it had already
// been observed. The check-then-add is atomic from the caller's
// perspective because the Filter is only consulted from the engine's
// single-threaded read loop.
func (f *Filter) ObserveAndCheck(tx uint32) Verdict {
	h := hashable(tx)
	if f.bf.Contains(h) {
		return ProbablySeen
	}
	f.bf.Add(h)
	return Fresh
}
