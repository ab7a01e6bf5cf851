// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package store defines the DepositStore capability — an abstract mapping
// from transaction id to a stored, dispute-lifecycle-aware deposit record —
// and its backends. Callers are parameterized by the capability and never
// observe the backend identity, the same "construct the concrete type,
// hand callers the interface" discipline the teacher applies to its
// database factory (cmd/dbmigrate pulls both a pebbledb and a badgerdb
// through the identical factory.New(...) call).
package store

import (
	"github.com/luxfi/ledgerd/event"
	"github.com/luxfi/ledgerd/money"
)

// DepositState is the closed sum of lifecycle states a disputable deposit
// can occupy. See package dispute for the transition function over it.
type DepositState uint8

const (
	StateClear DepositState = iota
	StateDisputed
	StateResolved
	StateChargedBack
)

func (s DepositState) String() string {
	switch s {
	case StateClear:
		return "clear"
	case StateDisputed:
		return "disputed"
	case StateResolved:
		return "resolved"
	case StateChargedBack:
		return "charged_back"
	default:
		return "unknown"
	}
}

// Deposit is a disputable deposit record, keyed externally by its TxID.
type Deposit struct {
	Client event.ClientID
	Amount money.Amount
	State  DepositState
}

// Store is the DepositStore capability (spec §4.2): insert, read, mutate,
// and remove deposit records by TxID. Implementations need only guarantee
// O(1) amortized lookup and sequential access within one caller — workers
// never share a Store, so no implementation needs its own locking.
type Store interface {
	// Insert adds a newly cleared deposit. The caller must ensure tx is not
	// already present; backends are free to assume this (the worker does not
	// check the store itself; it relies on the engine's dedup filter having
	// rejected any repeated deposit/withdrawal TxID before routing).
	Insert(tx event.TxID, d Deposit) error

	// Get returns a read-only copy of the stored deposit, or ok=false if
	// tx is not present.
	Get(tx event.TxID) (Deposit, bool, error)

	// Mutate applies fn to the stored deposit in place and persists the
	// result. fn is called with ok=false if tx is not present; if fn
	// returns changed=false nothing is written back.
	Mutate(tx event.TxID, fn func(d Deposit, ok bool) (next Deposit, changed bool)) error

	// Remove detaches the record for tx. It is not an error to remove an
	// absent key. The worker does not call it: a charged-back deposit stays
	// in the store in its terminal ChargedBack state.
	Remove(tx event.TxID) error

	// Close releases any resources held by the backend.
	Close() error
}
