// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import "github.com/luxfi/ledgerd/event"

// Memory is the default DepositStore backend: a plain map, exclusively
// owned by one worker. It grows unbounded for the lifetime of the run, per
// spec §5 — operators who need a bounded footprint swap in Pebble.
type Memory struct {
	records map[event.TxID]Deposit
}

// NewMemory returns an empty in-memory deposit store.
func NewMemory() *Memory {
	return &Memory{records: make(map[event.TxID]Deposit)}
}

var _ Store = (*Memory)(nil)

func (m *Memory) Insert(tx event.TxID, d Deposit) error {
	m.records[tx] = d
	return nil
}

func (m *Memory) Get(tx event.TxID) (Deposit, bool, error) {
	d, ok := m.records[tx]
	return d, ok, nil
}

func (m *Memory) Mutate(tx event.TxID, fn func(d Deposit, ok bool) (Deposit, bool)) error {
	cur, ok := m.records[tx]
	next, changed := fn(cur, ok)
	if changed {
		m.records[tx] = next
	}
	return nil
}

func (m *Memory) Remove(tx event.TxID) error {
	delete(m.records, tx)
	return nil
}

func (m *Memory) Close() error { return nil }
