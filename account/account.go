// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package account implements the per-client balance triple and its
// balance-preserving mutators, following the paired add/sub-balance idiom
// the teacher uses for EVM account balances in core/state/statedb.go —
// every mutator here updates exactly the fields the invariant requires and
// nothing else, so the invariant can be read off the code.
package account

import (
	"fmt"

	"github.com/luxfi/ledgerd/errs"
	"github.com/luxfi/ledgerd/event"
	"github.com/luxfi/ledgerd/money"
)

// Account is the per-client balance triple and lock flag. The invariant
// Available+Held == Total holds after every method below returns a nil
// error; a non-nil error leaves the account unmodified.
type Account struct {
	Client    event.ClientID
	Available money.Amount
	Held      money.Amount
	Total     money.Amount
	Locked    bool
}

// New returns a freshly created, unlocked, zero-balance account for client.
func New(client event.ClientID) *Account {
	return &Account{Client: client}
}

// Credit adds amount to Available and Total. Used by a successful deposit.
func (a *Account) Credit(amount money.Amount) error {
	avail, err := a.Available.Add(amount)
	if err != nil {
		return fmt.Errorf("credit: %w", err)
	}
	total, err := a.Total.Add(amount)
	if err != nil {
		return fmt.Errorf("credit: %w", err)
	}
	a.Available, a.Total = avail, total
	return nil
}

// Debit subtracts amount from Available and Total. Used by a successful
// withdrawal. Returns errs.ErrAccountLocked or errs.ErrInsufficientFunds
// without mutating the account when the precondition fails.
func (a *Account) Debit(amount money.Amount) error {
	if a.Locked {
		return errs.ErrAccountLocked
	}
	if a.Available.Cmp(amount) < 0 {
		return errs.ErrInsufficientFunds
	}
	avail, err := a.Available.Sub(amount)
	if err != nil {
		return fmt.Errorf("debit: %w", err)
	}
	total, err := a.Total.Sub(amount)
	if err != nil {
		return fmt.Errorf("debit: %w", err)
	}
	a.Available, a.Total = avail, total
	return nil
}

// Hold moves amount from Available to Held. Per spec this may drive
// Available negative (clawback) — no balance check is performed here, only
// overflow checking.
func (a *Account) Hold(amount money.Amount) error {
	avail, err := a.Available.Sub(amount)
	if err != nil {
		return fmt.Errorf("hold: %w", err)
	}
	held, err := a.Held.Add(amount)
	if err != nil {
		return fmt.Errorf("hold: %w", err)
	}
	a.Available, a.Held = avail, held
	return nil
}

// Release moves amount from Held back to Available, closing a dispute in
// the client's favor.
func (a *Account) Release(amount money.Amount) error {
	if a.Held.Cmp(amount) < 0 {
		return fmt.Errorf("release: held %s is less than %s", a.Held, amount)
	}
	held, err := a.Held.Sub(amount)
	if err != nil {
		return fmt.Errorf("release: %w", err)
	}
	avail, err := a.Available.Add(amount)
	if err != nil {
		return fmt.Errorf("release: %w", err)
	}
	a.Held, a.Available = held, avail
	return nil
}

// Seize removes amount from Held and Total and locks the account, closing a
// dispute against the client.
func (a *Account) Seize(amount money.Amount) error {
	if a.Held.Cmp(amount) < 0 {
		return fmt.Errorf("seize: held %s is less than %s", a.Held, amount)
	}
	held, err := a.Held.Sub(amount)
	if err != nil {
		return fmt.Errorf("seize: %w", err)
	}
	total, err := a.Total.Sub(amount)
	if err != nil {
		return fmt.Errorf("seize: %w", err)
	}
	a.Held, a.Total = held, total
	a.Locked = true
	return nil
}

// Row is the flattened, render-ready view of an Account used by the
// snapshot aggregator and the CSV writer.
type Row struct {
	Client    event.ClientID
	Available money.Amount
	Held      money.Amount
	Total     money.Amount
	Locked    bool
}

// Row converts a to its flattened view.
func (a *Account) Row() Row {
	return Row{
		Client:    a.Client,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Total,
		Locked:    a.Locked,
	}
}
