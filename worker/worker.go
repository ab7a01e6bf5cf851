// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package worker implements the per-client transaction processing kernel:
// a single-threaded processor that owns a private account table and deposit
// store, and applies one shard's causal event stream to them. Grounded
// directly on core/txpool/txpool.go's subpool loop — a private-state
// goroutine that drains an inbound channel and never shares mutable state
// with its siblings.
package worker

import (
	"fmt"

	"github.com/luxfi/ledgerd/account"
	"github.com/luxfi/ledgerd/dispute"
	"github.com/luxfi/ledgerd/errs"
	"github.com/luxfi/ledgerd/event"
	"github.com/luxfi/ledgerd/store"
)

// Logger is the minimal logging capability a worker needs: a single
// leveled, structured warning sink. ledger/logging.Logger satisfies it.
type Logger interface {
	Warn(msg string, ctx ...any)
}

// Recorder is the minimal metrics capability a worker needs. ledger/metrics.Recorder
// satisfies it; tests may pass a no-op implementation.
type Recorder interface {
	ObserveApplied(kind event.Kind)
	ObserveRejected(kind event.Kind, reason errs.Kind)
}

// Worker owns one shard's worth of client accounts plus that shard's
// deposit store. It is not safe for concurrent use: events must arrive
// from a single goroutine (the shard router) in per-client order.
//
// TxID freshness (spec §3: "unique across all deposits and withdrawals
// system-wide") is checked once, globally, by the dedup filter the engine's
// read loop consults before an event is ever handed to the router (see
// engine.Engine.Run) — not here. TxID uniqueness is a property of the
// whole input stream, independent of client_id, so it cannot be enforced
// correctly by N independent per-shard filters; a worker only ever sees
// events the global filter has already admitted.
type Worker struct {
	ID       int
	inbox    chan event.Event
	accounts map[event.ClientID]*account.Account
	deposits store.Store
	log      Logger
	rec      Recorder
}

// New constructs a worker. inboxSize bounds the channel the router feeds,
// providing the backpressure spec §5 requires.
func New(id int, inboxSize int, deposits store.Store, log Logger, rec Recorder) *Worker {
	return &Worker{
		ID:       id,
		inbox:    make(chan event.Event, inboxSize),
		accounts: make(map[event.ClientID]*account.Account),
		deposits: deposits,
		log:      log,
		rec:      rec,
	}
}

// Inbox returns the channel the router sends this worker's events on. The
// router closes it once the input stream is drained, which is this
// worker's finalization signal (spec §4.7).
func (w *Worker) Inbox() chan<- event.Event { return w.inbox }

// Run processes events until the inbox is closed. Call it from its own
// goroutine; it returns once the shard has fully drained.
func (w *Worker) Run() {
	for ev := range w.inbox {
		w.apply(ev)
	}
}

// reject logs and counts a dropped event. No event is ever fatal to a
// worker (spec §4.6.3): the loop always continues.
func (w *Worker) reject(ev event.Event, err error) {
	kind := errs.KindOf(err)
	if w.rec != nil {
		w.rec.ObserveRejected(ev.Kind, kind)
	}
	if w.log != nil {
		w.log.Warn("event rejected",
			"kind", ev.Kind.String(),
			"client", ev.Client,
			"tx", ev.Tx,
			"reason", string(kind),
			"err", err,
		)
	}
}

func (w *Worker) accountFor(id event.ClientID) *account.Account {
	a, ok := w.accounts[id]
	if !ok {
		a = account.New(id)
		w.accounts[id] = a
	}
	return a
}

func (w *Worker) apply(ev event.Event) {
	acct := w.accountFor(ev.Client)

	// Account-lock gate (spec §4.6 step 1): a locked account still accepts
	// dispute-family events (closure on frozen accounts) but rejects new
	// money movement outright.
	if acct.Locked && !ev.Kind.IsDisputeFamily() {
		w.reject(ev, errs.ErrAccountLocked)
		return
	}

	var err error
	switch ev.Kind {
	case event.KindDeposit:
		err = w.applyDeposit(acct, ev)
	case event.KindWithdrawal:
		err = w.applyWithdrawal(acct, ev)
	case event.KindDispute, event.KindResolve, event.KindChargeback:
		err = w.applyDisputeFamily(acct, ev)
	default:
		err = errs.ErrUnknownType
	}

	if err != nil {
		w.reject(ev, err)
		return
	}
	if w.rec != nil {
		w.rec.ObserveApplied(ev.Kind)
	}
}

// applyDeposit trusts that ev.Tx is fresh: the global dedup filter in
// engine.Engine.Run already rejected any replay before this event was
// routed here.
func (w *Worker) applyDeposit(acct *account.Account, ev event.Event) error {
	if ev.Amount.IsNegative() {
		return errs.ErrNegativeAmount
	}
	if err := acct.Credit(ev.Amount); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	if err := w.deposits.Insert(ev.Tx, store.Deposit{
		Client: ev.Client,
		Amount: ev.Amount,
		State:  store.StateClear,
	}); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	return nil
}

func (w *Worker) applyWithdrawal(acct *account.Account, ev event.Event) error {
	if ev.Amount.IsNegative() {
		return errs.ErrNegativeAmount
	}
	return acct.Debit(ev.Amount)
}

// applyDisputeFamily handles Dispute/Resolve/Chargeback uniformly: look up
// the referenced deposit, verify ownership, run the state transition, and
// apply its balance effect. The deposit store mutation and the account
// mutation must agree (both happen, or neither does), so the transition is
// computed first against a read-only copy before anything is written.
func (w *Worker) applyDisputeFamily(acct *account.Account, ev event.Event) error {
	deposit, ok, err := w.deposits.Get(ev.Tx)
	if err != nil {
		return fmt.Errorf("dispute: %w", err)
	}
	if !ok {
		return errs.ErrUnknownTx
	}
	if deposit.Client != ev.Client {
		return errs.ErrClientMismatch
	}
	nextState, err := dispute.Transition(deposit.State, ev.Kind)
	if err != nil {
		return err
	}

	prev := *acct
	switch ev.Kind {
	case event.KindDispute:
		if err := acct.Hold(deposit.Amount); err != nil {
			return fmt.Errorf("dispute: %w", err)
		}
	case event.KindResolve:
		if err := acct.Release(deposit.Amount); err != nil {
			return fmt.Errorf("resolve: %w", err)
		}
	case event.KindChargeback:
		if err := acct.Seize(deposit.Amount); err != nil {
			return fmt.Errorf("chargeback: %w", err)
		}
	}

	err = w.deposits.Mutate(ev.Tx, func(d store.Deposit, ok bool) (store.Deposit, bool) {
		if !ok {
			return d, false
		}
		d.State = nextState
		return d, true
	})
	if err != nil {
		// The state change was not persisted, so undo the balance effect.
		*acct = prev
		return err
	}
	return nil
}

// Snapshot returns every account this worker has ever touched, in
// unspecified order (spec §4.8).
func (w *Worker) Snapshot() []account.Row {
	rows := make([]account.Row, 0, len(w.accounts))
	for _, a := range w.accounts {
		rows = append(rows, a.Row())
	}
	return rows
}
