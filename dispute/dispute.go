// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dispute implements the deposit dispute lifecycle as a total
// transition function over the closed DepositState sum, in the
// state-machine-over-enum idiom the teacher uses for core/txpool's
// TxStatus: transitions are looked up, never inferred from a grab-bag of
// booleans, so unreachable state combinations cannot arise.
package dispute

import (
	"github.com/luxfi/ledgerd/errs"
	"github.com/luxfi/ledgerd/event"
	"github.com/luxfi/ledgerd/store"
)

// Transition computes the next DepositState for a dispute-family event kind
// applied to a deposit currently in state `from`. It returns
// errs.ErrIllegalTransition for any pair the spec does not name as legal;
// Resolved and ChargedBack are terminal and reject every further
// dispute-family event.
func Transition(from store.DepositState, kind event.Kind) (store.DepositState, error) {
	switch kind {
	case event.KindDispute:
		if from == store.StateClear {
			return store.StateDisputed, nil
		}
	case event.KindResolve:
		if from == store.StateDisputed {
			return store.StateResolved, nil
		}
	case event.KindChargeback:
		if from == store.StateDisputed {
			return store.StateChargedBack, nil
		}
	}
	return from, errs.ErrIllegalTransition
}
