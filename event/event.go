// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package event defines the wire-level vocabulary the ledger engine
// consumes: client and transaction identifiers and the tagged Event
// record, in the small typed-wrapper style the teacher uses for its own
// chain identifiers (commontype.ChainContext, ids.NodeID and friends).
package event

import (
	"fmt"

	"github.com/luxfi/ledgerd/money"
)

// ClientID identifies an account holder. Per spec it is a 16-bit unsigned
// integer.
type ClientID uint16

func (c ClientID) String() string { return fmt.Sprintf("%d", uint16(c)) }

// TxID identifies a deposit or withdrawal. Per spec it is a 32-bit unsigned
// integer, globally unique across deposits and withdrawals.
type TxID uint32

func (t TxID) String() string { return fmt.Sprintf("%d", uint32(t)) }

// Kind tags the variant of an Event.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDeposit
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// ParseKind maps a (already-trimmed, case-insensitive) row type field to a
// Kind. The zero value, KindUnknown, signals an unrecognized type.
func ParseKind(s string) Kind {
	switch s {
	case "deposit":
		return KindDeposit
	case "withdrawal":
		return KindWithdrawal
	case "dispute":
		return KindDispute
	case "resolve":
		return KindResolve
	case "chargeback":
		return KindChargeback
	default:
		return KindUnknown
	}
}

// HasAmount reports whether events of this kind carry an Amount field.
func (k Kind) HasAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// IsDisputeFamily reports whether k is one of Dispute/Resolve/Chargeback,
// the events that reference an existing deposit rather than minting a new
// TxID.
func (k Kind) IsDisputeFamily() bool {
	return k == KindDispute || k == KindResolve || k == KindChargeback
}

// Event is a single row of the input stream, already parsed and validated
// for shape (not yet for business rules, which is the worker's job).
type Event struct {
	Kind   Kind
	Client ClientID
	Tx     TxID
	Amount money.Amount // zero and ignored unless Kind.HasAmount()
}
