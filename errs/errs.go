// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package errs defines the closed taxonomy of local (non-fatal) and fatal
// errors the ledger engine produces, following the sentinel-error idiom
// the teacher codebase uses in its own errs-shaped packages.
package errs

import "errors"

// Kind names one of the taxonomy's error classes. It is attached to every
// local error so callers (mainly logging) can report a stable, machine
// comparable tag without string-matching error text.
type Kind string

const (
	KindParseError        Kind = "ParseError"
	KindUnknownType       Kind = "UnknownType"
	KindNegativeAmount    Kind = "NegativeAmount"
	KindDuplicateTx       Kind = "DuplicateTx"
	KindInsufficientFunds Kind = "InsufficientFunds"
	KindAccountLocked     Kind = "AccountLocked"
	KindUnknownTx         Kind = "UnknownTx"
	KindClientMismatch    Kind = "ClientMismatch"
	KindIllegalTransition Kind = "IllegalTransition"
	KindFatalIO           Kind = "FatalIO"
)

var (
	ErrParseError        = &localError{KindParseError, "malformed row or field"}
	ErrUnknownType       = &localError{KindUnknownType, "unrecognized event kind"}
	ErrNegativeAmount    = &localError{KindNegativeAmount, "negative amount on deposit or withdrawal"}
	ErrDuplicateTx       = &localError{KindDuplicateTx, "transaction id already observed"}
	ErrInsufficientFunds = &localError{KindInsufficientFunds, "withdrawal exceeds available balance"}
	ErrAccountLocked     = &localError{KindAccountLocked, "account is locked"}
	ErrUnknownTx         = &localError{KindUnknownTx, "dispute references no stored deposit"}
	ErrClientMismatch    = &localError{KindClientMismatch, "dispute client differs from deposit owner"}
	ErrIllegalTransition = &localError{KindIllegalTransition, "dispute-family event in a state that forbids it"}
)

// localError is any of the non-fatal kinds: logged once, event dropped,
// processing continues.
type localError struct {
	kind Kind
	msg  string
}

func (e *localError) Error() string { return e.msg }
func (e *localError) Kind() Kind    { return e.kind }

// FatalIO wraps an I/O failure at the process boundary. Unlike the local
// errors above it aborts the run.
type FatalIO struct {
	Op  string
	Err error
}

func (e *FatalIO) Error() string { return "fatal io: " + e.Op + ": " + e.Err.Error() }
func (e *FatalIO) Unwrap() error { return e.Err }
func (e *FatalIO) Kind() Kind    { return KindFatalIO }

// KindOf extracts the Kind tag from any error produced by this package, or
// "" if err does not carry one.
func KindOf(err error) Kind {
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}
