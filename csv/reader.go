// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package csv is the input/output adapter the spec places outside the
// core (§1: "CSV tokenization and output rendering ... trivial adapters
// around the core"). It uses encoding/csv directly: nothing in the
// teacher's dependency pack offers a CSV-domain library, and the
// standard library's csv.Reader/csv.Writer already do exactly what a
// four-column, header-required, whitespace-trimmed format needs — see
// DESIGN.md for why this is the one adapter in the repo built on the
// standard library rather than a pack dependency.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/luxfi/ledgerd/errs"
	"github.com/luxfi/ledgerd/event"
	"github.com/luxfi/ledgerd/money"
)

var expectedHeader = []string{"type", "client", "tx", "amount"}

// Reader tokenizes the input CSV into Events. Rows with an unknown type or
// malformed fields are reported as local errors (dropped with a warning by
// the caller); a malformed input stream structure (e.g. a ragged CSV that
// encoding/csv itself cannot tokenize) surfaces as *errs.FatalIO, since
// that is a stream-structure failure rather than a per-row one (spec §5).
type Reader struct {
	cr      *csv.Reader
	started bool
}

// NewReader wraps r. The header row is consumed lazily, on the first call
// to Next, so a reader that strictly never reads (e.g. an already-closed
// worker pool) never touches r.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows are validated by field count explicitly below
	cr.TrimLeadingSpace = true
	return &Reader{cr: cr}
}

// Next returns the next parsed Event, io.EOF once input is exhausted, a
// local error (errs.Kind-tagged) for a malformed or unrecognized row, or an
// *errs.FatalIO if the underlying stream itself cannot be tokenized.
func (r *Reader) Next() (event.Event, error) {
	if !r.started {
		r.started = true
		header, err := r.cr.Read()
		if err == io.EOF {
			return event.Event{}, io.EOF
		}
		if err != nil {
			return event.Event{}, &errs.FatalIO{Op: "read csv header", Err: err}
		}
		if !headerMatches(header) {
			return event.Event{}, &errs.FatalIO{Op: "read csv header", Err: fmt.Errorf("unexpected header %v", header)}
		}
	}

	for {
		record, err := r.cr.Read()
		if err == io.EOF {
			return event.Event{}, io.EOF
		}
		if err != nil {
			// encoding/csv reports structural problems (wrong quoting, bare
			// quotes) as errors distinct from business-rule rejections; per
			// spec §5 a malformed *stream structure* is fatal, not per-row.
			return event.Event{}, &errs.FatalIO{Op: "read csv row", Err: err}
		}
		ev, perr := parseRow(record)
		if perr != nil {
			return event.Event{}, perr
		}
		return ev, nil
	}
}

func headerMatches(got []string) bool {
	if len(got) != len(expectedHeader) {
		return false
	}
	for i, h := range expectedHeader {
		if strings.TrimSpace(strings.ToLower(got[i])) != h {
			return false
		}
	}
	return true
}

func parseRow(record []string) (event.Event, error) {
	if len(record) != 4 {
		return event.Event{}, fmt.Errorf("%w: expected 4 fields, got %d", errs.ErrParseError, len(record))
	}

	typ := strings.TrimSpace(strings.ToLower(record[0]))
	kind := event.ParseKind(typ)
	if kind == event.KindUnknown {
		return event.Event{}, fmt.Errorf("%w: %q", errs.ErrUnknownType, typ)
	}

	clientText := strings.TrimSpace(record[1])
	client, err := parseClientID(clientText)
	if err != nil {
		return event.Event{}, fmt.Errorf("%w: client %q: %v", errs.ErrParseError, clientText, err)
	}

	txText := strings.TrimSpace(record[2])
	tx, err := parseTxID(txText)
	if err != nil {
		return event.Event{}, fmt.Errorf("%w: tx %q: %v", errs.ErrParseError, txText, err)
	}

	amountText := strings.TrimSpace(record[3])
	var amount money.Amount
	if kind.HasAmount() {
		if amountText == "" {
			return event.Event{}, fmt.Errorf("%w: %s requires an amount", errs.ErrParseError, kind)
		}
		amount, err = money.Parse(amountText)
		if err != nil {
			return event.Event{}, fmt.Errorf("%w: amount %q: %v", errs.ErrParseError, amountText, err)
		}
		if amount.IsNegative() {
			return event.Event{}, fmt.Errorf("%w: %s", errs.ErrNegativeAmount, amountText)
		}
	}

	return event.Event{Kind: kind, Client: client, Tx: tx, Amount: amount}, nil
}

func parseClientID(s string) (event.ClientID, error) {
	v, err := parseUint(s, 16)
	if err != nil {
		return 0, err
	}
	return event.ClientID(v), nil
}

func parseTxID(s string) (event.TxID, error) {
	v, err := parseUint(s, 32)
	if err != nil {
		return 0, err
	}
	return event.TxID(v), nil
}

func parseUint(s string, bits int) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	var v uint64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a non-negative integer")
		}
		v = v*10 + uint64(r-'0')
	}
	if bits < 64 && v>>uint(bits) != 0 {
		return 0, fmt.Errorf("exceeds %d-bit range", bits)
	}
	return v, nil
}
