// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package csv

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/luxfi/ledgerd/account"
)

var outputHeader = []string{"client", "available", "held", "total", "locked"}

// Writer renders the snapshot aggregator's output rows as CSV.
type Writer struct {
	cw *csv.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{cw: csv.NewWriter(w)}
}

// WriteAll writes the header followed by one row per account, in the order
// given (row order is unspecified by spec §4.8; callers that want a
// deterministic order sort rows beforehand).
func (w *Writer) WriteAll(rows []account.Row) error {
	if err := w.cw.Write(outputHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Client.String(),
			r.Available.String(),
			r.Held.String(),
			r.Total.String(),
			strconv.FormatBool(r.Locked),
		}
		if err := w.cw.Write(record); err != nil {
			return err
		}
	}
	w.cw.Flush()
	return w.cw.Error()
}
