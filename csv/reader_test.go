// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package csv

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ledgerd/errs"
	"github.com/luxfi/ledgerd/event"
)

func TestReaderParsesBasicFlow(t *testing.T) {
	input := "type, client, tx, amount\n" +
		"deposit, 1, 1, 1.0\n" +
		"deposit, 2, 2, 2.0\n" +
		"deposit, 1, 3, 2.0\n" +
		"withdrawal, 1, 4, 1.5\n" +
		"withdrawal, 2, 5, 3.0\n"

	r := NewReader(strings.NewReader(input))

	var got []event.Event
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, ev)
	}
	require.Len(t, got, 5)
	require.Equal(t, event.KindDeposit, got[0].Kind)
	require.Equal(t, event.ClientID(1), got[0].Client)
	require.Equal(t, "1.0000", got[0].Amount.String())
}

func TestReaderRejectsBadHeader(t *testing.T) {
	r := NewReader(strings.NewReader("a,b,c,d\n1,2,3,4\n"))
	_, err := r.Next()
	var fatal *errs.FatalIO
	require.ErrorAs(t, err, &fatal)
}

func TestReaderEmptyInputIsEOF(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	_, err := r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderUnknownTypeIsLocalError(t *testing.T) {
	r := NewReader(strings.NewReader("type,client,tx,amount\ntransfer,1,1,1.0\n"))
	_, err := r.Next()
	require.ErrorIs(t, err, errs.ErrUnknownType)
}

func TestReaderNegativeAmountRejected(t *testing.T) {
	r := NewReader(strings.NewReader("type,client,tx,amount\ndeposit,1,1,-1.0\n"))
	_, err := r.Next()
	require.ErrorIs(t, err, errs.ErrNegativeAmount)
}

func TestReaderDisputeHasNoAmount(t *testing.T) {
	r := NewReader(strings.NewReader("type,client,tx,amount\ndispute,1,1,\n"))
	ev, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, event.KindDispute, ev.Kind)
}

func TestReaderTrimsWhitespace(t *testing.T) {
	r := NewReader(strings.NewReader("type, client, tx, amount\n deposit ,  1 , 1 , 1.0\n"))
	ev, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, event.KindDeposit, ev.Kind)
	require.Equal(t, event.ClientID(1), ev.Client)
}

func TestReaderRejectsOversizedClientID(t *testing.T) {
	r := NewReader(strings.NewReader("type,client,tx,amount\ndeposit,99999999,1,1.0\n"))
	_, err := r.Next()
	require.ErrorIs(t, err, errs.ErrParseError)
}
