// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	require.Equal(t, LevelInfo, LevelFromString(""))
	require.Equal(t, LevelInfo, LevelFromString("bogus"))
	require.Equal(t, LevelDebug, LevelFromString("debug"))
	require.Equal(t, LevelError, LevelFromString("error"))
}

func TestNewTerminalRespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewTerminal(&buf, LevelWarn)

	l.Info("should be filtered out")
	require.Empty(t, buf.String())

	l.Warn("should appear")
	require.Contains(t, buf.String(), "should appear")
}

func TestForShardTagsRecords(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	shardLog := ForShard(l, 3)

	shardLog.Warn("hello")
	require.Contains(t, buf.String(), "shard=3")
}

func TestDiscardNeverPanics(t *testing.T) {
	require.NotPanics(t, func() {
		Discard.Warn("dropped", "k", "v")
	})
}
