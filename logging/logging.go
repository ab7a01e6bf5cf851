// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package logging is a thin leveled-logging facade over github.com/luxfi/log,
// adapted from the teacher's own go-ethereum-style compatibility shim
// (log/compat.go) down to the surface the ledger engine actually exercises:
// level parsing from an environment variable, a root logger, and per-worker
// child loggers carrying a "shard" field. Handler construction (terminal vs
// file) is implemented locally against the standard log/slog package, the
// same way the teacher's own compat shim builds its handlers without
// reaching back into luxfi/log for them.
package logging

import (
	"io"
	"log/slog"
	"os"

	luxlog "github.com/luxfi/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level re-exports slog's level type so callers never import log/slog
// directly just to name a level.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger is the capability worker/router/engine code depends on. It is
// satisfied by *slog.Logger, so production code never needs a bespoke
// interface beyond the standard library's.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// LevelFromString parses a verbosity name ("debug", "info", "warn",
// "error") into a Level, falling back to Info for an empty or unrecognized
// string. It defers to luxfi/log's own parser, mirroring the teacher's
// LvlFromString re-export, so ledgerd accepts exactly the verbosity
// vocabulary the rest of the luxfi toolchain does.
func LevelFromString(s string) Level {
	if s == "" {
		return LevelInfo
	}
	lvl, err := luxlog.ToLevel(s)
	if err != nil {
		return LevelInfo
	}
	return slog.Level(lvl)
}

// NewTerminal returns a human-readable logger writing to w at minLevel.
func NewTerminal(w io.Writer, minLevel Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: minLevel}))
}

// NewRotatingFile returns a logger writing JSON records to a
// size-rotated file, using the teacher's own log-rotation dependency
// (gopkg.in/natefinch/lumberjack.v2) rather than hand-rolled rotation.
func NewRotatingFile(path string, minLevel Level, maxSizeMB int) *slog.Logger {
	w := &lumberjack.Logger{
		Filename: path,
		MaxSize:  maxSizeMB,
		Compress: true,
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: minLevel}))
}

// Discard is a Logger that drops every record, used by tests that don't
// care about log output.
var Discard Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// FromEnv builds a terminal logger at the level named by the given
// environment variable (spec §6: "a logging verbosity variable may adjust
// warning visibility"), defaulting to stderr at Info.
func FromEnv(envVar string) *slog.Logger {
	return NewTerminal(os.Stderr, LevelFromString(os.Getenv(envVar)))
}

// ForShard returns a child logger tagging every record with the shard
// index, so warnings from concurrent workers can be told apart in
// interleaved stderr output.
func ForShard(l *slog.Logger, shard int) *slog.Logger {
	return l.With("shard", shard)
}
