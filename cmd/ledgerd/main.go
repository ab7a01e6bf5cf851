// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// ledgerd reads a CSV stream of client-scoped monetary events and writes a
// per-client balance snapshot to stdout. Structured as a urfave/cli/v2 app
// following the teacher's cmd/evm-node/main.go convention: a single
// *cli.App with a Before hook that sets up logging before the action runs.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/luxfi/ledgerd/engine"
	"github.com/luxfi/ledgerd/logging"
	"github.com/luxfi/ledgerd/metrics"
)

var app = &cli.App{
	Name:      "ledgerd",
	Usage:     "stream a client-events CSV into a balance snapshot CSV",
	ArgsUsage: "<input.csv>",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "shards", Usage: "number of per-client worker shards", EnvVars: []string{"LEDGERD_SHARDS"}},
		&cli.Float64Flag{Name: "dedup-fpr", Usage: "dedup filter target false-positive rate", EnvVars: []string{"LEDGERD_DEDUP_FPR"}},
		&cli.StringFlag{Name: "store", Usage: "deposit store backend: memory|pebble", EnvVars: []string{"LEDGERD_STORE"}},
		&cli.StringFlag{Name: "store-path", Usage: "directory for the pebble store backend", EnvVars: []string{"LEDGERD_STORE_PATH"}},
		&cli.StringFlag{Name: "log-level", Usage: "debug|info|warn|error", EnvVars: []string{"LEDGERD_LOG_LEVEL"}},
		&cli.StringFlag{Name: "metrics-push-url", Usage: "optional Prometheus Pushgateway URL"},
	},
}

var logger = logging.FromEnv("LEDGERD_LOG_LEVEL")

func init() {
	app.Before = func(c *cli.Context) error {
		if lvl := c.String("log-level"); lvl != "" {
			logger = logging.NewTerminal(os.Stderr, logging.LevelFromString(lvl))
		}
		return nil
	}
	app.Action = run
}

func run(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("exactly one positional argument (input file path) is required", 1)
	}
	path := c.Args().First()

	in, err := os.Open(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("open input: %v", err), 1)
	}
	defer in.Close()

	cfg, err := engine.LoadConfig(engine.Config{
		Shards:         c.Int("shards"),
		DedupFPR:       c.Float64("dedup-fpr"),
		Store:          engine.StoreKind(c.String("store")),
		StorePath:      c.String("store-path"),
		LogLevel:       c.String("log-level"),
		MetricsPushURL: c.String("metrics-push-url"),
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("config: %v", err), 1)
	}

	rec := metrics.New()
	eng := engine.New(cfg, logger, rec)

	if err := eng.Run(context.Background(), in, os.Stdout); err != nil {
		return cli.Exit(fmt.Sprintf("run: %v", err), 1)
	}

	if err := rec.WriteSummary(os.Stderr); err != nil {
		logger.Warn("metrics summary failed", "err", err)
	}
	return nil
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
