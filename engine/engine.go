// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package engine is the composition root: it wires the shard router, the
// per-client workers, the snapshot aggregator, the dedup filter, the
// deposit store factory, logging, and metrics into the single
// Engine.Run(ctx, r, w) entry point a CLI main would call. This mirrors
// the teacher's own cmd/<tool>/main.go convention of keeping wiring in one
// small place and delegating all real logic to library packages.
package engine

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"

	"github.com/luxfi/ledgerd/aggregate"
	"github.com/luxfi/ledgerd/csv"
	"github.com/luxfi/ledgerd/dedup"
	"github.com/luxfi/ledgerd/errs"
	"github.com/luxfi/ledgerd/logging"
	"github.com/luxfi/ledgerd/metrics"
	"github.com/luxfi/ledgerd/router"
	"github.com/luxfi/ledgerd/store"
	"github.com/luxfi/ledgerd/worker"
)

// warner is the logging capability Engine needs: *slog.Logger satisfies
// it, as does logging.Discard.
type warner interface {
	Warn(msg string, args ...any)
}

// Engine owns one run's worth of shards. It is not reusable across runs —
// construct a new Engine per invocation, the same way the CLI constructs a
// new TxPool per node start in the teacher codebase.
type Engine struct {
	cfg     Config
	log     warner
	metrics *metrics.Recorder
}

// New constructs an Engine from cfg. log may be nil, in which case
// warnings go to logging.Discard. rec may be nil, in which case a private
// metrics registry is created.
func New(cfg Config, log warner, rec *metrics.Recorder) *Engine {
	if log == nil {
		log = logging.Discard
	}
	if rec == nil {
		rec = metrics.New()
	}
	return &Engine{cfg: cfg, log: log, metrics: rec}
}

// Run reads CSV events from r, applies them through the sharded worker
// pool, and writes the CSV snapshot to w. It returns an *errs.FatalIO only
// for failures at the process boundary (spec §7); every per-row problem is
// logged and dropped.
func (e *Engine) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	shards, closeStores, err := e.buildShards()
	if err != nil {
		return &errs.FatalIO{Op: "build shards", Err: err}
	}
	defer closeStores()

	// TxID freshness (spec §3: unique across all deposits/withdrawals
	// system-wide) is a property of the whole stream, not of any one shard,
	// so it is checked here against a single filter before an event is ever
	// routed — not inside a worker, which only ever sees its own shard.
	dedupFilter, err := dedup.New(e.cfg.ExpectedTxCount, e.cfg.DedupFPR)
	if err != nil {
		return &errs.FatalIO{Op: "build dedup filter", Err: err}
	}

	sinks := make([]router.Sink, len(shards))
	snapshotters := make([]aggregate.Snapshotter, len(shards))
	for i, sh := range shards {
		sinks[i] = sh
		snapshotters[i] = sh
	}
	rt := router.New(sinks)

	var wg sync.WaitGroup
	wg.Add(len(shards))
	for _, sh := range shards {
		sh := sh
		go func() {
			defer wg.Done()
			sh.Run()
		}()
	}

	rows := csv.NewReader(r)
	var fatal *errs.FatalIO

readLoop:
	for {
		if ctx.Err() != nil {
			fatal = &errs.FatalIO{Op: "read input", Err: ctx.Err()}
			break readLoop
		}

		ev, rowErr := rows.Next()
		switch {
		case rowErr == io.EOF:
			break readLoop
		case rowErr != nil:
			if f, ok := rowErr.(*errs.FatalIO); ok {
				fatal = f
				break readLoop
			}
			e.log.Warn("row rejected", "reason", string(errs.KindOf(rowErr)), "err", rowErr)
			continue
		}

		if ev.Kind.HasAmount() && dedupFilter.ObserveAndCheck(uint32(ev.Tx)) == dedup.ProbablySeen {
			e.metrics.ObserveRejected(ev.Kind, errs.KindDuplicateTx)
			e.log.Warn("event rejected",
				"kind", ev.Kind.String(),
				"client", ev.Client,
				"tx", ev.Tx,
				"reason", string(errs.KindDuplicateTx),
			)
			continue
		}
		rt.Route(ev)
	}

	rt.Close()
	wg.Wait()

	if fatal != nil {
		return fatal
	}

	result := aggregate.Join(snapshotters)
	sort.Slice(result, func(i, j int) bool { return result[i].Client < result[j].Client })

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(result); err != nil {
		return &errs.FatalIO{Op: "write output", Err: err}
	}

	if e.cfg.MetricsPushURL != "" {
		if err := e.metrics.PushGateway(e.cfg.MetricsPushURL, "ledgerd"); err != nil {
			e.log.Warn("metrics push failed", "err", err)
		}
	}
	return nil
}

func (e *Engine) buildShards() ([]*worker.Worker, func(), error) {
	shards := make([]*worker.Worker, e.cfg.Shards)
	stores := make([]store.Store, e.cfg.Shards)

	for i := 0; i < e.cfg.Shards; i++ {
		s, err := e.buildStore(i)
		if err != nil {
			return nil, nil, err
		}
		stores[i] = s

		shards[i] = worker.New(i, e.cfg.InboxSize, s, shardLogger{e.log, i}, e.metrics)
	}

	closeAll := func() {
		for _, s := range stores {
			if s != nil {
				_ = s.Close()
			}
		}
	}
	return shards, closeAll, nil
}

// shardLogger tags every warning from a worker with its shard index, so
// interleaved stderr output from concurrent workers stays attributable.
type shardLogger struct {
	base  warner
	shard int
}

func (s shardLogger) Warn(msg string, args ...any) {
	s.base.Warn(msg, append([]any{"shard", s.shard}, args...)...)
}

func (e *Engine) buildStore(shard int) (store.Store, error) {
	switch e.cfg.Store {
	case StorePebble:
		path := filepath.Join(e.cfg.StorePath, fmt.Sprintf("shard-%d", shard))
		return store.OpenPebble(path)
	default:
		return store.NewMemory(), nil
	}
}
