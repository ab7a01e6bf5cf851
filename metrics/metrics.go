// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics wires github.com/prometheus/client_golang directly into
// the ledger engine. The teacher vendors its own metrics.Registry
// abstraction (metrics/gatherer, metrics/prometheus) in front of
// prometheus/client_golang so geth-style meters/counters/EWMAs can be
// exported through it; the ledger engine has no equivalent internal meter
// library to bridge, so it talks to prometheus/client_golang's own
// constructors directly — the same dependency, used the way the library
// itself recommends rather than through the teacher's bridge, since there
// is nothing here for the bridge to adapt.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	dto "github.com/prometheus/client_model/go"

	"github.com/luxfi/ledgerd/errs"
	"github.com/luxfi/ledgerd/event"
)

// Recorder counts applied and rejected events. Implemented against the
// worker.Recorder and aggregate-time reporting needs.
type Recorder struct {
	registry *prometheus.Registry
	applied  *prometheus.CounterVec
	rejected *prometheus.CounterVec
	dedupHit prometheus.Counter
}

// New registers a fresh set of counters on a private registry, so multiple
// engine runs in the same process (e.g. in tests) never collide on
// prometheus's global default registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledgerd",
			Name:      "events_applied_total",
			Help:      "Events successfully applied, by kind.",
		}, []string{"kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledgerd",
			Name:      "events_rejected_total",
			Help:      "Events dropped, by kind and rejection reason.",
		}, []string{"kind", "reason"}),
		dedupHit: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledgerd",
			Name:      "dedup_hits_total",
			Help:      "Deposit/withdrawal TxIDs rejected as probable replays.",
		}),
	}
	reg.MustRegister(r.applied, r.rejected, r.dedupHit)
	return r
}

// ObserveApplied implements worker.Recorder.
func (r *Recorder) ObserveApplied(kind event.Kind) {
	r.applied.WithLabelValues(kind.String()).Inc()
}

// ObserveRejected implements worker.Recorder.
func (r *Recorder) ObserveRejected(kind event.Kind, reason errs.Kind) {
	r.rejected.WithLabelValues(kind.String(), string(reason)).Inc()
	if reason == errs.KindDuplicateTx {
		r.dedupHit.Inc()
	}
}

// WriteSummary renders a one-line-per-metric-family human summary to w,
// used for the CLI's shutdown report (spec §9: metrics are additive, no
// HTTP server is started).
func (r *Recorder) WriteSummary(w io.Writer) error {
	mfs, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			val := m.GetCounter().GetValue()
			if val == 0 {
				continue
			}
			fmt.Fprintf(w, "%s%s %.0f\n", mf.GetName(), labelString(m.GetLabel()), val)
		}
	}
	return nil
}

func labelString(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	s := "{"
	for i, l := range labels {
		if i > 0 {
			s += ","
		}
		s += l.GetName() + "=" + l.GetValue()
	}
	return s + "}"
}

// PushGateway pushes the current metric snapshot to a Prometheus Pushgateway
// at url, for deployments where ledgerd runs as a short-lived batch job
// rather than a scraped service (the teacher's node is long-running and
// scraped in place; a batch CSV run has nothing to scrape once it exits).
func (r *Recorder) PushGateway(url, job string) error {
	return push.New(url, job).Gatherer(r.registry).Push()
}
