// (c) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/luxfi/ledgerd/dedup"
)

// StoreKind names a DepositStore backend.
type StoreKind string

const (
	StoreMemory StoreKind = "memory"
	StorePebble StoreKind = "pebble"
)

// Config holds every externally tunable knob the spec's ambient stack
// allows (§6: "no other configuration" beyond verbosity is mandated by the
// core spec, but the expanded CLI exposes shard/store/dedup tuning too).
// Precedence is flag > environment variable > default, implemented with
// spf13/viper's env binding — a go.mod dependency of the teacher that
// nothing in the copied subset actually exercised, until now.
type Config struct {
	Shards           int
	InboxSize        int
	DedupFPR         float64
	ExpectedTxCount  uint64
	Store            StoreKind
	StorePath        string
	LogLevel         string
	MetricsPushURL   string
}

// DefaultConfig matches spec §4.7's default shard count of 4 and §4.3's
// default false-positive rate of 10^-5.
func DefaultConfig() Config {
	return Config{
		Shards:          4,
		InboxSize:       1024,
		DedupFPR:        dedup.DefaultFalsePositiveRate,
		ExpectedTxCount: 1_000_000,
		Store:           StoreMemory,
		LogLevel:        "info",
	}
}

// LoadConfig starts from DefaultConfig, overlays the LEDGERD_SHARDS,
// LEDGERD_INBOX_SIZE, LEDGERD_DEDUP_FPR, LEDGERD_STORE, LEDGERD_STORE_PATH
// and LEDGERD_LOG_LEVEL environment variables, then overlays the explicit overrides passed in (normally flag
// values from the CLI layer, which always wins).
func LoadConfig(overrides Config) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("LEDGERD")
	v.AutomaticEnv()
	for _, key := range []string{"shards", "inbox_size", "dedup_fpr", "store", "store_path", "log_level"} {
		_ = v.BindEnv(key)
	}

	if s := v.GetInt("shards"); s > 0 {
		cfg.Shards = s
	}
	if s := v.GetInt("inbox_size"); s > 0 {
		cfg.InboxSize = s
	}
	if f := v.GetFloat64("dedup_fpr"); f > 0 {
		cfg.DedupFPR = f
	}
	if s := v.GetString("store"); s != "" {
		cfg.Store = StoreKind(strings.ToLower(s))
	}
	if s := v.GetString("store_path"); s != "" {
		cfg.StorePath = s
	}
	if s := v.GetString("log_level"); s != "" {
		cfg.LogLevel = s
	}

	cfg = applyOverrides(cfg, overrides)

	if cfg.Shards < 1 {
		return Config{}, fmt.Errorf("engine: shards must be >= 1, got %d", cfg.Shards)
	}
	if cfg.Store == StorePebble && cfg.StorePath == "" {
		return Config{}, fmt.Errorf("engine: store=pebble requires a store path")
	}
	return cfg, nil
}

func applyOverrides(base, override Config) Config {
	if override.Shards > 0 {
		base.Shards = override.Shards
	}
	if override.InboxSize > 0 {
		base.InboxSize = override.InboxSize
	}
	if override.DedupFPR > 0 {
		base.DedupFPR = override.DedupFPR
	}
	if override.ExpectedTxCount > 0 {
		base.ExpectedTxCount = override.ExpectedTxCount
	}
	if override.Store != "" {
		base.Store = override.Store
	}
	if override.StorePath != "" {
		base.StorePath = override.StorePath
	}
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}
	if override.MetricsPushURL != "" {
		base.MetricsPushURL = override.MetricsPushURL
	}
	return base
}
