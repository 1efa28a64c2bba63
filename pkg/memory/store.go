// Package memory provides the public API for the in-memory scholar store.
// This package exposes the factory function and its options while keeping
// implementation details internal.
package memory

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/scholar/internal/memory"
	"github.com/mesh-intelligence/scholar/internal/metrics"
	"github.com/mesh-intelligence/scholar/pkg/types"
)

// Option configures a store built by NewStore.
type Option = memory.Option

// WithLogger sets the logger for debug records. A nil logger keeps the
// default, which discards.
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		return func(*memory.Store) {}
	}
	return memory.WithLogger(logger)
}

// WithMetrics registers the store's counters with reg. A nil registerer
// counts without registering.
func WithMetrics(reg prometheus.Registerer) Option {
	return memory.WithMetrics(metrics.New(reg))
}

// NewStore creates an empty in-memory Catalog.
//
// Example:
//
//	store := memory.NewStore(memory.WithLogger(slog.Default()))
//	store.AddAffiliation("A1", "Tampere University", types.Coord{X: 0, Y: 0})
//	ids := store.AffiliationsDistanceIncreasing()
func NewStore(opts ...Option) types.Catalog {
	return memory.NewStore(opts...)
}
