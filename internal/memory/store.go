// Package memory implements the in-memory scholar store: affiliation and
// publication records, the coordinate index, the many-to-many affiliation
// links, the publication reference forest, and the cached sort orders.
package memory

import (
	"log/slog"

	"github.com/mesh-intelligence/scholar/internal/metrics"
	"github.com/mesh-intelligence/scholar/pkg/types"
)

var _ types.Catalog = (*Store)(nil)

// Store implements types.Catalog. It is not safe for concurrent use; see
// types.Catalog.
type Store struct {
	affiliations map[types.AffiliationID]*types.Affiliation
	publications map[types.PublicationID]*types.Publication
	coords       coordIndex

	// Insertion order of live ids.
	affiliationOrder []types.AffiliationID
	publicationOrder []types.PublicationID

	alphabetical sortCache
	distance     sortCache

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// sortCache is a memoized ordering of every affiliation id. ids is only
// meaningful while valid is true.
type sortCache struct {
	ids   []types.AffiliationID
	valid bool
}

func (c *sortCache) invalidate() {
	c.valid = false
}

// excise drops id from a cached order so a removal does not force a resort.
func (c *sortCache) excise(id types.AffiliationID) {
	c.ids = removeAll(c.ids, id)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug records. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics the store reports to. The default is an
// unregistered set.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New(nil)
	}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.affiliations = make(map[types.AffiliationID]*types.Affiliation)
	s.publications = make(map[types.PublicationID]*types.Publication)
	s.coords = make(coordIndex)
	s.affiliationOrder = nil
	s.publicationOrder = nil
	s.alphabetical = sortCache{}
	s.distance = sortCache{}
}

// AffiliationCount returns the number of live affiliations.
func (s *Store) AffiliationCount() int {
	return len(s.affiliations)
}

// ClearAll removes every record and index entry. Both sort caches become
// stale.
func (s *Store) ClearAll() {
	s.reset()
	s.logger.Debug("store cleared")
}

// removeAll returns ids with every occurrence of id removed, reusing the
// backing array.
func removeAll[T comparable](ids []T, id T) []T {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	clear(ids[len(out):])
	return out
}

// nonNil returns ids, or an empty slice when ids is nil, so JSON output
// renders [] rather than null.
func nonNil[T any](ids []T) []T {
	if ids == nil {
		return []T{}
	}
	return ids
}
