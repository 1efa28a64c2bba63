// This file implements the affiliation side of the store: insertion, lookup,
// coordinate moves, removal, and the two cached orderings.
package memory

import (
	"slices"
	"strings"

	"github.com/mesh-intelligence/scholar/internal/metrics"
	"github.com/mesh-intelligence/scholar/pkg/types"
)

// AllAffiliations returns every affiliation id in insertion order.
func (s *Store) AllAffiliations() []types.AffiliationID {
	return nonNil(slices.Clone(s.affiliationOrder))
}

// HasAffiliation reports whether id is a live affiliation.
func (s *Store) HasAffiliation(id types.AffiliationID) bool {
	_, ok := s.affiliations[id]
	return ok
}

// Affiliation returns a copy of the affiliation record.
func (s *Store) Affiliation(id types.AffiliationID) (*types.Affiliation, bool) {
	a, ok := s.affiliations[id]
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

// AddAffiliation creates an affiliation and places it in the coordinate
// index. Both sort caches become stale. The NoAffiliation sentinel is not
// a usable id.
func (s *Store) AddAffiliation(id types.AffiliationID, name types.Name, xy types.Coord) bool {
	if id == types.NoAffiliation {
		return false
	}
	if _, exists := s.affiliations[id]; exists {
		return false
	}

	s.affiliations[id] = &types.Affiliation{
		ID:    id,
		Name:  name,
		Coord: xy,
	}
	s.affiliationOrder = append(s.affiliationOrder, id)
	s.coords.add(xy, id)

	s.alphabetical.invalidate()
	s.distance.invalidate()
	s.metrics.IncrementAdded(types.KindAffiliation)
	return true
}

// AffiliationName returns the name of id, or NoName.
func (s *Store) AffiliationName(id types.AffiliationID) types.Name {
	a, ok := s.affiliations[id]
	if !ok {
		return types.NoName
	}
	return a.Name
}

// AffiliationCoord returns the coordinate of id, or NoCoord.
func (s *Store) AffiliationCoord(id types.AffiliationID) types.Coord {
	a, ok := s.affiliations[id]
	if !ok {
		return types.NoCoord
	}
	return a.Coord
}

// AffiliationsAlphabetically returns every affiliation id ordered by name,
// sorting only when the cache is stale.
func (s *Store) AffiliationsAlphabetically() []types.AffiliationID {
	recompute := !s.alphabetical.valid
	if recompute {
		ids := slices.Clone(s.affiliationOrder)
		slices.SortStableFunc(ids, func(a, b types.AffiliationID) int {
			return strings.Compare(s.affiliations[a].Name, s.affiliations[b].Name)
		})
		s.alphabetical = sortCache{ids: ids, valid: true}
		s.logger.Debug("sort cache recomputed", "order", metrics.OrderAlphabetical, "count", len(ids))
	}
	s.metrics.ObserveSort(metrics.OrderAlphabetical, recompute)
	return nonNil(slices.Clone(s.alphabetical.ids))
}

// AffiliationsDistanceIncreasing returns every affiliation id ordered by
// squared distance from the origin, then by y, sorting only when the cache
// is stale.
func (s *Store) AffiliationsDistanceIncreasing() []types.AffiliationID {
	recompute := !s.distance.valid
	if recompute {
		ids := slices.Clone(s.affiliationOrder)
		slices.SortStableFunc(ids, func(a, b types.AffiliationID) int {
			ca, cb := s.affiliations[a].Coord, s.affiliations[b].Coord
			switch {
			case ca.CloserToOrigin(cb):
				return -1
			case cb.CloserToOrigin(ca):
				return 1
			default:
				return 0
			}
		})
		s.distance = sortCache{ids: ids, valid: true}
		s.logger.Debug("sort cache recomputed", "order", metrics.OrderDistance, "count", len(ids))
	}
	s.metrics.ObserveSort(metrics.OrderDistance, recompute)
	return nonNil(slices.Clone(s.distance.ids))
}

// FindAffiliationWithCoord returns the affiliation at exactly xy. When
// several share the coordinate the one that arrived first is returned.
func (s *Store) FindAffiliationWithCoord(xy types.Coord) types.AffiliationID {
	return s.coords.find(xy)
}

// ChangeAffiliationCoord moves id to xy. Only the distance cache becomes
// stale; names are unaffected.
func (s *Store) ChangeAffiliationCoord(id types.AffiliationID, xy types.Coord) bool {
	a, ok := s.affiliations[id]
	if !ok {
		return false
	}

	s.coords.remove(a.Coord, id)
	a.Coord = xy
	s.coords.add(xy, id)

	s.distance.invalidate()
	return true
}

// RemoveAffiliation deletes id, its links to publications, and its
// coordinate index entry. The id is cut out of both cached orders, which
// stay valid.
func (s *Store) RemoveAffiliation(id types.AffiliationID) bool {
	a, ok := s.affiliations[id]
	if !ok {
		return false
	}

	unlinked := s.unlinkAffiliation(a)
	s.coords.remove(a.Coord, id)
	s.affiliationOrder = removeAll(s.affiliationOrder, id)
	s.alphabetical.excise(id)
	s.distance.excise(id)
	delete(s.affiliations, id)

	s.metrics.IncrementRemoved(types.KindAffiliation)
	s.logger.Debug("affiliation removed", "id", id, "unlinked_publications", unlinked)
	return true
}

// AffiliationsClosestTo is declared by types.Catalog but has no
// implementation.
func (s *Store) AffiliationsClosestTo(xy types.Coord) ([]types.AffiliationID, error) {
	return nil, &types.NotImplementedError{Op: "AffiliationsClosestTo"}
}
