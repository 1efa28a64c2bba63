// This file implements the query engine: year-filtered enumeration, the
// forest walks, and cascading publication removal.
package memory

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mesh-intelligence/scholar/pkg/types"
)

// PublicationsAfter returns the affiliation's publications published in or
// after year, ordered by year then name. The affiliation's link list is left
// sorted in that order.
func (s *Store) PublicationsAfter(affiliationID types.AffiliationID, year types.Year) []types.YearPublication {
	a, ok := s.affiliations[affiliationID]
	if !ok {
		return []types.YearPublication{types.NoYearPublication}
	}

	slices.SortStableFunc(a.Publications, func(x, y types.PublicationID) int {
		px, py := s.publications[x], s.publications[y]
		if c := cmp.Compare(px.Year, py.Year); c != 0 {
			return c
		}
		return strings.Compare(px.Name, py.Name)
	})

	result := []types.YearPublication{}
	for _, pid := range a.Publications {
		p := s.publications[pid]
		if p.Year >= year {
			result = append(result, types.YearPublication{Year: p.Year, ID: pid})
		}
	}
	return result
}

// ReferencedByChain returns the ancestors of id from its parent up to the
// root of its tree.
func (s *Store) ReferencedByChain(id types.PublicationID) []types.PublicationID {
	p, ok := s.publications[id]
	if !ok {
		return []types.PublicationID{types.NoPublication}
	}

	chain := []types.PublicationID{}
	for p.HasParent() {
		chain = append(chain, p.Parent)
		p = s.publications[p.Parent]
	}
	return chain
}

// ClosestCommonParent returns the nearest publication that is an ancestor
// of both id1 and id2. Neither id counts as its own ancestor.
func (s *Store) ClosestCommonParent(id1, id2 types.PublicationID) types.PublicationID {
	p1, ok := s.publications[id1]
	if !ok {
		return types.NoPublication
	}
	p2, ok := s.publications[id2]
	if !ok {
		return types.NoPublication
	}

	ancestors := make(map[types.PublicationID]struct{})
	for p := p1; p.HasParent(); p = s.publications[p.Parent] {
		ancestors[p.Parent] = struct{}{}
	}
	for p := p2; p.HasParent(); p = s.publications[p.Parent] {
		if _, shared := ancestors[p.Parent]; shared {
			return p.Parent
		}
	}
	return types.NoPublication
}

// AllReferences returns every publication below id in the forest. Each
// child's subtree is emitted before the direct children, which close the
// list in reference order.
func (s *Store) AllReferences(id types.PublicationID) []types.PublicationID {
	p, ok := s.publications[id]
	if !ok {
		return []types.PublicationID{types.NoPublication}
	}
	return s.collectReferences(p, []types.PublicationID{})
}

func (s *Store) collectReferences(p *types.Publication, out []types.PublicationID) []types.PublicationID {
	for _, cid := range p.References {
		if child, ok := s.publications[cid]; ok {
			out = s.collectReferences(child, out)
		}
	}
	return append(out, p.References...)
}

// RemovePublication deletes id. Its affiliation links are severed, it leaves
// its parent's reference list, and its children become roots.
func (s *Store) RemovePublication(id types.PublicationID) bool {
	p, ok := s.publications[id]
	if !ok {
		return false
	}

	unlinked := s.unlinkPublication(p)
	s.detach(p)
	for _, cid := range p.References {
		if child, ok := s.publications[cid]; ok {
			child.Parent = types.NoPublication
		}
	}
	s.publicationOrder = removeAll(s.publicationOrder, id)
	delete(s.publications, id)

	s.metrics.IncrementRemoved(types.KindPublication)
	s.logger.Debug("publication removed", "id", id,
		"unlinked_affiliations", unlinked, "orphaned_references", len(p.References))
	return true
}
