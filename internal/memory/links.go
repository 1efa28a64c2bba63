// This file implements the relationship layer: the affiliation/publication
// link lists and the parent/child edges of the reference forest. Both sides
// of every relationship are updated here and nowhere else.
package memory

import (
	"slices"

	"github.com/mesh-intelligence/scholar/pkg/types"
)

// AddAffiliationToPublication links an affiliation and a publication.
// Repeated calls add repeated entries on both sides.
func (s *Store) AddAffiliationToPublication(affiliationID types.AffiliationID, publicationID types.PublicationID) bool {
	p, ok := s.publications[publicationID]
	if !ok {
		return false
	}
	a, ok := s.affiliations[affiliationID]
	if !ok {
		return false
	}
	s.link(a, p)
	return true
}

// AffiliationPublications returns the publications linked to id in link
// list order.
func (s *Store) AffiliationPublications(id types.AffiliationID) []types.PublicationID {
	a, ok := s.affiliations[id]
	if !ok {
		return []types.PublicationID{types.NoPublication}
	}
	return nonNil(slices.Clone(a.Publications))
}

// AddReference makes id a child of parentID. A previous parent loses id
// from its reference list. Edges that would close a cycle are refused.
func (s *Store) AddReference(id, parentID types.PublicationID) bool {
	child, ok := s.publications[id]
	if !ok {
		return false
	}
	parent, ok := s.publications[parentID]
	if !ok {
		return false
	}
	if s.descendsFrom(parent, id) {
		s.metrics.IncrementReferenceRejected()
		s.logger.Debug("reference rejected", "id", id, "parent", parentID, "reason", "cycle")
		return false
	}

	s.detach(child)
	parent.References = append(parent.References, id)
	child.Parent = parentID
	return true
}

func (s *Store) link(a *types.Affiliation, p *types.Publication) {
	a.Publications = append(a.Publications, p.ID)
	p.Affiliations = append(p.Affiliations, a.ID)
}

// unlinkAffiliation removes a from the affiliation list of every publication
// it is linked to and returns how many distinct publications were touched.
func (s *Store) unlinkAffiliation(a *types.Affiliation) int {
	touched := 0
	for _, pid := range a.Publications {
		p, ok := s.publications[pid]
		if !ok || !slices.Contains(p.Affiliations, a.ID) {
			continue
		}
		p.Affiliations = removeAll(p.Affiliations, a.ID)
		touched++
	}
	a.Publications = nil
	return touched
}

// unlinkPublication removes p from the publication list of every
// affiliation it is linked to.
func (s *Store) unlinkPublication(p *types.Publication) int {
	touched := 0
	for _, aid := range p.Affiliations {
		a, ok := s.affiliations[aid]
		if !ok || !slices.Contains(a.Publications, p.ID) {
			continue
		}
		a.Publications = removeAll(a.Publications, p.ID)
		touched++
	}
	p.Affiliations = nil
	return touched
}

// detach removes child from its parent's reference list and clears the
// parent pointer.
func (s *Store) detach(child *types.Publication) {
	if !child.HasParent() {
		return
	}
	if parent, ok := s.publications[child.Parent]; ok {
		parent.References = removeAll(parent.References, child.ID)
	}
	child.Parent = types.NoPublication
}

// descendsFrom reports whether p is id or lies below it in the forest.
func (s *Store) descendsFrom(p *types.Publication, id types.PublicationID) bool {
	for cur := p; ; {
		if cur.ID == id {
			return true
		}
		next, ok := s.publications[cur.Parent]
		if !ok {
			return false
		}
		cur = next
	}
}
