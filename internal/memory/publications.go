// This file implements the publication side of the store: insertion and the
// per-publication metadata queries.
package memory

import (
	"slices"

	"github.com/mesh-intelligence/scholar/pkg/types"
)

// AllPublications returns every publication id in insertion order.
func (s *Store) AllPublications() []types.PublicationID {
	return nonNil(slices.Clone(s.publicationOrder))
}

// HasPublication reports whether id is a live publication.
func (s *Store) HasPublication(id types.PublicationID) bool {
	_, ok := s.publications[id]
	return ok
}

// Publication returns a copy of the publication record.
func (s *Store) Publication(id types.PublicationID) (*types.Publication, bool) {
	p, ok := s.publications[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// AddPublication creates a parentless publication and links it to every
// listed affiliation. Nothing is created if id exists, id is the
// NoPublication sentinel, or any affiliation is unknown.
func (s *Store) AddPublication(id types.PublicationID, name types.Name, year types.Year, affiliations []types.AffiliationID) bool {
	if id == types.NoPublication {
		return false
	}
	if _, exists := s.publications[id]; exists {
		return false
	}
	for _, aid := range affiliations {
		if _, ok := s.affiliations[aid]; !ok {
			return false
		}
	}

	p := &types.Publication{
		ID:     id,
		Name:   name,
		Year:   year,
		Parent: types.NoPublication,
	}
	s.publications[id] = p
	s.publicationOrder = append(s.publicationOrder, id)
	for _, aid := range affiliations {
		s.link(s.affiliations[aid], p)
	}

	s.metrics.IncrementAdded(types.KindPublication)
	return true
}

// PublicationName returns the name of id, or NoName.
func (s *Store) PublicationName(id types.PublicationID) types.Name {
	p, ok := s.publications[id]
	if !ok {
		return types.NoName
	}
	return p.Name
}

// PublicationYear returns the year of id, or NoYear.
func (s *Store) PublicationYear(id types.PublicationID) types.Year {
	p, ok := s.publications[id]
	if !ok {
		return types.NoYear
	}
	return p.Year
}

// PublicationAffiliations returns the affiliations linked to id.
func (s *Store) PublicationAffiliations(id types.PublicationID) []types.AffiliationID {
	p, ok := s.publications[id]
	if !ok {
		return []types.AffiliationID{types.NoAffiliation}
	}
	return nonNil(slices.Clone(p.Affiliations))
}

// DirectReferences returns the publications that cite id.
func (s *Store) DirectReferences(id types.PublicationID) []types.PublicationID {
	p, ok := s.publications[id]
	if !ok {
		return []types.PublicationID{types.NoPublication}
	}
	return nonNil(slices.Clone(p.References))
}

// Parent returns the parent of id. NoPublication covers both an absent id
// and a parentless one.
func (s *Store) Parent(id types.PublicationID) types.PublicationID {
	p, ok := s.publications[id]
	if !ok {
		return types.NoPublication
	}
	return p.Parent
}
