// This file implements dataset export: the live store written as JSONL in an
// order that Load accepts.
package memory

import (
	"io"

	"github.com/mesh-intelligence/scholar/pkg/types"
)

// Export writes every record of s to w. Affiliations come first, then
// publications with empty affiliation lists, then one reference line per
// child in each parent's reference order, then one link line per link in
// LinkOrder. Loading the output into an empty store rebuilds the same
// records, forest and link lists.
func Export(w io.Writer, s *Store) error {
	return writeJSONL(w, exportRecords(s))
}

// ExportFile writes the dataset to path atomically.
func ExportFile(path string, s *Store) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return Export(w, s)
	})
}

func exportRecords(s *Store) []any {
	links := LinkOrder(s)
	records := make([]any, 0, len(s.affiliationOrder)+2*len(s.publicationOrder)+len(links))

	for _, id := range s.affiliationOrder {
		a := s.affiliations[id]
		x, y := a.Coord.X, a.Coord.Y
		records = append(records, affiliationRecord{
			Type: types.KindAffiliation,
			ID:   a.ID,
			Name: a.Name,
			X:    &x,
			Y:    &y,
		})
	}

	for _, id := range s.publicationOrder {
		p := s.publications[id]
		pid, year := p.ID, p.Year
		records = append(records, publicationRecord{
			Type:         types.KindPublication,
			ID:           &pid,
			Name:         p.Name,
			Year:         &year,
			Affiliations: []types.AffiliationID{},
		})
	}

	for _, id := range s.publicationOrder {
		p := s.publications[id]
		for _, cid := range p.References {
			child, parent := cid, p.ID
			records = append(records, referenceRecord{
				Type:   types.KindReference,
				ID:     &child,
				Parent: &parent,
			})
		}
	}

	for _, l := range links {
		pid := l.Publication
		records = append(records, linkRecord{
			Type:        types.KindLink,
			Affiliation: l.Affiliation,
			Publication: &pid,
		})
	}
	return records
}
