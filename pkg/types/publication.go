package types

import "math"

// PublicationID identifies a publication. Ids are assigned by the caller.
type PublicationID uint64

// Year is a publication year. Signed so NoYear can be represented.
type Year int

// NoPublication is returned where a publication id was expected but none
// exists, and marks a publication without a parent.
const NoPublication PublicationID = math.MaxUint64

// NoYear is returned as the year of an absent publication.
const NoYear Year = -1

// Publication is a document in the reference forest. References lists the
// publications that cite this one (its children); Parent is the publication
// it was registered under, or NoPublication.
type Publication struct {
	ID           PublicationID   `json:"id"`
	Name         Name            `json:"name"`
	Year         Year            `json:"year"`
	Affiliations []AffiliationID `json:"affiliations"`
	References   []PublicationID `json:"references"`
	Parent       PublicationID   `json:"parent"`
}

// HasParent reports whether the publication is attached to a parent.
func (p *Publication) HasParent() bool {
	return p.Parent != NoPublication
}

// Clone returns a copy that shares no slices with p.
func (p *Publication) Clone() *Publication {
	cp := *p
	cp.Affiliations = append([]AffiliationID(nil), p.Affiliations...)
	cp.References = append([]PublicationID(nil), p.References...)
	return &cp
}

// YearPublication pairs a publication id with its year.
type YearPublication struct {
	Year Year          `json:"year"`
	ID   PublicationID `json:"id"`
}

// NoYearPublication is the single element returned by a year query on an
// absent affiliation.
var NoYearPublication = YearPublication{Year: NoYear, ID: NoPublication}
