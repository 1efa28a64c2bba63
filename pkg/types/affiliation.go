package types

// AffiliationID identifies an affiliation. Ids are assigned by the caller.
type AffiliationID string

// Name is a display name for an affiliation or publication.
type Name = string

// NoAffiliation is returned where an affiliation id was expected but none
// exists.
const NoAffiliation AffiliationID = "---"

// NoName is returned as the name of an absent record.
const NoName Name = "!NO_NAME!"

// Affiliation is an organization placed on the coordinate plane. The
// Publications list holds one entry per link, so a pair linked twice
// appears twice.
type Affiliation struct {
	ID           AffiliationID   `json:"id"`
	Name         Name            `json:"name"`
	Coord        Coord           `json:"coord"`
	Publications []PublicationID `json:"publications"`
}

// Clone returns a copy that shares no slices with a.
func (a *Affiliation) Clone() *Affiliation {
	cp := *a
	cp.Publications = append([]PublicationID(nil), a.Publications...)
	return &cp
}
