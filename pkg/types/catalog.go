package types

// Catalog is the procedural contract of the affiliation/publication store.
// Absence is reported with the sentinel values of this package or a false
// return, never with an error; AffiliationsClosestTo is the only operation
// that returns one.
//
// A Catalog is not safe for concurrent use. Ordered reads update the sort
// caches, so every call, reads included, must be serialized by the caller.
type Catalog interface {
	// AffiliationCount returns the number of live affiliations.
	AffiliationCount() int

	// ClearAll removes every record and index entry and marks both sort
	// caches stale.
	ClearAll()

	// AllAffiliations returns every affiliation id in insertion order.
	AllAffiliations() []AffiliationID

	// HasAffiliation reports whether id is a live affiliation.
	HasAffiliation(id AffiliationID) bool

	// Affiliation returns a copy of the affiliation record, or false when
	// id is absent.
	Affiliation(id AffiliationID) (*Affiliation, bool)

	// AddAffiliation creates an affiliation. Returns false without mutating
	// anything if id already exists.
	AddAffiliation(id AffiliationID, name Name, xy Coord) bool

	// AffiliationName returns NoName when id is absent.
	AffiliationName(id AffiliationID) Name

	// AffiliationCoord returns NoCoord when id is absent.
	AffiliationCoord(id AffiliationID) Coord

	// AffiliationsAlphabetically returns every affiliation id ordered by
	// name. Equal names keep insertion order.
	AffiliationsAlphabetically() []AffiliationID

	// AffiliationsDistanceIncreasing returns every affiliation id ordered by
	// distance from the origin, ties broken by ascending y.
	AffiliationsDistanceIncreasing() []AffiliationID

	// FindAffiliationWithCoord returns the affiliation at exactly xy, or
	// NoAffiliation.
	FindAffiliationWithCoord(xy Coord) AffiliationID

	// ChangeAffiliationCoord moves an affiliation. Returns false if id is
	// absent.
	ChangeAffiliationCoord(id AffiliationID, xy Coord) bool

	// AddPublication creates a publication linked to the given affiliations.
	// Returns false without mutating anything if id exists or any
	// affiliation is absent.
	AddPublication(id PublicationID, name Name, year Year, affiliations []AffiliationID) bool

	// AllPublications returns every publication id in insertion order.
	AllPublications() []PublicationID

	// HasPublication reports whether id is a live publication.
	HasPublication(id PublicationID) bool

	// Publication returns a copy of the publication record, or false when
	// id is absent.
	Publication(id PublicationID) (*Publication, bool)

	// PublicationName returns NoName when id is absent.
	PublicationName(id PublicationID) Name

	// PublicationYear returns NoYear when id is absent.
	PublicationYear(id PublicationID) Year

	// PublicationAffiliations returns []AffiliationID{NoAffiliation} when id
	// is absent.
	PublicationAffiliations(id PublicationID) []AffiliationID

	// AddReference makes id a child of parentID. Returns false if either is
	// absent or the edge would close a cycle.
	AddReference(id, parentID PublicationID) bool

	// DirectReferences returns the publications citing id, or
	// []PublicationID{NoPublication} when id is absent.
	DirectReferences(id PublicationID) []PublicationID

	// AddAffiliationToPublication links an affiliation and a publication.
	// Returns false if either is absent. Repeated calls add repeated links.
	AddAffiliationToPublication(affiliationID AffiliationID, publicationID PublicationID) bool

	// AffiliationPublications returns the publications linked to id, or
	// []PublicationID{NoPublication} when id is absent.
	AffiliationPublications(id AffiliationID) []PublicationID

	// Parent returns NoPublication when id is absent or has no parent; use
	// HasPublication to tell the two apart.
	Parent(id PublicationID) PublicationID

	// PublicationsAfter returns the (year, id) pairs of the affiliation's
	// publications with year >= year, ordered by year then name. Returns
	// []YearPublication{NoYearPublication} when the affiliation is absent.
	PublicationsAfter(affiliationID AffiliationID, year Year) []YearPublication

	// ReferencedByChain returns the ancestors of id, nearest first.
	// Returns []PublicationID{NoPublication} when id is absent.
	ReferencedByChain(id PublicationID) []PublicationID

	// AllReferences returns every transitive child of id, each branch in
	// post-order. Returns []PublicationID{NoPublication} when id is absent.
	AllReferences(id PublicationID) []PublicationID

	// AffiliationsClosestTo is not implemented and always returns an error
	// wrapping ErrNotImplemented.
	AffiliationsClosestTo(xy Coord) ([]AffiliationID, error)

	// RemoveAffiliation deletes an affiliation and its links. Returns false
	// if id is absent.
	RemoveAffiliation(id AffiliationID) bool

	// ClosestCommonParent returns the nearest ancestor shared by id1 and
	// id2, or NoPublication.
	ClosestCommonParent(id1, id2 PublicationID) PublicationID

	// RemovePublication deletes a publication, its links, and its place in
	// the forest; its children become parentless. Returns false if id is
	// absent.
	RemovePublication(id PublicationID) bool
}
