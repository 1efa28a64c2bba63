// This file defines the dataset record shapes shared by the loader and the
// exporter.
package memory

import "github.com/mesh-intelligence/scholar/pkg/types"

// recordHeader is decoded first to route a line to its record type.
type recordHeader struct {
	Type string `json:"type"`
}

type affiliationRecord struct {
	Type string              `json:"type"`
	ID   types.AffiliationID `json:"id"`
	Name types.Name          `json:"name"`
	X    *int                `json:"x"`
	Y    *int                `json:"y"`
}

type publicationRecord struct {
	Type         string                `json:"type"`
	ID           *types.PublicationID  `json:"id"`
	Name         types.Name            `json:"name"`
	Year         *types.Year           `json:"year"`
	Affiliations []types.AffiliationID `json:"affiliations"`
}

type referenceRecord struct {
	Type   string               `json:"type"`
	ID     *types.PublicationID `json:"id"`
	Parent *types.PublicationID `json:"parent"`
}

type linkRecord struct {
	Type        string               `json:"type"`
	Affiliation types.AffiliationID  `json:"affiliation"`
	Publication *types.PublicationID `json:"publication"`
}
