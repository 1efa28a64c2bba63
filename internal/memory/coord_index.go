package memory

import (
	"slices"

	"github.com/mesh-intelligence/scholar/pkg/types"
)

// coordIndex maps a coordinate to the affiliations placed on it, in the
// order they arrived there. Lookups return the earliest occupant.
type coordIndex map[types.Coord][]types.AffiliationID

func (ci coordIndex) add(xy types.Coord, id types.AffiliationID) {
	ci[xy] = append(ci[xy], id)
}

func (ci coordIndex) remove(xy types.Coord, id types.AffiliationID) {
	occupants, ok := ci[xy]
	if !ok {
		return
	}
	if i := slices.Index(occupants, id); i >= 0 {
		occupants = slices.Delete(occupants, i, i+1)
	}
	if len(occupants) == 0 {
		delete(ci, xy)
		return
	}
	ci[xy] = occupants
}

func (ci coordIndex) find(xy types.Coord) types.AffiliationID {
	occupants := ci[xy]
	if len(occupants) == 0 {
		return types.NoAffiliation
	}
	return occupants[0]
}
