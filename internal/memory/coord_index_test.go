package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/scholar/pkg/types"
)

func TestCoordIndex(t *testing.T) {
	ci := make(coordIndex)
	xy := types.Coord{X: 4, Y: -2}

	assert.Equal(t, types.NoAffiliation, ci.find(xy))

	ci.add(xy, "a")
	ci.add(xy, "b")
	ci.add(types.Coord{X: 0, Y: 0}, "c")
	assert.Equal(t, types.AffiliationID("a"), ci.find(xy))

	ci.remove(xy, "a")
	assert.Equal(t, types.AffiliationID("b"), ci.find(xy))

	ci.remove(xy, "missing")
	ci.remove(types.Coord{X: 9, Y: 9}, "b")
	assert.Equal(t, types.AffiliationID("b"), ci.find(xy))

	ci.remove(xy, "b")
	assert.Equal(t, types.NoAffiliation, ci.find(xy))
	assert.NotContains(t, ci, xy, "empty buckets are dropped")
	assert.Len(t, ci, 1)
}
