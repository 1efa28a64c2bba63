package memory

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/scholar/internal/metrics"
	"github.com/mesh-intelligence/scholar/pkg/types"
)

func TestAddAffiliationToPublication(t *testing.T) {
	s := newStoreWithAffiliations(t, "A1", "A2")
	require.True(t, s.AddPublication(1, "One", 2000, nil))

	require.True(t, s.AddAffiliationToPublication("A2", 1))

	assert.Equal(t, []types.AffiliationID{"A2"}, s.PublicationAffiliations(1))
	assert.Equal(t, []types.PublicationID{1}, s.AffiliationPublications("A2"))
	assert.Empty(t, s.AffiliationPublications("A1"))
}

func TestAddAffiliationToPublicationDuplicates(t *testing.T) {
	s := newStoreWithAffiliations(t, "A1")
	require.True(t, s.AddPublication(1, "One", 2000, []types.AffiliationID{"A1"}))

	require.True(t, s.AddAffiliationToPublication("A1", 1))

	assert.Equal(t, []types.AffiliationID{"A1", "A1"}, s.PublicationAffiliations(1))
	assert.Equal(t, []types.PublicationID{1, 1}, s.AffiliationPublications("A1"))
}

func TestAddAffiliationToPublicationAbsent(t *testing.T) {
	s := newStoreWithAffiliations(t, "A1")
	require.True(t, s.AddPublication(1, "One", 2000, nil))

	assert.False(t, s.AddAffiliationToPublication("ghost", 1))
	assert.False(t, s.AddAffiliationToPublication("A1", 99))
	assert.Empty(t, s.PublicationAffiliations(1))
	assert.Empty(t, s.AffiliationPublications("A1"))
}

func TestAddReference(t *testing.T) {
	s := NewStore()
	for _, id := range []types.PublicationID{1, 2, 3} {
		require.True(t, s.AddPublication(id, "p", 2000, nil))
	}

	require.True(t, s.AddReference(2, 1))
	require.True(t, s.AddReference(3, 1))

	assert.Equal(t, types.PublicationID(1), s.Parent(2))
	assert.Equal(t, types.PublicationID(1), s.Parent(3))
	assert.Equal(t, []types.PublicationID{2, 3}, s.DirectReferences(1))
}

func TestAddReferenceReparentDetaches(t *testing.T) {
	s := NewStore()
	for _, id := range []types.PublicationID{1, 2, 3} {
		require.True(t, s.AddPublication(id, "p", 2000, nil))
	}
	require.True(t, s.AddReference(3, 1))

	require.True(t, s.AddReference(3, 2))

	assert.Equal(t, types.PublicationID(2), s.Parent(3))
	assert.Equal(t, []types.PublicationID{}, s.DirectReferences(1))
	assert.Equal(t, []types.PublicationID{3}, s.DirectReferences(2))
	assert.Equal(t, []types.PublicationID{}, s.AllReferences(1))
}

func TestAddReferenceRejections(t *testing.T) {
	m := metrics.New(nil)
	s := NewStore(WithMetrics(m))
	for _, id := range []types.PublicationID{1, 2, 3} {
		require.True(t, s.AddPublication(id, "p", 2000, nil))
	}
	// 1 <- 2 <- 3
	require.True(t, s.AddReference(2, 1))
	require.True(t, s.AddReference(3, 2))

	tests := []struct {
		name          string
		child, parent types.PublicationID
		cycle         bool
	}{
		{name: "absent child", child: 9, parent: 1},
		{name: "absent parent", child: 1, parent: 9},
		{name: "self reference", child: 2, parent: 2, cycle: true},
		{name: "direct cycle", child: 1, parent: 2, cycle: true},
		{name: "transitive cycle", child: 1, parent: 3, cycle: true},
	}

	rejected := 0.0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, s.AddReference(tt.child, tt.parent))
			if tt.cycle {
				rejected++
			}
			assert.Equal(t, rejected, testutil.ToFloat64(m.ReferencesRejected))
		})
	}

	assert.Equal(t, types.NoPublication, s.Parent(1))
	assert.Equal(t, types.PublicationID(1), s.Parent(2))
	assert.Equal(t, types.PublicationID(2), s.Parent(3))
	assert.Equal(t, []types.PublicationID{3, 2}, s.AllReferences(1))
}
