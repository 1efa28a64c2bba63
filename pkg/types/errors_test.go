package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotImplementedError(t *testing.T) {
	err := error(&NotImplementedError{Op: "AffiliationsClosestTo"})

	assert.Equal(t, "AffiliationsClosestTo not implemented", err.Error())
	assert.ErrorIs(t, err, ErrNotImplemented)

	wrapped := fmt.Errorf("query: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotImplemented)

	var nie *NotImplementedError
	require.True(t, errors.As(wrapped, &nie))
	assert.Equal(t, "AffiliationsClosestTo", nie.Op)
}

func TestNotImplementedErrorWithoutOp(t *testing.T) {
	err := &NotImplementedError{}
	assert.Equal(t, "not implemented", err.Error())
}

func TestPublicationClone(t *testing.T) {
	p := &Publication{
		ID:           1,
		Name:         "P1",
		Affiliations: []AffiliationID{"A1"},
		References:   []PublicationID{2},
		Parent:       NoPublication,
	}
	cp := p.Clone()
	cp.Affiliations[0] = "changed"
	cp.References[0] = 9

	assert.Equal(t, AffiliationID("A1"), p.Affiliations[0])
	assert.Equal(t, PublicationID(2), p.References[0])
	assert.False(t, cp.HasParent())
}

func TestAffiliationClone(t *testing.T) {
	a := &Affiliation{ID: "A1", Publications: []PublicationID{1, 2}}
	cp := a.Clone()
	cp.Publications[0] = 7

	assert.Equal(t, PublicationID(1), a.Publications[0])
}
