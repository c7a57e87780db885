package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePreference_NullOrEmptyIsUniverse(t *testing.T) {
	p, err := decodePreference("", false)
	require.NoError(t, err)
	assert.True(t, p.IsUniverse())

	p, err = decodePreference("", true)
	require.NoError(t, err)
	assert.True(t, p.IsUniverse())

	p, err = decodePreference("   ", true)
	require.NoError(t, err)
	assert.True(t, p.IsUniverse())
}

func TestDecodePreference_CollapsesDuplicates(t *testing.T) {
	p, err := decodePreference("1,2,2,1,3", true)
	require.NoError(t, err)
	assert.False(t, p.IsUniverse())
	assert.ElementsMatch(t, []int{1, 2, 3}, p.Sorted([]int{1, 2, 3}))
}

func TestDecodePreference_NonIntegerTokenIsError(t *testing.T) {
	_, err := decodePreference("1,two,3", true)
	require.Error(t, err)
}

func TestPreferenceSet_RestrictToDropsUnknownIDs(t *testing.T) {
	p, err := decodePreference("1,2,99", true)
	require.NoError(t, err)

	restricted := p.restrictTo(map[int]struct{}{1: {}, 2: {}})
	assert.ElementsMatch(t, []int{1, 2}, restricted.Sorted([]int{1, 2}))
}

func TestPreferenceSet_IntersectUniverseIsOtherSide(t *testing.T) {
	only := Only(1, 2)
	assert.Equal(t, only, Universe().Intersect(only))
	assert.Equal(t, only, only.Intersect(Universe()))
}

func TestPreferenceSet_IntersectExplicitSets(t *testing.T) {
	a := Only(1, 2, 3)
	b := Only(2, 3, 4)
	got := a.Intersect(b).Sorted([]int{1, 2, 3, 4})
	assert.Equal(t, []int{2, 3}, got)
}
