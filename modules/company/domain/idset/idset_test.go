package idset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	require.Equal(t, []int64{}, Normalize(nil))
	require.Equal(t, []int64{1, 2, 5}, Normalize([]int64{5, 1, 2, 5, 1}))

	in := []int64{3, 1}
	_ = Normalize(in)
	require.Equal(t, []int64{3, 1}, in)
}

func TestDifference(t *testing.T) {
	require.Equal(t, []int64{1, 7}, Difference([]int64{7, 3, 1, 3}, []int64{3, 9}))
	require.Equal(t, []int64{}, Difference([]int64{2}, []int64{2}))
	require.Equal(t, []int64{}, Difference(nil, []int64{1}))
}
