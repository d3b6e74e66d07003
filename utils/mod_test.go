package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b", "b"}, "b"))
	require.Equal(t, -1, FindIndex([]int{1, 2}, 3))
	require.True(t, Contains([]int{4, 5}, 5))
	require.False(t, Contains(nil, 5))
}

func TestArgMax(t *testing.T) {
	require.Equal(t, -1, ArgMax([]int{}))
	require.Equal(t, 1, ArgMax([]float64{0.2, 0.7, 0.7}), "First maximum wins ties")
	require.Equal(t, 6, Sum([]int{1, 2, 3}))
}
