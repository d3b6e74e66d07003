package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestScoreValidate(t *testing.T) {
	t.Run("accepting win and draw", func(t *testing.T) {
		require.NoError(t, Win(2, 0).Validate(2))
		require.NoError(t, Draw(3).Validate(3))
		require.Equal(t, Score{1, 0}, Win(2, 0))
		require.Equal(t, Score{0.5, 0.5}, Draw(2))
	})

	t.Run("rejecting wrong length", func(t *testing.T) {
		err := Score{1}.Validate(2)
		require.ErrorIs(t, err, ErrBadScore)
	})

	t.Run("rejecting component out of range", func(t *testing.T) {
		err := Score{1.5, -0.5}.Validate(2)
		require.ErrorIs(t, err, ErrBadScore)
	})

	t.Run("rejecting sum other than one", func(t *testing.T) {
		err := Score{0.5, 0.2}.Validate(2)
		require.ErrorIs(t, err, ErrBadScore)
	})
}

func TestBounds(t *testing.T) {
	t.Run("trivial bounds contain every score", func(t *testing.T) {
		b := Trivial(2)
		require.True(t, b.Contains(Score{1, 0}))
		require.True(t, b.Contains(Score{0.5, 0.5}))
		require.False(t, b.Solved())
		require.NoError(t, b.Validate(2))
	})

	t.Run("exact bounds only contain their score", func(t *testing.T) {
		b := Exact(Score{0, 1})
		require.True(t, b.Contains(Score{0, 1}))
		require.False(t, b.Contains(Score{1, 0}))
		require.True(t, b.Solved())
	})

	t.Run("crossed bounds are invalid", func(t *testing.T) {
		b := Bounds{Pessimistic: Score{0.6, 0}, Optimistic: Score{0.5, 1}}
		require.ErrorIs(t, b.Validate(2), ErrBadScore)
	})
}

func TestSampleWeights(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	t.Run("never samples zero weights", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			got, err := SampleWeights([]float64{0, 3, 0, 1}, r)
			require.NoError(t, err)
			require.Contains(t, []int{1, 3}, got)
		}
	})

	t.Run("follows relative weights", func(t *testing.T) {
		counts := make([]int, 2)
		for i := 0; i < 4000; i++ {
			got, err := SampleWeights([]float64{1, 3}, r)
			require.NoError(t, err)
			counts[got]++
		}
		require.InDelta(t, 0.75, float64(counts[1])/4000, 0.05)
	})

	t.Run("rejecting all-zero weights", func(t *testing.T) {
		_, err := SampleWeights([]float64{0, 0}, r)
		require.True(t, errors.Is(err, ErrBadWeights))
	})

	t.Run("rejecting negative weights", func(t *testing.T) {
		_, err := SampleWeights([]float64{1, -1}, r)
		require.ErrorIs(t, err, ErrBadWeights)
	})
}
