package pig

import (
	"testing"

	"gamesearch/conformance"
	"gamesearch/game"

	"github.com/stretchr/testify/require"
)

func TestChanceNode(t *testing.T) {
	s := New(DefaultTarget)
	require.NoError(t, s.Play(Roll))

	require.True(t, game.IsChance(s), "Rolling should hand the move to chance")
	require.Len(t, s.Moves(), 6)
	weights, err := s.MoveWeights()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 1, 1, 1, 1}, weights)

	for i, face := range s.Moves() {
		d := s.Duplicate()
		require.NoError(t, d.Play(face), "Face %d should be playable", i+1)
		require.False(t, game.IsChance(d), "Resolved roll should be a decision node")
	}
}

func TestPlay(t *testing.T) {
	t.Run("rolling a one loses the turn", func(t *testing.T) {
		s := New(DefaultTarget)
		require.NoError(t, s.Play(Roll))
		require.NoError(t, s.Play(Face(4)))
		require.NoError(t, s.Play(Roll))
		require.NoError(t, s.Play(Face(1)))

		require.Equal(t, game.Player(1), s.CurrentPlayer())
		require.Equal(t, 0, s.TurnTotal())
		require.Equal(t, 0, s.Banked(0))
	})

	t.Run("holding banks the turn total", func(t *testing.T) {
		s := New(DefaultTarget)
		require.NoError(t, s.Play(Roll))
		require.NoError(t, s.Play(Face(5)))
		require.Equal(t, []game.Move{Roll, Hold}, s.Moves())
		require.NoError(t, s.Play(Hold))

		require.Equal(t, 5, s.Banked(0))
		require.Equal(t, game.Player(1), s.CurrentPlayer())
		require.Equal(t, []game.Move{Roll}, s.Moves(), "Nothing to hold at the start of a turn")
	})

	t.Run("reaching the target wins", func(t *testing.T) {
		s := New(10)
		for _, m := range []game.Move{Roll, Face(6), Roll, Face(6), Hold} {
			require.NoError(t, s.Play(m))
		}

		require.True(t, s.GameOver())
		score, err := s.Score()
		require.NoError(t, err)
		require.Equal(t, game.Score{1, 0}, score)
		require.ErrorIs(t, s.Play(Roll), game.ErrGameOver)
	})

	t.Run("rejecting contract violations", func(t *testing.T) {
		s := New(DefaultTarget)
		require.ErrorIs(t, s.Play(Hold), game.ErrIllegalMove, "Cannot hold an empty turn")
		require.ErrorIs(t, s.Play(Face(3)), game.ErrIllegalMove, "Faces are only legal while rolling")
		_, err := s.MoveWeights()
		require.ErrorIs(t, err, game.ErrNotChance)
		_, err = s.Score()
		require.ErrorIs(t, err, game.ErrNotTerminal)

		require.NoError(t, s.Play(Roll))
		require.ErrorIs(t, s.Play(Face(7)), game.ErrIllegalMove)
		require.ErrorIs(t, s.Play(Hold), game.ErrIllegalMove)
	})
}

func TestConformance(t *testing.T) {
	require.NoError(t, conformance.Run(New(DefaultTarget), conformance.WithPlayouts(30), conformance.WithMaxDepth(5000)))
}
