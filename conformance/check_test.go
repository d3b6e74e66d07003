package conformance

import (
	"fmt"
	"testing"

	"gamesearch/game"

	"github.com/stretchr/testify/require"
)

// countdown is a tiny 2-player game: players alternately remove 1 or 2 tokens,
// whoever takes the last token wins. Flags inject contract bugs.
type countdown struct {
	tokens []int // Single element; a slice so duplicates can alias by mistake
	player game.Player

	shallow     bool
	chanceEvery bool
	zeroWeights bool
	badBounds   bool
	scoreEarly  bool
}

func newCountdown(tokens int) *countdown {
	return &countdown{tokens: []int{tokens}}
}

func (c *countdown) Duplicate() game.State {
	d := *c
	if !c.shallow {
		d.tokens = []int{c.tokens[0]}
	}
	return &d
}

func (c *countdown) Moves() []game.Move {
	if c.GameOver() {
		return nil
	}
	if c.tokens[0] == 1 {
		return []game.Move{1}
	}
	return []game.Move{1, 2}
}

func (c *countdown) Play(move game.Move) error {
	if c.GameOver() {
		return game.ErrGameOver
	}
	take, ok := move.(int)
	if !ok || take < 1 || take > c.tokens[0] {
		return game.ErrIllegalMove
	}
	c.tokens[0] -= take
	if c.tokens[0] > 0 {
		c.player = 1 - c.player
	}
	return nil
}

func (c *countdown) GameOver() bool { return c.tokens[0] == 0 }

func (c *countdown) CurrentPlayer() game.Player {
	if c.chanceEvery && !c.GameOver() {
		return game.Chance
	}
	return c.player
}

func (c *countdown) Players() int { return 2 }

func (c *countdown) Score() (game.Score, error) {
	if !c.GameOver() {
		if c.scoreEarly {
			return game.Draw(2), nil
		}
		return nil, game.ErrNotTerminal
	}
	return game.Win(2, c.player), nil
}

func (c *countdown) MoveWeights() ([]float64, error) {
	if !game.IsChance(c) {
		return nil, game.ErrNotChance
	}
	weights := make([]float64, len(c.Moves()))
	if !c.zeroWeights {
		for i := range weights {
			weights[i] = 1
		}
	}
	return weights, nil
}

func (c *countdown) PessimisticBounds() game.Score { return game.Filled(2, 0) }

func (c *countdown) OptimisticBounds() game.Score {
	if c.badBounds {
		return game.Score{0.5, 0.5}
	}
	return game.Filled(2, 1)
}

func (c *countdown) String() string {
	return fmt.Sprintf("%d tokens, player %d", c.tokens[0], c.player)
}

func TestRun(t *testing.T) {
	t.Run("accepting a correct implementation", func(t *testing.T) {
		require.NoError(t, Run(newCountdown(7), WithPlayouts(10)))
	})

	t.Run("accepting a correct stochastic implementation", func(t *testing.T) {
		c := newCountdown(7)
		c.chanceEvery = true
		require.NoError(t, Run(c, WithPlayouts(10)))
	})

	t.Run("never mutating the checked state", func(t *testing.T) {
		c := newCountdown(5)
		require.NoError(t, Run(c, WithPlayouts(5)))
		require.Equal(t, 5, c.tokens[0])
		require.Equal(t, game.Player(0), c.player)
	})

	t.Run("detecting aliased duplicates", func(t *testing.T) {
		c := newCountdown(5)
		c.shallow = true
		err := CheckIsolation(c)
		require.ErrorIs(t, err, ErrViolation)
	})

	t.Run("detecting all-zero chance weights", func(t *testing.T) {
		c := newCountdown(5)
		c.chanceEvery = true
		c.zeroWeights = true
		require.ErrorIs(t, CheckWeights(c), ErrViolation)
	})

	t.Run("detecting scores on non-terminal states", func(t *testing.T) {
		c := newCountdown(5)
		c.scoreEarly = true
		require.ErrorIs(t, CheckTerminal(c), ErrViolation)
	})

	t.Run("detecting unsound bounds", func(t *testing.T) {
		c := newCountdown(4)
		c.badBounds = true
		require.ErrorIs(t, CheckBounds(c, WithPlayouts(5)), ErrViolation)
	})
}

func TestCheckTerminal(t *testing.T) {
	t.Run("terminal state scores and refuses moves", func(t *testing.T) {
		c := newCountdown(1)
		require.NoError(t, c.Play(1))
		require.NoError(t, CheckTerminal(c))
	})
}

func TestCheckPlayerRange(t *testing.T) {
	t.Run("rejecting out of range players", func(t *testing.T) {
		c := newCountdown(3)
		c.player = 2
		require.ErrorIs(t, CheckPlayerRange(c), ErrViolation)
	})

	t.Run("accepting the chance sentinel", func(t *testing.T) {
		c := newCountdown(3)
		c.chanceEvery = true
		require.NoError(t, CheckPlayerRange(c))
	})
}
