package game

import (
	"fmt"
	"math"
)

// Tolerance for comparing score sums and bounds.
const Epsilon = 1e-9

// Score holds one component per player in [0, 1]. For a decided game the
// components sum to 1: [1, 0] is a win for player 0, [0.5, 0.5] a draw.
type Score []float64

// Win returns the score of a game won by winner.
func Win(players int, winner Player) Score {
	s := make(Score, players)
	s[winner] = 1
	return s
}

// Draw splits the point evenly between all players.
func Draw(players int) Score {
	return Uniform(players)
}

// Uniform returns 1/players for every player.
func Uniform(players int) Score {
	s := make(Score, players)
	for i := range s {
		s[i] = 1 / float64(players)
	}
	return s
}

// Filled returns a vector of the given length with every component set to v.
func Filled(players int, v float64) Score {
	s := make(Score, players)
	for i := range s {
		s[i] = v
	}
	return s
}

func (s Score) Clone() Score {
	out := make(Score, len(s))
	copy(out, s)
	return out
}

// Validate checks the length, component range and sum of a final score.
func (s Score) Validate(players int) error {
	if len(s) != players {
		return fmt.Errorf("score has %d components for %d players: %w", len(s), players, ErrBadScore)
	}
	sum := 0.0
	for i, v := range s {
		if math.IsNaN(v) || v < -Epsilon || v > 1+Epsilon {
			return fmt.Errorf("score[%d]=%v outside [0, 1]: %w", i, v, ErrBadScore)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("score sums to %v: %w", sum, ErrBadScore)
	}
	return nil
}

// Bounds are sound but possibly loose guarantees on the final score.
type Bounds struct {
	Pessimistic Score
	Optimistic  Score
}

// Trivial bounds exclude nothing: all-zero pessimistic, all-one optimistic.
func Trivial(players int) Bounds {
	return Bounds{Pessimistic: Filled(players, 0), Optimistic: Filled(players, 1)}
}

// Exact collapses both bounds onto a known final score.
func Exact(score Score) Bounds {
	return Bounds{Pessimistic: score.Clone(), Optimistic: score.Clone()}
}

// Contains reports whether score lies within the bounds for every player.
func (b Bounds) Contains(score Score) bool {
	if len(score) != len(b.Pessimistic) || len(score) != len(b.Optimistic) {
		return false
	}
	for i, v := range score {
		if v < b.Pessimistic[i]-Epsilon || v > b.Optimistic[i]+Epsilon {
			return false
		}
	}
	return true
}

// Solved reports whether the bounds pin down the final score.
func (b Bounds) Solved() bool {
	for i := range b.Pessimistic {
		if b.Optimistic[i]-b.Pessimistic[i] > Epsilon {
			return false
		}
	}
	return true
}

// Validate checks shapes and that pessimistic <= optimistic componentwise.
func (b Bounds) Validate(players int) error {
	if len(b.Pessimistic) != players || len(b.Optimistic) != players {
		return fmt.Errorf("bounds have %d/%d components for %d players: %w",
			len(b.Pessimistic), len(b.Optimistic), players, ErrBadScore)
	}
	for i := range b.Pessimistic {
		if b.Pessimistic[i] > b.Optimistic[i]+Epsilon {
			return fmt.Errorf("pessimistic[%d]=%v exceeds optimistic[%d]=%v: %w",
				i, b.Pessimistic[i], i, b.Optimistic[i], ErrBadScore)
		}
	}
	return nil
}
