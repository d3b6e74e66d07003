// Package game defines the contract a game implementation satisfies to be
// searchable by a generic Monte Carlo Tree Search.
//
// A State is mutated in place by Play and isolated from other states by
// Duplicate. Searchers duplicate once per episode and play along the path.
package game

import (
	"fmt"
	"io"
)

// Player indexes the entity acting in a state, in [0, Players()).
type Player int

// Chance is reported by CurrentPlayer when randomness acts (e.g. a dice roll).
const Chance Player = -1

// Move is an opaque token for one legal transition. It is only valid against
// the state that produced it, or an exact duplicate of that state.
type Move interface{}

// State is one fully determined position of an N-player game.
type State interface {
	// Duplicate returns a copy that shares no mutable substructure with the
	// receiver. Immutable data (maps, rule tables) may be shared.
	Duplicate() State
	// Moves returns every legal move of the acting entity, in a stable order
	// for an unmodified state. Terminal states return no moves.
	Moves() []Move
	// Play applies a move obtained from Moves on this state (or an exact
	// duplicate). It is the only mutator. A foreign move or a terminal state
	// is a contract violation and yields ErrIllegalMove or ErrGameOver
	// without mutating the state.
	Play(move Move) error
	GameOver() bool
	CurrentPlayer() Player
	// Players is fixed for every state derived from the same game.
	Players() int
	// Score is defined on terminal states only, ErrNotTerminal otherwise.
	Score() (Score, error)
	fmt.Stringer
}

// Bounded is implemented by states that can bound the final score from the
// current position: Pessimistic[i] <= final[i] <= Optimistic[i] for every
// reachable terminal outcome.
type Bounded interface {
	PessimisticBounds() Score
	OptimisticBounds() Score
}

// Stochastic is implemented by games with chance nodes. MoveWeights is aligned
// index for index with Moves of the same snapshot and fails with ErrNotChance
// on decision states.
type Stochastic interface {
	MoveWeights() ([]float64, error)
}

// IsChance reports whether randomness acts in s.
func IsChance(s State) bool {
	return s.CurrentPlayer() == Chance
}

// BoundsOf returns the bounds of s. States without the Bounded capability get
// the trivial bounds and ok is false.
func BoundsOf(s State) (bounds Bounds, ok bool) {
	b, ok := s.(Bounded)
	if !ok {
		return Trivial(s.Players()), false
	}
	return Bounds{Pessimistic: b.PessimisticBounds(), Optimistic: b.OptimisticBounds()}, true
}

// WeightsOf returns the move weights of a chance state. States without the
// Stochastic capability weigh their moves uniformly.
func WeightsOf(s State) ([]float64, error) {
	if !IsChance(s) {
		return nil, fmt.Errorf("weights requested for player %d: %w", s.CurrentPlayer(), ErrNotChance)
	}
	if st, ok := s.(Stochastic); ok {
		return st.MoveWeights()
	}
	weights := make([]float64, len(s.Moves()))
	for i := range weights {
		weights[i] = 1
	}
	return weights, nil
}

// Print writes the diagnostic dump of s to w.
func Print(w io.Writer, s State) {
	fmt.Fprintf(w, "%s\n", s)
}
