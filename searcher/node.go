package searcher

import (
	"fmt"

	"gamesearch/experiments/metrics"
	"gamesearch/game"

	"golang.org/x/exp/rand"
)

// Node is a position in the search tree. Episodes walk the tree while
// playing moves on their own duplicate of the root state.
type Node interface {
	// SelectOrExpand plays the move leading to the next node on state. selected
	// is false when the child was just added or the node is terminal.
	SelectOrExpand(s *search, state game.State, rng *rand.Rand) (child Node, selected bool, err error)
	Backup(score game.Score) Node
	applyLoss()
	value(player game.Player) (rewards, visits float64)
	nodeBounds() game.Bounds
}

// search holds the settings shared by every node of one tree.
type search struct {
	exploration float64
	pruning     bool
	metrics     metrics.Collector
}

func newNode(parent Node, state game.State, s *search) (Node, error) {
	s.metrics.AddNode()
	if game.IsChance(state) && !state.GameOver() {
		return newChance(parent, state, s)
	}
	return newDecision(parent, state, s)
}

// stats are the rewards and visits of a node, guarded by the node's lock.
// Rewards are summed score vectors so every player's mean is available.
type stats struct {
	rewards game.Score
	visits  float64
}

func newStats(players int) stats {
	return stats{rewards: make(game.Score, players)}
}

// applyLoss adds a visit without reward to steer concurrent episodes elsewhere.
func (st *stats) applyLoss() {
	st.visits++
}

func (st *stats) reverseLoss() {
	st.visits--
}

func (st *stats) add(score game.Score) {
	for i := range st.rewards {
		st.rewards[i] += score[i]
	}
	st.visits++
}

func (st *stats) value(player game.Player) (float64, float64) {
	return st.rewards[player], st.visits
}

func nodeBoundsOf(state game.State, s *search) (game.Bounds, error) {
	if state.GameOver() {
		score, err := state.Score()
		if err != nil {
			return game.Bounds{}, fmt.Errorf("scoring terminal node: %w", err)
		}
		if err := score.Validate(state.Players()); err != nil {
			return game.Bounds{}, err
		}
		return game.Exact(score), nil
	}
	if !s.pruning {
		return game.Trivial(state.Players()), nil
	}
	bounds, _ := game.BoundsOf(state)
	return game.Bounds{Pessimistic: bounds.Pessimistic.Clone(), Optimistic: bounds.Optimistic.Clone()}, nil
}
