package searcher

import (
	"fmt"
	"sync"

	"gamesearch/game"

	"golang.org/x/exp/rand"
)

// chance is a node where randomness picks the move. Outcomes are sampled by
// weight; a child is created the first time its outcome comes up.
type chance struct {
	sync.RWMutex
	stats
	parent   Node
	moves    []game.Move
	weights  []float64
	children []Node // nil until the outcome is first sampled
	bounds   game.Bounds
}

func newChance(parent Node, state game.State, s *search) (*chance, error) {
	moves := state.Moves()
	weights, err := game.WeightsOf(state)
	if err != nil {
		return nil, fmt.Errorf("weighing chance node: %w", err)
	}
	if len(weights) != len(moves) {
		return nil, fmt.Errorf("%d weights for %d moves: %w", len(weights), len(moves), game.ErrBadWeights)
	}
	bounds, err := nodeBoundsOf(state, s)
	if err != nil {
		return nil, err
	}
	return &chance{
		stats:    newStats(state.Players()),
		parent:   parent,
		moves:    moves,
		weights:  weights,
		children: make([]Node, len(moves)),
		bounds:   bounds,
	}, nil
}

func (c *chance) SelectOrExpand(s *search, state game.State, rng *rand.Rand) (Node, bool, error) {
	c.Lock()
	defer c.Unlock()

	if len(c.moves) == 0 { // Stuck node
		return c, false, nil
	}

	ith, err := game.SampleWeights(c.weights, rng)
	if err != nil {
		return nil, false, err
	}
	if err := state.Play(c.moves[ith]); err != nil {
		return nil, false, fmt.Errorf("sampling %v: %w", c.moves[ith], err)
	}

	// Select if explored outcome
	if child := c.children[ith]; child != nil {
		child.applyLoss()
		return child, true, nil
	}

	// Expand if unexplored outcome
	child, err := newNode(c, state, s)
	if err != nil {
		return nil, false, err
	}
	c.children[ith] = child
	child.applyLoss()
	return child, false, nil
}

func (c *chance) applyLoss() {
	c.Lock()
	defer c.Unlock()

	c.stats.applyLoss()
}

func (c *chance) Backup(score game.Score) Node {
	c.Lock()
	defer c.Unlock()

	if c.parent != nil {
		c.reverseLoss()
	}
	c.add(score)
	return c.parent
}

func (c *chance) value(player game.Player) (float64, float64) {
	c.RLock()
	defer c.RUnlock()

	return c.stats.value(player)
}

func (c *chance) nodeBounds() game.Bounds {
	return c.bounds
}
