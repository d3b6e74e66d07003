package searcher

import (
	"fmt"
	"math"
	"sync"

	"gamesearch/game"

	"golang.org/x/exp/rand"
)

// decision is a node where a player picks the move. Moves are expanded in the
// order the state lists them, then children are selected by UCT on the mean
// reward of the acting player.
type decision struct {
	sync.RWMutex
	stats
	parent   Node
	player   game.Player
	moves    []game.Move
	children []Node // children[i] follows moves[i]
	bounds   game.Bounds
}

func newDecision(parent Node, state game.State, s *search) (*decision, error) {
	bounds, err := nodeBoundsOf(state, s)
	if err != nil {
		return nil, err
	}
	d := &decision{
		stats:  newStats(state.Players()),
		parent: parent,
		player: state.CurrentPlayer(),
		bounds: bounds,
	}
	if !state.GameOver() {
		d.moves = state.Moves()
		d.children = make([]Node, 0, len(d.moves))
	}
	return d, nil
}

func (d *decision) SelectOrExpand(s *search, state game.State, rng *rand.Rand) (Node, bool, error) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, false, nil
	}

	if len(d.moves) > len(d.children) { // Expandable node
		move := d.moves[len(d.children)]
		if err := state.Play(move); err != nil {
			return nil, false, fmt.Errorf("expanding %v: %w", move, err)
		}
		child, err := newNode(d, state, s)
		if err != nil {
			return nil, false, err
		}
		d.children = append(d.children, child)
		child.applyLoss()
		return child, false, nil
	}

	// Fully expanded node
	ith := d.pickChild(s)
	if err := state.Play(d.moves[ith]); err != nil {
		return nil, false, fmt.Errorf("selecting %v: %w", d.moves[ith], err)
	}
	child := d.children[ith]
	child.applyLoss()
	return child, true, nil
}

// pickChild returns the child with the highest UCT value for the acting
// player. With pruning, children whose optimistic bound is below the best
// pessimistic bound among their siblings are skipped.
func (d *decision) pickChild(s *search) int {
	floor := math.Inf(-1)
	if s.pruning {
		for _, child := range d.children {
			floor = max(floor, child.nodeBounds().Pessimistic[d.player])
		}
	}

	N := 0.0
	for _, child := range d.children {
		_, n := child.value(d.player)
		N += n
	}
	policy := newUCT(s.exploration, N)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		if s.pruning && child.nodeBounds().Optimistic[d.player]+game.Epsilon < floor {
			s.metrics.AddPruned()
			continue
		}
		q, n := child.value(d.player)
		if score := policy.evaluate(q, n); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.stats.applyLoss()
}

func (d *decision) Backup(score game.Score) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}
	d.add(score)
	return d.parent
}

func (d *decision) value(player game.Player) (float64, float64) {
	d.RLock()
	defer d.RUnlock()

	return d.stats.value(player)
}

// nodeBounds never changes after construction.
func (d *decision) nodeBounds() game.Bounds {
	return d.bounds
}

func (d *decision) policy() Policy {
	d.RLock()
	defer d.RUnlock()

	policy := make(Policy, len(d.children))
	for i, child := range d.children {
		q, n := child.value(d.player)
		policy[i] = MoveStat{Move: d.moves[i], Visits: int(n), Mean: q / n}
	}
	return policy
}
