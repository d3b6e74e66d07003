package searcher

import (
	"fmt"

	"gamesearch/experiments/metrics"
	"gamesearch/game"

	"golang.org/x/exp/rand"
)

// mockNode is a position of a fixed game tree. Leaves are terminal.
type mockNode struct {
	player   game.Player
	children []*mockNode
	weights  []float64 // Chance nodes only
	score    game.Score
	bounds   *game.Bounds
	stuck    bool // Not over despite having no moves
}

func leaf(score ...float64) *mockNode {
	return &mockNode{score: score}
}

func choice(player game.Player, children ...*mockNode) *mockNode {
	return &mockNode{player: player, children: children}
}

// stuckRoll is a chance node that offers no outcome and is not over.
func stuckRoll() *mockNode {
	return &mockNode{player: game.Chance, weights: []float64{}, stuck: true}
}

func roll(weights []float64, children ...*mockNode) *mockNode {
	return &mockNode{player: game.Chance, children: children, weights: weights}
}

// mockState walks a mock tree; moves are child indices.
type mockState struct {
	node    *mockNode
	players int
	played  []game.Move
}

// newMockState counts the players from the score of the first leaf, two
// if it has none.
func newMockState(root *mockNode) *mockState {
	first := root
	for len(first.children) > 0 {
		first = first.children[0]
	}
	players := len(first.score)
	if players == 0 {
		players = 2
	}
	return &mockState{node: root, players: players}
}

func (s *mockState) Duplicate() game.State {
	c := *s
	c.played = append([]game.Move(nil), s.played...)
	return &c
}

func (s *mockState) Moves() []game.Move {
	moves := make([]game.Move, len(s.node.children))
	for i := range moves {
		moves[i] = i
	}
	return moves
}

func (s *mockState) Play(move game.Move) error {
	if s.GameOver() {
		return game.ErrGameOver
	}
	i, ok := move.(int)
	if !ok || i < 0 || i >= len(s.node.children) {
		return fmt.Errorf("move %v: %w", move, game.ErrIllegalMove)
	}
	s.node = s.node.children[i]
	s.played = append(s.played, move)
	return nil
}

func (s *mockState) GameOver() bool {
	return len(s.node.children) == 0 && !s.node.stuck
}

func (s *mockState) CurrentPlayer() game.Player {
	return s.node.player
}

func (s *mockState) Players() int {
	return s.players
}

func (s *mockState) Score() (game.Score, error) {
	if !s.GameOver() {
		return nil, game.ErrNotTerminal
	}
	return s.node.score, nil
}

func (s *mockState) MoveWeights() ([]float64, error) {
	if s.node.player != game.Chance {
		return nil, game.ErrNotChance
	}
	return s.node.weights, nil
}

func (s *mockState) PessimisticBounds() game.Score {
	if s.node.bounds != nil {
		return s.node.bounds.Pessimistic
	}
	return game.Filled(s.players, 0)
}

func (s *mockState) OptimisticBounds() game.Score {
	if s.node.bounds != nil {
		return s.node.bounds.Optimistic
	}
	return game.Filled(s.players, 1)
}

func (s *mockState) String() string {
	return fmt.Sprintf("mock after %v", s.played)
}

func newSearch(pruning bool) *search {
	return &search{exploration: DefaultExploration, pruning: pruning, metrics: metrics.NewCollector()}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// visited returns a node with the given rewards and visits for tests that
// build trees by hand.
func visited(rewards game.Score, visits float64) *decision {
	return &decision{stats: stats{rewards: rewards, visits: visits}, bounds: game.Trivial(len(rewards))}
}
