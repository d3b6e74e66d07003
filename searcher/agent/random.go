package agent

import (
	"context"
	"fmt"

	"gamesearch/experiments/metrics"
	"gamesearch/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays uniformly random legal moves.
// It serves as the baseline opponent in experiments.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	moves := state.Moves()
	if len(moves) == 0 {
		return nil, metrics.SearchMetric{}, fmt.Errorf("no legal moves for player %d", state.CurrentPlayer())
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
