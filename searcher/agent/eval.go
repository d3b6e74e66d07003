package agent

import (
	"context"
	"errors"

	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/searcher"
)

var errNoPolicy = errors.New("search expanded no move")

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	policy, metric, err := a.mcts.Simulate(ctx, state)
	if err != nil {
		return nil, metric, err
	}
	move, ok := policy.MostVisited()
	if !ok {
		return nil, metric, errNoPolicy
	}
	return move, metric, nil
}
