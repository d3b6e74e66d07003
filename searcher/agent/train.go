package agent

import (
	"context"
	"math"

	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/searcher"
	"gamesearch/utils"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training. It
// samples moves by visit count sharpened by 1/temperature; a temperature of
// zero always plays the most visited move.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	return &trainingAgent{mcts: mcts, temperature: temperature, rng: rand.New(rand.NewSource(seed))}
}

func (a *trainingAgent) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error) {
	policy, metric, err := a.mcts.Simulate(ctx, state)
	if err != nil {
		return nil, metric, err
	}
	if len(policy) == 0 {
		return nil, metric, errNoPolicy
	}
	if a.temperature <= 0 {
		move, _ := policy.MostVisited()
		return move, metric, nil
	}
	ith, err := game.SampleWeights(adjustTemperature(policy.Visits(), a.temperature), a.rng)
	if err != nil {
		return nil, metric, err
	}
	return policy[ith].Move, metric, nil
}

// adjustTemperature returns move probabilities proportional to visits^(1/temperature).
func adjustTemperature(visits []float64, temperature float64) []float64 {
	// Scale by the max so low temperatures do not overflow
	most := visits[utils.ArgMax(visits)]
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(visits))
	for i, visit := range visits {
		adjusted[i] = math.Pow(visit/most, exponent)
		sum += adjusted[i]
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}
