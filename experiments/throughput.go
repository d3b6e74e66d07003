package experiments

import (
	"context"
	"fmt"

	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/utils"

	"github.com/rs/zerolog/log"
)

// Throughput runs one search per MCTS agent from state and reports how many
// episodes each completed per second.
func Throughput(ctx context.Context, gameName string, state game.State, configs []metrics.AgentConfig) ([]metrics.MoveMetric, error) {
	log.Info().Msg("starting throughput experiment...")

	var results []metrics.MoveMetric
	for _, config := range configs {
		if config.Kind == "random" {
			continue
		}
		mcts, err := createMCTS(config, gameName, config.Seed)
		if err != nil {
			return nil, err
		}
		_, metric, err := mcts.Simulate(ctx, state)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", config.ID, err)
		}
		results = append(results, metrics.MoveMetric{Player: int(state.CurrentPlayer()), SearchMetric: metric})

		log.Info().Msgf("agent %d with %d goroutines: %d episodes in %v (%.0f/s)",
			config.ID, metric.Goroutines, metric.Episodes, metric.Duration, float64(metric.Episodes)/metric.Duration.Seconds())
	}

	log.Info().Msgf("completed throughput experiment with %d episodes", totalEpisodes(results))
	return results, nil
}

func totalEpisodes(results []metrics.MoveMetric) int {
	episodes := make([]int, len(results))
	for i, result := range results {
		episodes[i] = result.Episodes
	}
	return utils.Sum(episodes)
}
