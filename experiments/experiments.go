// Package experiments plays matchups between configured agents and stores
// the results.
package experiments

import (
	"context"
	"fmt"

	"gamesearch/config"
	"gamesearch/engine"
	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/searcher"
	"gamesearch/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Run plays cfg.GamesPerMatchup games per matchup and writes the records to
// a new run directory, which it returns. Agents swap seats every game.
func Run(ctx context.Context, cfg *config.Config) (string, error) {
	if _, err := NewGame(cfg.Game); err != nil {
		return "", err
	}

	writer, err := metrics.NewWriter(cfg.Output, cfg.Experiment)
	if err != nil {
		return "", err
	}
	if err := writer.WriteSetup(cfg); err != nil {
		return "", err
	}
	if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msgf("stored agent configs in %s", writer.Dir())

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", cfg.Experiment)

	for mi, matchup := range cfg.Matchups {
		config1, _ := cfg.Agent(matchup[0])
		config2, _ := cfg.Agent(matchup[1])

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(cfg.Matchups), config1, config2)

		for i := 0; i < cfg.GamesPerMatchup; i++ {
			count++
			seats := [2]metrics.AgentConfig{config1, config2}
			if i%2 == 1 {
				seats = [2]metrics.AgentConfig{config2, config1}
			}

			score, gameMetric, moveMetrics, err := runGame(ctx, cfg, seats, cfg.Seed+uint64(count))
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     seats[0].ID,
				Agent2:     seats[1].ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with score %v", mi+1, len(cfg.Matchups), i+1, score)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(cfg.Matchups))
	}

	log.Info().Msgf("completed %s experiment", cfg.Experiment)

	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// runGame plays a single game with seats[i] as player i.
func runGame(ctx context.Context, cfg *config.Config, seats [2]metrics.AgentConfig, seed uint64) (game.Score, metrics.GameMetric, []metrics.MoveMetric, error) {
	state, err := NewGame(cfg.Game)
	if err != nil {
		return nil, metrics.GameMetric{}, nil, err
	}
	agents := make([]agent.Agent, len(seats))
	for i, seat := range seats {
		if agents[i], err = createAgent(seat, cfg.Game, seed); err != nil {
			return nil, metrics.GameMetric{}, nil, err
		}
	}
	e := engine.NewLocal(state, agents, engine.WithMaxMoves(cfg.MaxMoves), engine.WithSeed(seed))
	return e.Run(ctx)
}

func createAgent(config metrics.AgentConfig, gameName string, seed uint64) (agent.Agent, error) {
	if config.Seed != 0 {
		seed = config.Seed
	}
	if config.Kind == "random" {
		return agent.NewRandomAgent(seed), nil
	}
	mcts, err := createMCTS(config, gameName, seed)
	if err != nil {
		return nil, err
	}
	if config.Temperature > 0 {
		return agent.NewTrainingAgent(mcts, config.Temperature, seed), nil
	}
	return agent.NewEvaluationAgent(mcts), nil
}

func createMCTS(config metrics.AgentConfig, gameName string, seed uint64) (*searcher.MCTS, error) {
	evaluate, err := Evaluation(gameName, config.Evaluation)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}
	options := []searcher.Option{searcher.WithEvaluationFn(evaluate), searcher.WithSeed(seed)}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.Pruning {
		options = append(options, searcher.WithBounds())
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...), nil
}
