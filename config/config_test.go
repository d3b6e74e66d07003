package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gamesearch/engine"
	"gamesearch/experiments/metrics"

	"github.com/stretchr/testify/require"
)

const sample = `
game: pig
experiment: cutoff
output: out
games_per_matchup: 4
seed: 9
agents:
  - id: 1
    kind: mcts
    goroutines: 4
    duration: 10ms
    cutoff: 20
    evaluation: bounds
    pruning: true
  - id: 2
    kind: random
matchups:
  - [1, 2]
  - [2, 1]
`

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("reading a yaml file", func(t *testing.T) {
		cfg, err := Load(write(t, sample))

		require.NoError(t, err)
		require.Equal(t, "pig", cfg.Game)
		require.Equal(t, "cutoff", cfg.Experiment)
		require.Equal(t, 4, cfg.GamesPerMatchup)
		require.Equal(t, uint64(9), cfg.Seed)
		require.Equal(t, [][]int{{1, 2}, {2, 1}}, cfg.Matchups)
		require.Equal(t, metrics.AgentConfig{
			ID:         1,
			Kind:       KindMCTS,
			Goroutines: 4,
			Duration:   10 * time.Millisecond,
			Cutoff:     20,
			Evaluation: "bounds",
			Pruning:    true,
		}, cfg.Agents[0])
	})

	t.Run("filling in defaults", func(t *testing.T) {
		cfg, err := Load(write(t, "agents:\n  - id: 1\n    kind: random\n"))

		require.NoError(t, err)
		require.Equal(t, "tictactoe", cfg.Game)
		require.Equal(t, "results", cfg.Output)
		require.Equal(t, 10, cfg.GamesPerMatchup)
		require.Equal(t, engine.MaxMoves, cfg.MaxMoves)
		require.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("overriding from the environment", func(t *testing.T) {
		t.Setenv("ARENA_GAMES_PER_MATCHUP", "2")
		t.Setenv("ARENA_GAME", "risk")

		cfg, err := Load(write(t, sample))

		require.NoError(t, err)
		require.Equal(t, 2, cfg.GamesPerMatchup)
		require.Equal(t, "risk", cfg.Game)
	})

	t.Run("failing on a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("failing without agents", func(t *testing.T) {
		_, err := Load("")
		require.ErrorContains(t, err, "no agents")
	})
}

func TestValidate(t *testing.T) {
	cfg := Config{
		GamesPerMatchup: 0,
		Agents: []metrics.AgentConfig{
			{ID: 1, Kind: KindMCTS},
			{ID: 1, Kind: "human"},
		},
		Matchups: [][]int{{1, 3}, {1}},
	}

	err := cfg.Validate()

	for _, want := range []string{
		"games_per_matchup",
		"duplicate id",
		"goroutines must be positive",
		"needs episodes or duration",
		`unknown kind "human"`,
		"unknown agent 3",
		"want 2 agents",
	} {
		require.ErrorContains(t, err, want)
	}
}

func TestAgent(t *testing.T) {
	cfg := Config{Agents: []metrics.AgentConfig{{ID: 4, Kind: KindRandom}}}

	got, ok := cfg.Agent(4)
	require.True(t, ok)
	require.Equal(t, KindRandom, got.Kind)

	_, ok = cfg.Agent(5)
	require.False(t, ok)
}
