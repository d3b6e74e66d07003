// Package config loads arena settings from a yaml file and ARENA_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"gamesearch/engine"
	"gamesearch/experiments/metrics"

	"github.com/spf13/viper"
)

const (
	KindMCTS   = "mcts"
	KindRandom = "random"
)

type Config struct {
	Game            string                `mapstructure:"game" json:"game"` // tictactoe, pig, risk or chess
	Experiment      string                `mapstructure:"experiment" json:"experiment"`
	Output          string                `mapstructure:"output" json:"output"`
	GamesPerMatchup int                   `mapstructure:"games_per_matchup" json:"games_per_matchup"`
	MaxMoves        int                   `mapstructure:"max_moves" json:"max_moves"`
	Seed            uint64                `mapstructure:"seed" json:"seed"`
	LogLevel        string                `mapstructure:"log_level" json:"log_level"`
	Agents          []metrics.AgentConfig `mapstructure:"agents" json:"agents"`
	Matchups        [][]int               `mapstructure:"matchups" json:"matchups"` // Pairs of agent IDs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game", "tictactoe")
	v.SetDefault("experiment", "default")
	v.SetDefault("output", "results")
	v.SetDefault("games_per_matchup", 10)
	v.SetDefault("max_moves", engine.MaxMoves)
	v.SetDefault("seed", 1)
	v.SetDefault("log_level", "info")
}

// Load reads the config file at path, if any, applies environment overrides
// such as ARENA_GAMES_PER_MATCHUP and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	if c.GamesPerMatchup <= 0 {
		errs = append(errs, fmt.Errorf("games_per_matchup must be positive, got %d", c.GamesPerMatchup))
	}
	if len(c.Agents) == 0 {
		errs = append(errs, errors.New("no agents configured"))
	}

	ids := make(map[int]bool, len(c.Agents))
	for _, a := range c.Agents {
		if ids[a.ID] {
			errs = append(errs, fmt.Errorf("agent %d: duplicate id", a.ID))
		}
		ids[a.ID] = true

		switch a.Kind {
		case KindRandom:
		case KindMCTS, "":
			if a.Goroutines <= 0 {
				errs = append(errs, fmt.Errorf("agent %d: goroutines must be positive", a.ID))
			}
			if a.Episodes <= 0 && a.Duration <= 0 {
				errs = append(errs, fmt.Errorf("agent %d: needs episodes or duration", a.ID))
			}
		default:
			errs = append(errs, fmt.Errorf("agent %d: unknown kind %q", a.ID, a.Kind))
		}
	}

	for i, m := range c.Matchups {
		if len(m) != 2 {
			errs = append(errs, fmt.Errorf("matchup %d: want 2 agents, got %d", i, len(m)))
			continue
		}
		for _, id := range m {
			if !ids[id] {
				errs = append(errs, fmt.Errorf("matchup %d: unknown agent %d", i, id))
			}
		}
	}
	return errors.Join(errs...)
}

// Agent returns the agent config with the given id.
func (c *Config) Agent(id int) (metrics.AgentConfig, bool) {
	for _, a := range c.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return metrics.AgentConfig{}, false
}
