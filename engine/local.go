package engine

import (
	"context"
	"fmt"
	"time"

	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(l *Local)

// WithMaxMoves stops the game after max moves, chance moves included.
func WithMaxMoves(moves int) Option {
	return func(l *Local) {
		if moves > 0 {
			l.maxMoves = moves
		}
	}
}

// WithSeed seeds the dice the engine rolls for chance nodes.
func WithSeed(seed uint64) Option {
	return func(l *Local) {
		l.rng = rand.New(rand.NewSource(seed))
	}
}

var _ Engine = (*Local)(nil)

// Local plays one game in-process. Agents[i] moves for player i; the engine
// itself resolves chance nodes.
type Local struct {
	state    game.State
	agents   []agent.Agent
	maxMoves int
	rng      *rand.Rand
}

func NewLocal(state game.State, agents []agent.Agent, options ...Option) *Local {
	if len(agents) != state.Players() {
		panic("number of players does not match number of agents")
	}
	l := &Local{
		state:    state.Duplicate(),
		agents:   agents,
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(l)
	}
	if l.rng == nil {
		l.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return l
}

// State returns the current position. It is the final one once Run returns.
func (l *Local) State() game.State {
	return l.state
}

// Run plays until the game ends. A game stopped by the move limit, or stuck
// on a state without moves, scores every player equally.
func (l *Local) Run(ctx context.Context) (game.Score, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(l.state.CurrentPlayer()),
		Winner:         -1,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %d is starting", l.state.CurrentPlayer())
	for step := 1; !l.state.GameOver() && gameMetric.TotalMoves < l.maxMoves; step++ {
		if err := ctx.Err(); err != nil {
			return nil, gameMetric, moveMetrics, err
		}

		moves := l.state.Moves()
		if len(moves) == 0 {
			log.Warn().Msgf("step %d: player %d has no moves", step, l.state.CurrentPlayer())
			break
		}

		var move game.Move
		if game.IsChance(l.state) {
			ith, err := game.Sample(l.state, l.rng)
			if err != nil {
				return nil, gameMetric, moveMetrics, fmt.Errorf("step %d: %w", step, err)
			}
			move = moves[ith]
			gameMetric.ChanceMoves++
		} else {
			player := l.state.CurrentPlayer()
			var searchMetric metrics.SearchMetric
			var err error
			move, searchMetric, err = l.agents[player].FindMove(ctx, l.state)
			if err != nil {
				return nil, gameMetric, moveMetrics, fmt.Errorf("step %d, player %d: %w", step, player, err)
			}
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:         step,
				Player:       int(player),
				SearchMetric: searchMetric,
			})
			log.Debug().Msgf("step %d: player %d plays %v", step, player, move)
		}

		if err := l.state.Play(move); err != nil {
			return nil, gameMetric, moveMetrics, fmt.Errorf("step %d: %w", step, err)
		}
		gameMetric.TotalMoves++
	}

	score := game.Uniform(l.state.Players())
	if l.state.GameOver() {
		var err error
		if score, err = l.state.Score(); err != nil {
			return nil, gameMetric, moveMetrics, err
		}
		gameMetric.Winner = winner(score)
	} else {
		log.Warn().Msgf("stopped after %d moves without a result", gameMetric.TotalMoves)
	}

	gameMetric.Score = score
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	log.Info().Msgf("game over after %d moves, score %v", gameMetric.TotalMoves, score)
	return score, gameMetric, moveMetrics, nil
}

// winner returns the player who took the whole score, or -1.
func winner(score game.Score) int {
	for i, v := range score {
		if v >= 1-game.Epsilon {
			return i
		}
	}
	return -1
}
