// Package searcher implements tree-parallel Monte Carlo tree search over any
// game.State. Workers share one tree guarded by per-node locks and use
// virtual loss to spread out; each episode plays on its own duplicate of the
// root state.
package searcher

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"gamesearch/experiments/metrics"
	"gamesearch/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(mcts *MCTS)

// MCTS runs one search at a time; agents own their MCTS.
type MCTS struct {
	goroutines  int
	duration    time.Duration
	episodes    int
	cutoff      int
	evaluate    game.Evaluate
	exploration float64
	pruning     bool
	seed        uint64
	metrics     metrics.Collector
}

// WithDuration limits each search by wall time.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithEpisodes limits each search to a number of episodes.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff stops rollouts after depth moves and scores them with the
// evaluation function instead.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

// WithBounds skips children that the state's bounds prove worse than a sibling.
func WithBounds() Option {
	return func(m *MCTS) {
		m.pruning = true
	}
}

// WithSeed makes single-goroutine searches reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	if goroutines <= 0 {
		panic("Must use at least one goroutine")
	}
	m := &MCTS{ // Default values
		goroutines:  goroutines,
		evaluate:    game.EvaluateBounds,
		exploration: DefaultExploration,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	if m.seed == 0 {
		m.seed = uint64(time.Now().UnixNano())
	}
	return m
}

// Simulate searches a fresh tree rooted at a duplicate of state, which must be
// a non-terminal decision state, and returns the statistics of the root moves.
// The search stops after the configured episodes, the configured duration or
// the cancellation of ctx, whichever comes first. A state that breaks the
// game.State contract aborts the search with an error.
func (m *MCTS) Simulate(ctx context.Context, state game.State) (Policy, metrics.SearchMetric, error) {
	if state.GameOver() || game.IsChance(state) {
		return nil, metrics.SearchMetric{}, fmt.Errorf("search needs a player to move, got player %d (game over %t)",
			state.CurrentPlayer(), state.GameOver())
	}

	s := &search{exploration: m.exploration, pruning: m.pruning, metrics: m.metrics}
	m.metrics.Start(m.goroutines, m.cutoff)
	root, err := newDecision(nil, state, s)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	m.metrics.AddNode()

	if m.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.duration)
		defer cancel()
	}
	err = m.run(ctx, s, root, state)
	metric := m.metrics.Complete()
	if err != nil {
		log.Warn().Err(err).Msgf("search aborted after %d episodes", metric.Episodes)
		return nil, metric, err
	}
	return root.policy(), metric, nil
}

func (m *MCTS) run(ctx context.Context, s *search, root *decision, state game.State) error {
	var remaining atomic.Int64
	remaining.Store(int64(m.episodes))

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < m.goroutines; i++ {
		rng := rand.New(rand.NewSource(m.seed + uint64(i)))
		// Workers never share a state, not even for reading.
		local := state.Duplicate()
		g.Go(func() error {
			for ctx.Err() == nil {
				if m.episodes > 0 && remaining.Add(-1) < 0 {
					return nil
				}
				if err := m.simulate(s, root, local.Duplicate(), rng); err != nil {
					return err
				}
				m.metrics.AddEpisode()
			}
			return nil
		})
	}
	return g.Wait()
}

// simulate runs one episode on state, a private duplicate of the root state.
func (m *MCTS) simulate(s *search, root Node, state game.State, rng *rand.Rand) error {
	node, err := selectThenExpand(s, root, state, rng)
	if err != nil {
		return err
	}
	score, err := m.rollout(state, rng)
	if err != nil {
		return err
	}
	backup(node, score)
	return nil
}

func selectThenExpand(s *search, root Node, state game.State, rng *rand.Rand) (Node, error) {
	parent := root
	child, selected, err := parent.SelectOrExpand(s, state, rng)
	for err == nil && selected && child != parent {
		parent = child
		child, selected, err = parent.SelectOrExpand(s, state, rng)
	}
	return child, err
}

// rollout plays uniformly random decisions and weighted chance outcomes until
// the game ends or the cutoff is reached.
func (m *MCTS) rollout(state game.State, rng *rand.Rand) (game.Score, error) {
	players := state.Players()
	for depth := 0; !state.GameOver(); depth++ {
		moves := state.Moves()
		if len(moves) == 0 || (m.cutoff > 0 && depth >= m.cutoff) {
			score := m.evaluate(state)
			if err := score.Validate(players); err != nil {
				return nil, fmt.Errorf("evaluating cut-off state: %w", err)
			}
			return score, nil
		}

		var ith int
		if game.IsChance(state) {
			var err error
			if ith, err = game.Sample(state, rng); err != nil {
				return nil, err
			}
		} else {
			ith = rng.Intn(len(moves))
		}
		if err := state.Play(moves[ith]); err != nil {
			return nil, fmt.Errorf("rollout move %v: %w", moves[ith], err)
		}
	}

	m.metrics.AddFullPlayout()
	score, err := state.Score()
	if err != nil {
		return nil, err
	}
	if err := score.Validate(players); err != nil {
		return nil, err
	}
	return score, nil
}

func backup(node Node, score game.Score) {
	for node != nil {
		node = node.Backup(score)
	}
}
