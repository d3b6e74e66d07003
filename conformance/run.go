package conformance

import (
	"errors"
	"fmt"

	"gamesearch/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	DefaultPlayouts = 20
	DefaultMaxDepth = 500
	// Stop collecting after this many violations; the first few are the useful ones.
	maxViolations = 10
)

type Option func(r *runner)

type runner struct {
	playouts  int
	maxDepth  int
	seed      uint64
	skipState bool
}

func WithPlayouts(playouts int) Option {
	return func(r *runner) {
		if playouts > 0 {
			r.playouts = playouts
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(r *runner) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(r *runner) {
		r.seed = seed
	}
}

func newRunner(options ...Option) *runner {
	r := &runner{
		playouts: DefaultPlayouts,
		maxDepth: DefaultMaxDepth,
		seed:     1,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Run plays seeded random playouts from s (chance moves sampled by weight),
// checking every visited state and the soundness of every visited state's
// bounds against the terminal score reached. s itself is never mutated.
func Run(s game.State, options ...Option) error {
	return newRunner(options...).run(s)
}

// CheckBounds verifies bounds soundness only: for sampled move sequences from
// s to a terminal state t, pessimistic(s') <= score(t) <= optimistic(s') for
// every state s' on the way.
func CheckBounds(s game.State, options ...Option) error {
	r := newRunner(options...)
	r.skipState = true
	return r.run(s)
}

func (r *runner) run(s game.State) error {
	rng := rand.New(rand.NewSource(r.seed))
	var violations []error

	for i := 0; i < r.playouts && len(violations) < maxViolations; i++ {
		if err := r.playout(s, rng); err != nil {
			violations = append(violations, fmt.Errorf("playout %d: %w", i, err))
		}
	}

	log.Debug().Msgf("conformance: %d playouts with %d violations", r.playouts, len(violations))
	return errors.Join(violations...)
}

func (r *runner) playout(root game.State, rng *rand.Rand) error {
	players := root.Players()
	state := root.Duplicate()
	var path []game.Bounds

	for depth := 0; depth < r.maxDepth; depth++ {
		if state.Players() != players {
			return violationf("depth %d: player count changed from %d to %d", depth, players, state.Players())
		}
		if !r.skipState {
			if err := CheckState(state); err != nil {
				return fmt.Errorf("depth %d: %w\n%s", depth, err, state)
			}
		}

		bounds, _ := game.BoundsOf(state)
		if err := bounds.Validate(players); err != nil {
			return violationf("depth %d: %v", depth, err)
		}
		path = append(path, bounds)

		if state.GameOver() {
			score, err := state.Score()
			if err != nil {
				return violationf("depth %d: terminal state failed to score: %v", depth, err)
			}
			for d, b := range path {
				if !b.Contains(score) {
					return violationf("bounds %v..%v at depth %d exclude final score %v reached at depth %d",
						b.Pessimistic, b.Optimistic, d, score, depth)
				}
			}
			return nil
		}

		moves := state.Moves()
		if len(moves) == 0 {
			// Stalemate without score is the caller's concern, not a violation.
			log.Warn().Msgf("conformance: non-terminal state without moves at depth %d", depth)
			return nil
		}

		var ith int
		if game.IsChance(state) {
			var err error
			if ith, err = game.Sample(state, rng); err != nil {
				return violationf("depth %d: sampling chance move: %v", depth, err)
			}
		} else {
			ith = rng.Intn(len(moves))
		}
		if err := state.Play(moves[ith]); err != nil {
			return violationf("depth %d: legal move %v rejected: %v", depth, moves[ith], err)
		}
	}
	return nil
}
