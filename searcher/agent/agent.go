// Package agent turns searches into moves for the engine.
package agent

import (
	"context"

	"gamesearch/experiments/metrics"
	"gamesearch/game"
)

type Agent interface {
	// FindMove returns the move to play in state, a decision state, and the
	// search metrics (if collected).
	FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric, error)
}
