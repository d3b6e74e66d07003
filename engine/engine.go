// Package engine plays games between agents.
package engine

import (
	"context"

	"gamesearch/experiments/metrics"
	"gamesearch/game"
)

const MaxMoves = 10000

type Engine interface {
	// Run plays the game till it ends or a max number of moves is reached
	Run(ctx context.Context) (game.Score, metrics.GameMetric, []metrics.MoveMetric, error)
}
