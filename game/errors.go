package game

import "errors"

// Contract violations. Producers wrap these with context.
var (
	ErrIllegalMove = errors.New("move is not legal in this state")
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrNotTerminal = errors.New("score requested on a non-terminal state")
	ErrNotChance   = errors.New("move weights requested on a decision state")
	ErrBadScore    = errors.New("malformed score vector")
	ErrBadWeights  = errors.New("malformed move weights")
)
