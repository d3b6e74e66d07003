package searcher

import (
	"math"

	"gamesearch/game"
	"gamesearch/utils"
)

// DefaultExploration is the UCT exploration constant c, sqrt(2).
var DefaultExploration = math.Sqrt2

type uct struct {
	numerator float64
}

// newUCT prepares the exploration term for a parent with N visits.
func newUCT(exploration float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: exploration * exploration * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// MoveStat summarises the subtree of one root move.
type MoveStat struct {
	Move   game.Move
	Visits int
	Mean   float64 // Mean reward of the player to move at the root
}

// Policy lists the expanded root moves in the order the state offered them.
type Policy []MoveStat

// MostVisited returns the move with the most visits, the earliest one on ties.
func (p Policy) MostVisited() (game.Move, bool) {
	best := utils.ArgMax(p.Visits())
	if best < 0 {
		return nil, false
	}
	return p[best].Move, true
}

func (p Policy) Visits() []float64 {
	visits := make([]float64, len(p))
	for i, stat := range p {
		visits[i] = float64(stat.Visits)
	}
	return visits
}
