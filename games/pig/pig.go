// Package pig implements the two-player dice game Pig on the game.State
// contract. Every roll is a chance node with six equally weighted faces.
package pig

import (
	"fmt"

	"gamesearch/game"
)

const (
	DefaultTarget = 20
	Faces         = 6
)

// Action is a decision of the player to move.
type Action int

const (
	Roll Action = iota
	Hold
)

func (a Action) String() string {
	if a == Hold {
		return "hold"
	}
	return "roll"
}

// Face is the outcome of a roll, 1..6.
type Face int

func (f Face) String() string {
	return fmt.Sprintf("face %d", int(f))
}

// State is a Pig position. Banked totals live in a fixed-size array so
// Duplicate is a plain value copy.
type State struct {
	target  int
	banked  [2]int
	turn    int // Points accumulated this turn, lost on a 1
	player  game.Player
	rolling bool // The dice are in the air: chance acts
	winner  game.Player
}

// New starts a game to the given target with player 0 to move.
func New(target int) *State {
	if target <= 0 {
		panic("target must be positive")
	}
	return &State{target: target, winner: -1}
}

func (s *State) Duplicate() game.State {
	c := *s
	return &c
}

func (s *State) Moves() []game.Move {
	switch {
	case s.GameOver():
		return nil
	case s.rolling:
		moves := make([]game.Move, Faces)
		for i := range moves {
			moves[i] = Face(i + 1)
		}
		return moves
	case s.turn > 0:
		return []game.Move{Roll, Hold}
	default:
		return []game.Move{Roll}
	}
}

func (s *State) Play(move game.Move) error {
	if s.GameOver() {
		return fmt.Errorf("pig: %w", game.ErrGameOver)
	}
	if s.rolling {
		face, ok := move.(Face)
		if !ok || face < 1 || face > Faces {
			return fmt.Errorf("pig: expected a die face, got %v: %w", move, game.ErrIllegalMove)
		}
		s.resolve(int(face))
		return nil
	}

	action, ok := move.(Action)
	if !ok || (action != Roll && action != Hold) {
		return fmt.Errorf("pig: expected roll or hold, got %v: %w", move, game.ErrIllegalMove)
	}
	if action == Hold {
		if s.turn == 0 {
			return fmt.Errorf("pig: hold with an empty turn: %w", game.ErrIllegalMove)
		}
		s.hold()
		return nil
	}
	s.rolling = true
	return nil
}

func (s *State) resolve(face int) {
	s.rolling = false
	if face == 1 {
		s.turn = 0
		s.player = 1 - s.player
		return
	}
	s.turn += face
}

func (s *State) hold() {
	s.banked[s.player] += s.turn
	s.turn = 0
	if s.banked[s.player] >= s.target {
		s.winner = s.player
		return
	}
	s.player = 1 - s.player
}

func (s *State) GameOver() bool {
	return s.winner >= 0
}

func (s *State) CurrentPlayer() game.Player {
	if s.rolling {
		return game.Chance
	}
	return s.player
}

func (s *State) Players() int {
	return 2
}

func (s *State) Score() (game.Score, error) {
	if !s.GameOver() {
		return nil, fmt.Errorf("pig: %w", game.ErrNotTerminal)
	}
	return game.Win(2, s.winner), nil
}

func (s *State) MoveWeights() ([]float64, error) {
	if !s.rolling || s.GameOver() {
		return nil, fmt.Errorf("pig: player %d is deciding: %w", s.player, game.ErrNotChance)
	}
	return []float64{1, 1, 1, 1, 1, 1}, nil
}

func (s *State) PessimisticBounds() game.Score {
	if s.GameOver() {
		return game.Win(2, s.winner)
	}
	return game.Filled(2, 0)
}

func (s *State) OptimisticBounds() game.Score {
	if s.GameOver() {
		return game.Win(2, s.winner)
	}
	return game.Filled(2, 1)
}

// Banked returns the points player has secured.
func (s *State) Banked(player game.Player) int {
	return s.banked[player]
}

// TurnTotal returns the points at risk in the current turn.
func (s *State) TurnTotal() int {
	return s.turn
}

func (s *State) String() string {
	status := fmt.Sprintf("player %d deciding", s.player)
	switch {
	case s.GameOver():
		status = fmt.Sprintf("player %d won", s.winner)
	case s.rolling:
		status = fmt.Sprintf("player %d rolling", s.player)
	}
	return fmt.Sprintf("pig to %d: banked %d-%d, turn %d, %s",
		s.target, s.banked[0], s.banked[1], s.turn, status)
}
