// Package tictactoe implements 3x3 noughts and crosses on the game.State contract.
package tictactoe

import (
	"fmt"
	"strings"

	"gamesearch/game"
)

const (
	Size  = 3
	Cells = Size * Size
)

// Move is the index of the cell to mark, row-major from the top left.
type Move int

const empty = -1

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // Rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // Columns
	{0, 4, 8}, {2, 4, 6}, // Diagonals
}

// State is a tic-tac-toe position. The board array is copied by value on
// Duplicate so states never alias.
type State struct {
	board  [Cells]game.Player
	player game.Player
	winner game.Player
	filled int
}

// New returns the empty board with player 0 (X) to move.
func New() *State {
	s := &State{player: 0, winner: empty}
	for i := range s.board {
		s.board[i] = empty
	}
	return s
}

func (s *State) Duplicate() game.State {
	c := *s
	return &c
}

func (s *State) Moves() []game.Move {
	if s.GameOver() {
		return nil
	}
	moves := make([]game.Move, 0, Cells-s.filled)
	for i, owner := range s.board {
		if owner == empty {
			moves = append(moves, Move(i))
		}
	}
	return moves
}

func (s *State) Play(move game.Move) error {
	if s.GameOver() {
		return fmt.Errorf("tictactoe: %w", game.ErrGameOver)
	}
	m, ok := move.(Move)
	if !ok {
		return fmt.Errorf("tictactoe: unexpected move type %T: %w", move, game.ErrIllegalMove)
	}
	if m < 0 || int(m) >= Cells || s.board[m] != empty {
		return fmt.Errorf("tictactoe: cell %d: %w", m, game.ErrIllegalMove)
	}

	s.board[m] = s.player
	s.filled++
	if s.completesLine(int(m)) {
		s.winner = s.player
	}
	s.player = 1 - s.player
	return nil
}

func (s *State) completesLine(cell int) bool {
	for _, line := range lines {
		if line[0] != cell && line[1] != cell && line[2] != cell {
			continue
		}
		owner := s.board[line[0]]
		if owner != empty && owner == s.board[line[1]] && owner == s.board[line[2]] {
			return true
		}
	}
	return false
}

func (s *State) GameOver() bool {
	return s.winner != empty || s.filled == Cells
}

func (s *State) CurrentPlayer() game.Player {
	return s.player
}

func (s *State) Players() int {
	return 2
}

func (s *State) Score() (game.Score, error) {
	switch {
	case s.winner != empty:
		return game.Win(2, s.winner), nil
	case s.filled == Cells:
		return game.Draw(2), nil
	default:
		return nil, fmt.Errorf("tictactoe: %d cells left: %w", Cells-s.filled, game.ErrNotTerminal)
	}
}

// canStillWin reports whether player has a line free of opponent marks.
func (s *State) canStillWin(player game.Player) bool {
	for _, line := range lines {
		blocked := false
		for _, cell := range line {
			if owner := s.board[cell]; owner != empty && owner != player {
				blocked = true
				break
			}
		}
		if !blocked {
			return true
		}
	}
	return false
}

func (s *State) bounds() game.Bounds {
	if s.GameOver() {
		score, _ := s.Score()
		return game.Exact(score)
	}

	b := game.Trivial(2)
	for p := game.Player(0); p < 2; p++ {
		if !s.canStillWin(p) {
			b.Optimistic[p] = 0.5
		}
		if !s.canStillWin(1 - p) {
			b.Pessimistic[p] = 0.5
		}
	}
	return b
}

func (s *State) PessimisticBounds() game.Score {
	return s.bounds().Pessimistic
}

func (s *State) OptimisticBounds() game.Score {
	return s.bounds().Optimistic
}

func (s *State) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			switch s.board[row*Size+col] {
			case 0:
				sb.WriteByte('X')
			case 1:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	if s.GameOver() {
		score, _ := s.Score()
		fmt.Fprintf(&sb, "game over %v", score)
	} else {
		fmt.Fprintf(&sb, "player %d to move", s.player)
	}
	return sb.String()
}
