// Package chess adapts github.com/notnil/chess to the game.State contract.
// White is player 0 and black is player 1. Moves are *chess.Move values.
package chess

import (
	"fmt"

	"gamesearch/game"

	"github.com/notnil/chess"
)

// DefaultMaxPlies bounds random playouts; reaching it is scored as a draw.
const DefaultMaxPlies = 300

type Option func(s *State)

// WithMaxPlies caps the game length. Zero or negative disables the cap.
func WithMaxPlies(plies int) Option {
	return func(s *State) {
		s.maxPlies = plies
	}
}

// State wraps a chess game. The underlying *chess.Game is cloned on Duplicate;
// positions inside it are shared between clones and never modified by moves.
type State struct {
	g        *chess.Game
	plies    int
	maxPlies int
}

// New returns the standard starting position.
func New(options ...Option) *State {
	return newState(chess.NewGame(), options...)
}

// FromFEN starts from a FEN position.
func FromFEN(fen string, options ...Option) (*State, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("chess: parsing fen %q: %w", fen, err)
	}
	return newState(chess.NewGame(opt), options...), nil
}

func newState(g *chess.Game, options ...Option) *State {
	s := &State{g: g, maxPlies: DefaultMaxPlies}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *State) Duplicate() game.State {
	// Clones share the current *chess.Position, which fills its move cache
	// lazily. Fill it here so concurrent duplicates only ever read it.
	s.g.ValidMoves()
	return &State{
		g:        s.g.Clone(),
		plies:    s.plies,
		maxPlies: s.maxPlies,
	}
}

func (s *State) Moves() []game.Move {
	if s.GameOver() {
		return nil
	}
	valid := s.g.ValidMoves()
	moves := make([]game.Move, len(valid))
	for i, m := range valid {
		moves[i] = m
	}
	return moves
}

func (s *State) Play(move game.Move) error {
	if s.GameOver() {
		return fmt.Errorf("chess: %w", game.ErrGameOver)
	}
	m, ok := move.(*chess.Move)
	if !ok || m == nil {
		return fmt.Errorf("chess: unexpected move type %T: %w", move, game.ErrIllegalMove)
	}
	if err := s.g.Move(m); err != nil {
		return fmt.Errorf("chess: %v: %w", err, game.ErrIllegalMove)
	}
	s.plies++
	return nil
}

func (s *State) capped() bool {
	return s.maxPlies > 0 && s.plies >= s.maxPlies
}

func (s *State) GameOver() bool {
	return s.g.Outcome() != chess.NoOutcome || s.capped()
}

func (s *State) CurrentPlayer() game.Player {
	if s.g.Position().Turn() == chess.White {
		return 0
	}
	return 1
}

func (s *State) Players() int {
	return 2
}

func (s *State) Score() (game.Score, error) {
	switch s.g.Outcome() {
	case chess.WhiteWon:
		return game.Win(2, 0), nil
	case chess.BlackWon:
		return game.Win(2, 1), nil
	case chess.Draw:
		return game.Draw(2), nil
	}
	if s.capped() {
		return game.Draw(2), nil
	}
	return nil, fmt.Errorf("chess: game in progress: %w", game.ErrNotTerminal)
}

// Outcome exposes the underlying result, e.g. for logging.
func (s *State) Outcome() (chess.Outcome, chess.Method) {
	return s.g.Outcome(), s.g.Method()
}

func (s *State) String() string {
	return fmt.Sprintf("%s\n%s (ply %d, %s)", s.g.Position().Board().Draw(), s.g.Position(), s.plies, s.g.Outcome())
}
