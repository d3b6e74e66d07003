package experiments

import (
	"fmt"
	"sort"

	"gamesearch/game"
	"gamesearch/games/chess"
	"gamesearch/games/pig"
	"gamesearch/games/risk"
	"gamesearch/games/tictactoe"
)

var newGames = map[string]func() game.State{
	"tictactoe": func() game.State { return tictactoe.New() },
	"pig":       func() game.State { return pig.New(pig.DefaultTarget) },
	"risk":      func() game.State { return risk.New(risk.Switzerland()) },
	"chess":     func() game.State { return chess.New() },
}

// Games lists the names NewGame accepts.
func Games() []string {
	names := make([]string, 0, len(newGames))
	for name := range newGames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewGame returns the starting position of the named game.
func NewGame(name string) (game.State, error) {
	newGame, ok := newGames[name]
	if !ok {
		return nil, fmt.Errorf("unknown game %q, want one of %v", name, Games())
	}
	return newGame(), nil
}

// Evaluation resolves the cut-off evaluation of an agent. Risk adds its own
// heuristics to the generic ones.
func Evaluation(gameName, name string) (game.Evaluate, error) {
	switch name {
	case "", "bounds":
		return game.EvaluateBounds, nil
	case "uniform":
		return game.EvaluateUniform, nil
	}
	if gameName == "risk" {
		if evaluate, ok := risk.Evaluators[name]; ok {
			return evaluate, nil
		}
	}
	return nil, fmt.Errorf("unknown evaluation %q for %s", name, gameName)
}
