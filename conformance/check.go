// Package conformance checks that a game.State implementation upholds the
// invariants a tree search relies on: isolation of duplicates, aligned chance
// weights, absorbing terminal states, player range and sound bounds.
package conformance

import (
	"errors"
	"fmt"
	"reflect"

	"gamesearch/game"
)

// ErrViolation is wrapped by every reported broken invariant.
var ErrViolation = errors.New("contract violation")

func violationf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrViolation)
}

// snapshot captures everything observable through the contract.
type snapshot struct {
	moves    []string
	player   game.Player
	players  int
	gameOver bool
	score    game.Score
	printed  string
}

func takeSnapshot(s game.State) snapshot {
	snap := snapshot{
		moves:    describe(s.Moves()),
		player:   s.CurrentPlayer(),
		players:  s.Players(),
		gameOver: s.GameOver(),
		printed:  s.String(),
	}
	if snap.gameOver {
		snap.score, _ = s.Score()
	}
	return snap
}

func describe(moves []game.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = fmt.Sprintf("%v", m)
	}
	return out
}

// CheckState runs every single-state check on s.
func CheckState(s game.State) error {
	return errors.Join(
		CheckPlayerRange(s),
		CheckTerminal(s),
		CheckWeights(s),
		CheckIsolation(s),
	)
}

// CheckIsolation applies each legal move to a duplicate and verifies that the
// original is unaffected, and that mutating an original leaves an earlier
// duplicate unaffected.
func CheckIsolation(s game.State) error {
	before := takeSnapshot(s)
	if !reflect.DeepEqual(before.moves, describe(s.Moves())) {
		return violationf("moves differ across repeated calls on an unmodified state")
	}

	for i, move := range s.Moves() {
		d := s.Duplicate()
		if sameReference(d, s) {
			return violationf("duplicate returned the receiver itself")
		}
		if err := d.Play(move); err != nil {
			return violationf("legal move %d (%v) rejected by a duplicate: %v", i, move, err)
		}
		if after := takeSnapshot(s); !reflect.DeepEqual(before, after) {
			return violationf("applying move %d (%v) to a duplicate changed the original", i, move)
		}

		// The other direction: an earlier duplicate must not observe the
		// mutation of the state it was copied from.
		base := s.Duplicate()
		earlier := base.Duplicate()
		frozen := takeSnapshot(earlier)
		if err := base.Play(base.Moves()[i]); err != nil {
			return violationf("legal move %d rejected by a duplicate: %v", i, err)
		}
		if after := takeSnapshot(earlier); !reflect.DeepEqual(frozen, after) {
			return violationf("applying move %d (%v) to a state changed its earlier duplicate", i, move)
		}
	}
	return nil
}

// CheckWeights verifies move/weight alignment on chance states, and that
// decision states refuse to report weights.
func CheckWeights(s game.State) error {
	st, stochastic := s.(game.Stochastic)
	if !game.IsChance(s) {
		if !stochastic {
			return nil
		}
		if _, err := st.MoveWeights(); !errors.Is(err, game.ErrNotChance) {
			return violationf("decision state returned weights (err=%v)", err)
		}
		return nil
	}

	moves := s.Moves()
	weights, err := game.WeightsOf(s)
	if err != nil {
		return violationf("chance state failed to report weights: %v", err)
	}
	if len(weights) != len(moves) {
		return violationf("%d weights for %d moves", len(weights), len(moves))
	}
	positive := false
	for i, w := range weights {
		if w < 0 {
			return violationf("weight[%d]=%v is negative", i, w)
		}
		if w > 0 {
			positive = true
		}
	}
	if len(moves) > 0 && !positive {
		return violationf("chance state with %d moves has all-zero weights", len(moves))
	}
	return nil
}

// CheckTerminal verifies that terminal states have no moves, a well formed
// score and refuse further moves; and that non-terminal states refuse to score.
func CheckTerminal(s game.State) error {
	if !s.GameOver() {
		if _, err := s.Score(); !errors.Is(err, game.ErrNotTerminal) {
			return violationf("non-terminal state returned a score (err=%v)", err)
		}
		return nil
	}

	if moves := s.Moves(); len(moves) != 0 {
		return violationf("terminal state offers %d moves", len(moves))
	}
	score, err := s.Score()
	if err != nil {
		return violationf("terminal state failed to score: %v", err)
	}
	if err := score.Validate(s.Players()); err != nil {
		return violationf("terminal score %v: %v", score, err)
	}
	if err := s.Duplicate().Play(nil); !errors.Is(err, game.ErrGameOver) {
		return violationf("terminal state accepted a move (err=%v)", err)
	}
	return nil
}

// CheckPlayerRange verifies 0 <= player < Players() on non-terminal decision
// states.
func CheckPlayerRange(s game.State) error {
	players := s.Players()
	if players <= 0 {
		return violationf("%d players", players)
	}
	if s.GameOver() {
		return nil
	}
	player := s.CurrentPlayer()
	if player == game.Chance {
		return nil
	}
	if player < 0 || int(player) >= players {
		return violationf("current player %d outside [0, %d)", player, players)
	}
	return nil
}

func sameReference(a, b game.State) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	return va.Kind() == reflect.Pointer && vb.Kind() == reflect.Pointer && va.Pointer() == vb.Pointer()
}
