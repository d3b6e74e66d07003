package risk

import (
	"testing"

	"gamesearch/conformance"
	"gamesearch/game"

	"github.com/stretchr/testify/require"
)

// line builds cantons A-B-C-... bordering their neighbours only.
func line(n int) *Map {
	m := NewMap()
	for i := 0; i < n; i++ {
		name := string(rune('A' + i))
		m.AddCanton(name, name)
		if i > 0 {
			m.AddBorder(i-1, i)
		}
	}
	return m
}

func play(t *testing.T, s *State, moves ...game.Move) {
	t.Helper()
	for _, m := range moves {
		require.NoError(t, s.Play(m), "%v should be legal in\n%s", m, s)
	}
}

func TestSwitzerland(t *testing.T) {
	m := Switzerland()
	require.Len(t, m.Cantons, 26)

	for _, c := range m.Cantons {
		require.NotEmpty(t, c.Adjacent, "%s should have a neighbour", c.Name)
		for _, adj := range c.Adjacent {
			require.True(t, m.Adjacent(adj, c.ID), "Border %s-%s should be symmetric", c.Abbreviation, m.Cantons[adj].Abbreviation)
		}
	}

	s := New(m)
	for id := range m.Cantons {
		s.owner[id] = 0
	}
	require.Equal(t, 0, s.components(0)[25], "Every canton should be reachable from Aargau")

	covered := 0
	for _, r := range m.Regions {
		covered += len(r.Cantons)
	}
	require.Equal(t, 26, covered, "Regions should partition the cantons")
}

func TestNew(t *testing.T) {
	s := New(Switzerland())

	require.Equal(t, game.Player(0), s.CurrentPlayer())
	require.Equal(t, ReinforcementPhase, s.Phase())
	require.Equal(t, 5, s.TroopsToPlace(), "13 cantons give 4 troops, Ticino adds 1")
	require.Equal(t, DefaultInitialTroops, s.Troops(0))
	require.False(t, s.GameOver())
}

func TestOutcomes(t *testing.T) {
	cases := []struct {
		attacker, defender int
		want               []Outcome
	}{
		{3, 2, []Outcome{{Battle{0, 2}, 2890}, {Battle{1, 1}, 2611}, {Battle{2, 0}, 2275}}},
		{2, 2, []Outcome{{Battle{0, 2}, 295}, {Battle{1, 1}, 420}, {Battle{2, 0}, 581}}},
		{3, 1, []Outcome{{Battle{0, 1}, 855}, {Battle{1, 0}, 441}}},
		{1, 1, []Outcome{{Battle{0, 1}, 15}, {Battle{1, 0}, 21}}},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Outcomes(StandardRules{}, c.attacker, c.defender), "%d vs %d dice", c.attacker, c.defender)
	}
}

func TestBattle(t *testing.T) {
	s := New(line(3))
	require.Equal(t, []game.Move{
		Move{Action: Reinforce, To: 0, Troops: 1},
		Move{Action: Reinforce, To: 0, Troops: 3},
		Move{Action: Reinforce, To: 2, Troops: 1},
		Move{Action: Reinforce, To: 2, Troops: 3},
	}, s.Moves())

	play(t, s, Move{Action: Reinforce, To: 0, Troops: 3})
	require.Equal(t, AttackPhase, s.Phase())
	require.Len(t, s.Moves(), 3, "Attack from A, attack from C, or pass")

	play(t, s, Move{Action: Attack, From: 0, To: 1})
	require.True(t, game.IsChance(s))
	require.Equal(t, []game.Move{Battle{0, 2}, Battle{1, 1}, Battle{2, 0}}, s.Moves())
	weights, err := s.MoveWeights()
	require.NoError(t, err)
	require.Equal(t, []float64{2890, 2611, 2275}, weights)

	play(t, s, Battle{0, 2})
	require.Equal(t, game.Player(0), s.CurrentPlayer())
	require.Equal(t, 1, s.Troops(1))

	play(t, s, Move{Action: Attack, From: 0, To: 1}, Battle{0, 1})
	require.Equal(t, game.Player(0), s.Owner(1), "B should be captured")
	require.Equal(t, 5, s.Troops(1), "All but one troop move in")
	require.Equal(t, 1, s.Troops(0))

	require.True(t, s.GameOver(), "Player 0 holds every canton")
	score, err := s.Score()
	require.NoError(t, err)
	require.Equal(t, game.Score{1, 0}, score)
	require.Equal(t, score, EvaluateResources(s))
}

func TestManeuver(t *testing.T) {
	s := New(line(4))
	s.owner = []game.Player{0, 0, 1, 1}

	require.Equal(t, []game.Move{
		Move{Action: Reinforce, To: 1, Troops: 1},
		Move{Action: Reinforce, To: 1, Troops: 3},
	}, s.Moves(), "Only B borders the enemy")
	play(t, s, Move{Action: Reinforce, To: 1, Troops: 3}, Move{Action: Pass})

	require.Equal(t, ManeuverPhase, s.Phase())
	require.Equal(t, []game.Move{
		Move{Action: Maneuver, From: 0, To: 1, Troops: 1},
		Move{Action: Maneuver, From: 0, To: 1, Troops: 2},
		Move{Action: Maneuver, From: 1, To: 0, Troops: 1},
		Move{Action: Maneuver, From: 1, To: 0, Troops: 2},
		Move{Action: Maneuver, From: 1, To: 0, Troops: 5},
		Move{Action: Pass},
	}, s.Moves())

	play(t, s, Move{Action: Maneuver, From: 1, To: 0, Troops: 5})
	require.Equal(t, 8, s.Troops(0))
	require.Equal(t, 1, s.Troops(1))
	require.Equal(t, game.Player(1), s.CurrentPlayer(), "One maneuver ends the turn")
	require.Equal(t, ReinforcementPhase, s.Phase())
	require.Equal(t, 1, s.Turn())
	require.Equal(t, 3, s.TroopsToPlace())
}

func TestTurnLimit(t *testing.T) {
	s := New(line(3), WithMaxTurns(1))
	play(t, s, Move{Action: Reinforce, To: 2, Troops: 3}, Move{Action: Pass}, Move{Action: Pass})

	require.True(t, s.GameOver())
	require.Empty(t, s.Moves())
	score, err := s.Score()
	require.NoError(t, err)
	require.Equal(t, game.Draw(2), score)
	require.ErrorIs(t, s.Play(Move{Action: Pass}), game.ErrGameOver)
}

func TestIllegalMoves(t *testing.T) {
	s := New(line(3))

	cases := map[string]game.Move{
		"reinforcing an enemy canton":   Move{Action: Reinforce, To: 1, Troops: 1},
		"reinforcing an unoffered size": Move{Action: Reinforce, To: 0, Troops: 2},
		"reinforcing off the map":       Move{Action: Reinforce, To: 7, Troops: 1},
		"passing before reinforcing":    Move{Action: Pass},
		"rolling without a battle":      Battle{0, 1},
		"a foreign move type":           "attack",
	}
	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, s.Play(m), game.ErrIllegalMove)
		})
	}
	require.Equal(t, 3, s.TroopsToPlace(), "Rejected moves should not mutate the state")

	_, err := s.MoveWeights()
	require.ErrorIs(t, err, game.ErrNotChance)
	_, err = s.Score()
	require.ErrorIs(t, err, game.ErrNotTerminal)

	t.Run("impossible battle result", func(t *testing.T) {
		s := New(line(3), WithInitialTroops(2))
		play(t, s, Move{Action: Reinforce, To: 2, Troops: 3}, Move{Action: Attack, From: 0, To: 1})

		require.ErrorIs(t, s.Play(Battle{2, 0}), game.ErrIllegalMove, "One attacking die cannot lose two troops")
		require.ErrorIs(t, s.Play(Move{Action: Pass}), game.ErrIllegalMove, "Chance is acting")
	})
}

func TestDuplicate(t *testing.T) {
	s := New(Switzerland())
	d := s.Duplicate().(*State)
	m := d.Moves()[0].(Move)
	play(t, d, m)

	require.Equal(t, 5, s.TroopsToPlace())
	require.Equal(t, DefaultInitialTroops, s.Troops(m.To), "Original should not see the reinforcement")
	require.Equal(t, DefaultInitialTroops+m.Troops, d.Troops(m.To))
	require.Same(t, s.Map(), d.Map(), "The map is shared")
}

func TestEvaluate(t *testing.T) {
	s := New(Switzerland())
	require.Equal(t, game.Score{0.5, 0.5}, EvaluateResources(s), "Cantons, troops and bonuses are split evenly")

	stronger := s.Duplicate().(*State)
	stronger.troops[0] += 10
	for name, evaluate := range Evaluators {
		t.Run(name, func(t *testing.T) {
			before, after := evaluate(s), evaluate(stronger)
			require.NoError(t, before.Validate(2))
			require.NoError(t, after.Validate(2))
			require.Greater(t, after[0], before[0], "Extra troops should favour player 0")
		})
	}

	require.Equal(t, game.Score{0.5, 0.5}, share([2]float64{0, 0}))
	require.Panics(t, func() { EvaluateResources(nil) })
}

func TestConformance(t *testing.T) {
	s := New(Switzerland(), WithMaxTurns(8))
	require.NoError(t, conformance.Run(s, conformance.WithPlayouts(3), conformance.WithMaxDepth(3000)))
}
