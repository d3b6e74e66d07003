// Package risk is a two-player Risk variant on the map of Swiss cantons.
//
// A turn has three phases. The player first places reinforcements on cantons
// bordering the enemy, then attacks as long as they like, then may move troops
// once between two connected cantons. Each attack is resolved one dice round
// at a time: after an Attack move the state becomes a chance node whose moves
// are the possible Battle results, weighted by the number of dice rolls
// producing them.
package risk

import (
	"fmt"
	"strings"

	"gamesearch/game"
	"gamesearch/utils"
)

const (
	DefaultMaxTurns      = 60
	DefaultInitialTroops = 3
)

type Phase int

const (
	ReinforcementPhase Phase = iota
	AttackPhase
	BattlePhase // Dice are rolling
	ManeuverPhase
)

func (p Phase) String() string {
	switch p {
	case ReinforcementPhase:
		return "reinforcement"
	case AttackPhase:
		return "attack"
	case BattlePhase:
		return "battle"
	case ManeuverPhase:
		return "maneuver"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

type Action int

const (
	Reinforce Action = iota
	Attack
	Maneuver
	Pass
)

func (a Action) String() string {
	names := [...]string{"reinforce", "attack", "maneuver", "pass"}
	if a < 0 || int(a) >= len(names) {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return names[a]
}

// Move is a decision of the player to move. From is unused by Reinforce,
// Troops is unused by Attack and both are unused by Pass.
type Move struct {
	Action Action
	From   int
	To     int
	Troops int
}

func (m Move) String() string {
	switch m.Action {
	case Reinforce:
		return fmt.Sprintf("reinforce %d with %d", m.To, m.Troops)
	case Attack:
		return fmt.Sprintf("attack %d from %d", m.To, m.From)
	case Maneuver:
		return fmt.Sprintf("maneuver %d from %d to %d", m.Troops, m.From, m.To)
	}
	return "pass"
}

func (b Battle) String() string {
	return fmt.Sprintf("battle -%d/-%d", b.AttackerLosses, b.DefenderLosses)
}

type Option func(s *State)

// WithMaxTurns ends the game in a draw after the given number of player turns.
func WithMaxTurns(turns int) Option {
	return func(s *State) {
		s.maxTurns = turns
	}
}

func WithRules(rules Rules) Option {
	return func(s *State) {
		s.rules = rules
	}
}

// WithInitialTroops sets the troops placed on every canton at the start.
func WithInitialTroops(troops int) Option {
	return func(s *State) {
		for i := range s.troops {
			s.troops[i] = troops
		}
	}
}

// State is a Risk position. The map and the rules are shared between
// duplicates; troops and ownership are copied.
type State struct {
	m     *Map
	rules Rules

	troops []int         // Indexed by canton ID
	owner  []game.Player // Indexed by canton ID

	player   game.Player
	phase    Phase
	toPlace  int
	from, to int // Cantons of the battle being rolled
	turn     int
	maxTurns int
	winner   game.Player
	over     bool
}

// New deals the cantons alternately to both players and starts player 0's
// reinforcement phase.
func New(m *Map, options ...Option) *State {
	if len(m.Cantons) < 2 {
		panic("map needs at least two cantons")
	}
	s := &State{
		m:        m,
		rules:    StandardRules{},
		troops:   make([]int, len(m.Cantons)),
		owner:    make([]game.Player, len(m.Cantons)),
		maxTurns: DefaultMaxTurns,
		winner:   -1,
	}
	for id := range s.owner {
		s.owner[id] = game.Player(id % 2)
		s.troops[id] = DefaultInitialTroops
	}
	for _, option := range options {
		option(s)
	}
	s.toPlace = s.reinforcements(s.player)
	return s
}

func (s *State) Duplicate() game.State {
	c := *s
	c.troops = make([]int, len(s.troops))
	copy(c.troops, s.troops)
	c.owner = make([]game.Player, len(s.owner))
	copy(c.owner, s.owner)
	return &c
}

func (s *State) Moves() []game.Move {
	if s.over {
		return nil
	}
	switch s.phase {
	case ReinforcementPhase:
		return s.reinforcementMoves()
	case AttackPhase:
		return s.attackMoves()
	case BattlePhase:
		outcomes := s.outcomes()
		moves := make([]game.Move, len(outcomes))
		for i, o := range outcomes {
			moves[i] = o.Battle
		}
		return moves
	case ManeuverPhase:
		return s.maneuverMoves()
	}
	return nil
}

// amounts offers one, half or all of n troops.
func amounts(n int) []int {
	var offered []int
	for _, a := range []int{1, n / 2, n} {
		if a > 0 && !utils.Contains(offered, a) {
			offered = append(offered, a)
		}
	}
	return offered
}

func (s *State) bordersEnemy(canton int) bool {
	for _, adj := range s.m.Cantons[canton].Adjacent {
		if s.owner[adj] != s.owner[canton] {
			return true
		}
	}
	return false
}

func (s *State) reinforcementMoves() []game.Move {
	var moves []game.Move
	for id, owner := range s.owner {
		if owner != s.player || !s.bordersEnemy(id) {
			continue
		}
		for _, n := range amounts(s.toPlace) {
			moves = append(moves, Move{Action: Reinforce, To: id, Troops: n})
		}
	}
	return moves
}

func (s *State) attackMoves() []game.Move {
	var moves []game.Move
	for id, owner := range s.owner {
		if owner != s.player || s.troops[id] < 2 {
			continue
		}
		for _, adj := range s.m.Cantons[id].Adjacent {
			if s.owner[adj] != s.player {
				moves = append(moves, Move{Action: Attack, From: id, To: adj})
			}
		}
	}
	return append(moves, Move{Action: Pass})
}

func (s *State) maneuverMoves() []game.Move {
	var moves []game.Move
	component := s.components(s.player)
	for from, owner := range s.owner {
		if owner != s.player || s.troops[from] < 2 {
			continue
		}
		for to := range s.owner {
			if to == from || component[to] != component[from] {
				continue
			}
			for _, n := range amounts(s.troops[from] - 1) {
				moves = append(moves, Move{Action: Maneuver, From: from, To: to, Troops: n})
			}
		}
	}
	return append(moves, Move{Action: Pass})
}

// components labels every canton of player with the ID of the lowest canton
// reachable through the player's own territory, and every other canton with -1.
func (s *State) components(player game.Player) []int {
	label := make([]int, len(s.owner))
	for i := range label {
		label[i] = -1
	}
	for start, owner := range s.owner {
		if owner != player || label[start] >= 0 {
			continue
		}
		label[start] = start
		queue := []int{start}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			for _, adj := range s.m.Cantons[current].Adjacent {
				if s.owner[adj] == player && label[adj] < 0 {
					label[adj] = start
					queue = append(queue, adj)
				}
			}
		}
	}
	return label
}

func (s *State) dice() (attacker, defender int) {
	return min(s.troops[s.from]-1, s.rules.MaxAttackDice()), min(s.troops[s.to], s.rules.MaxDefendDice())
}

func (s *State) outcomes() []Outcome {
	attacker, defender := s.dice()
	return Outcomes(s.rules, attacker, defender)
}

func (s *State) Play(move game.Move) error {
	if s.over {
		return fmt.Errorf("risk: %w", game.ErrGameOver)
	}
	if s.phase == BattlePhase {
		b, ok := move.(Battle)
		if !ok {
			return fmt.Errorf("risk: expected a battle result, got %v: %w", move, game.ErrIllegalMove)
		}
		return s.resolve(b)
	}

	m, ok := move.(Move)
	if !ok {
		return fmt.Errorf("risk: expected a move, got %v: %w", move, game.ErrIllegalMove)
	}
	if err := s.validate(m); err != nil {
		return fmt.Errorf("risk: %v in %s phase: %w", m, s.phase, err)
	}

	switch m.Action {
	case Reinforce:
		s.troops[m.To] += m.Troops
		s.toPlace -= m.Troops
		if s.toPlace == 0 {
			s.phase = AttackPhase
		}
	case Attack:
		s.from, s.to = m.From, m.To
		s.phase = BattlePhase
	case Maneuver:
		s.troops[m.From] -= m.Troops
		s.troops[m.To] += m.Troops
		s.endTurn()
	case Pass:
		if s.phase == AttackPhase {
			s.phase = ManeuverPhase
		} else {
			s.endTurn()
		}
	}
	return nil
}

func (s *State) validate(m Move) error {
	inRange := func(ids ...int) bool {
		for _, id := range ids {
			if id < 0 || id >= len(s.owner) {
				return false
			}
		}
		return true
	}

	switch m.Action {
	case Reinforce:
		if s.phase != ReinforcementPhase || !inRange(m.To) {
			return game.ErrIllegalMove
		}
		if s.owner[m.To] != s.player || !s.bordersEnemy(m.To) || !utils.Contains(amounts(s.toPlace), m.Troops) {
			return game.ErrIllegalMove
		}
	case Attack:
		if s.phase != AttackPhase || !inRange(m.From, m.To) {
			return game.ErrIllegalMove
		}
		if s.owner[m.From] != s.player || s.owner[m.To] == s.player || s.troops[m.From] < 2 || !s.m.Adjacent(m.From, m.To) {
			return game.ErrIllegalMove
		}
	case Maneuver:
		if s.phase != ManeuverPhase || !inRange(m.From, m.To) || m.From == m.To {
			return game.ErrIllegalMove
		}
		if s.owner[m.From] != s.player || s.owner[m.To] != s.player || !utils.Contains(amounts(s.troops[m.From]-1), m.Troops) {
			return game.ErrIllegalMove
		}
		if component := s.components(s.player); component[m.From] != component[m.To] {
			return game.ErrIllegalMove
		}
	case Pass:
		if s.phase != AttackPhase && s.phase != ManeuverPhase {
			return game.ErrIllegalMove
		}
	default:
		return game.ErrIllegalMove
	}
	return nil
}

func (s *State) resolve(b Battle) error {
	possible := false
	for _, o := range s.outcomes() {
		if o.Battle == b {
			possible = true
			break
		}
	}
	if !possible {
		return fmt.Errorf("risk: %v cannot happen with %d vs %d troops: %w", b, s.troops[s.from], s.troops[s.to], game.ErrIllegalMove)
	}

	s.troops[s.from] -= b.AttackerLosses
	s.troops[s.to] -= b.DefenderLosses
	s.phase = AttackPhase
	if s.troops[s.to] > 0 {
		return nil
	}

	// Captured: all but one troop move in.
	s.owner[s.to] = s.player
	s.troops[s.to] = s.troops[s.from] - 1
	s.troops[s.from] = 1
	if s.cantons(s.player) == len(s.owner) {
		s.winner = s.player
		s.over = true
	}
	return nil
}

func (s *State) endTurn() {
	s.turn++
	if s.maxTurns > 0 && s.turn >= s.maxTurns {
		s.over = true
		return
	}
	s.player = 1 - s.player
	s.phase = ReinforcementPhase
	s.toPlace = s.reinforcements(s.player)
}

func (s *State) cantons(player game.Player) int {
	n := 0
	for _, owner := range s.owner {
		if owner == player {
			n++
		}
	}
	return n
}

func (s *State) regionBonus(player game.Player) int {
	bonus := 0
	for _, r := range s.m.Regions {
		if s.regionOwner(r) == player {
			bonus += r.Bonus
		}
	}
	return bonus
}

// regionOwner returns the player holding every canton of r, or -1.
func (s *State) regionOwner(r *Region) game.Player {
	if len(r.Cantons) == 0 {
		return -1
	}
	owner := s.owner[r.Cantons[0]]
	for _, id := range r.Cantons[1:] {
		if s.owner[id] != owner {
			return -1
		}
	}
	return owner
}

func (s *State) reinforcements(player game.Player) int {
	return s.rules.Reinforcements(s.cantons(player), s.regionBonus(player))
}

func (s *State) GameOver() bool {
	return s.over
}

func (s *State) CurrentPlayer() game.Player {
	if s.phase == BattlePhase && !s.over {
		return game.Chance
	}
	return s.player
}

func (s *State) Players() int {
	return 2
}

// Score awards the win to the player holding every canton; the turn limit is a draw.
func (s *State) Score() (game.Score, error) {
	if !s.over {
		return nil, fmt.Errorf("risk: %w", game.ErrNotTerminal)
	}
	if s.winner < 0 {
		return game.Draw(2), nil
	}
	return game.Win(2, s.winner), nil
}

func (s *State) MoveWeights() ([]float64, error) {
	if s.over || s.phase != BattlePhase {
		return nil, fmt.Errorf("risk: player %d is in %s phase: %w", s.player, s.phase, game.ErrNotChance)
	}
	outcomes := s.outcomes()
	weights := make([]float64, len(outcomes))
	for i, o := range outcomes {
		weights[i] = float64(o.Rolls)
	}
	return weights, nil
}

// PessimisticBounds collapses to the score once the game is over.
func (s *State) PessimisticBounds() game.Score {
	if score, err := s.Score(); err == nil {
		return score
	}
	return game.Filled(2, 0)
}

func (s *State) OptimisticBounds() game.Score {
	if score, err := s.Score(); err == nil {
		return score
	}
	return game.Filled(2, 1)
}

func (s *State) Map() *Map {
	return s.m
}

func (s *State) Owner(canton int) game.Player {
	return s.owner[canton]
}

func (s *State) Troops(canton int) int {
	return s.troops[canton]
}

func (s *State) Phase() Phase {
	return s.phase
}

// TroopsToPlace returns the reinforcements left in the current turn.
func (s *State) TroopsToPlace() int {
	return s.toPlace
}

func (s *State) Turn() int {
	return s.turn
}

func (s *State) String() string {
	var b strings.Builder
	switch {
	case s.over && s.winner >= 0:
		fmt.Fprintf(&b, "risk turn %d: player %d won\n", s.turn, s.winner)
	case s.over:
		fmt.Fprintf(&b, "risk turn %d: draw\n", s.turn)
	case s.phase == BattlePhase:
		fmt.Fprintf(&b, "risk turn %d: player %d battles %s from %s\n",
			s.turn, s.player, s.m.Cantons[s.to].Abbreviation, s.m.Cantons[s.from].Abbreviation)
	default:
		fmt.Fprintf(&b, "risk turn %d: player %d, %s phase, %d to place\n", s.turn, s.player, s.phase, s.toPlace)
	}
	for id, c := range s.m.Cantons {
		fmt.Fprintf(&b, "%s p%d %d\n", c.Abbreviation, s.owner[id], s.troops[id])
	}
	return b.String()
}
