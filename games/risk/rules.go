package risk

import (
	"sort"
	"sync"
)

const DieFaces = 6

// Rules must be comparable: battle tables are cached per rules value.
type Rules interface {
	MaxAttackDice() int
	MaxDefendDice() int
	// DetermineAttackOutcome compares rolls sorted in descending order.
	DetermineAttackOutcome(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int)
	// Reinforcements returns the troops a player receives for the cantons and region bonuses it holds.
	Reinforcements(cantons, bonus int) int
}

// StandardRules: up to three attacking and two defending dice, ties go to the defender.
type StandardRules struct{}

func (StandardRules) MaxAttackDice() int {
	return 3
}

func (StandardRules) MaxDefendDice() int {
	return 2
}

func (StandardRules) DetermineAttackOutcome(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int) {
	for i := 0; i < len(attackerRolls) && i < len(defenderRolls); i++ {
		if attackerRolls[i] > defenderRolls[i] {
			defenderLosses++
		} else {
			attackerLosses++
		}
	}
	return attackerLosses, defenderLosses
}

func (StandardRules) Reinforcements(cantons, bonus int) int {
	return max(3, cantons/3) + bonus
}

// Battle is the outcome of one round of dice: a chance move.
type Battle struct {
	AttackerLosses int
	DefenderLosses int
}

// Outcome pairs a battle result with the number of dice rolls producing it.
type Outcome struct {
	Battle
	Rolls int
}

type diceKey struct {
	rules            Rules
	attacker, defend int
}

var outcomeCache sync.Map // diceKey -> []Outcome

// Outcomes enumerates every roll of the given dice and groups them by result.
// Results are ordered by attacker losses; the table is cached per rules and dice count.
func Outcomes(rules Rules, attackerDice, defenderDice int) []Outcome {
	key := diceKey{rules, attackerDice, defenderDice}
	if cached, ok := outcomeCache.Load(key); ok {
		return cached.([]Outcome)
	}

	counts := make(map[Battle]int)
	dice := make([]int, attackerDice+defenderDice)
	attacker := make([]int, attackerDice)
	defender := make([]int, defenderDice)
	var roll func(i int)
	roll = func(i int) {
		if i == len(dice) {
			copy(attacker, dice[:attackerDice])
			copy(defender, dice[attackerDice:])
			sort.Sort(sort.Reverse(sort.IntSlice(attacker)))
			sort.Sort(sort.Reverse(sort.IntSlice(defender)))
			a, d := rules.DetermineAttackOutcome(attacker, defender)
			counts[Battle{a, d}]++
			return
		}
		for face := 1; face <= DieFaces; face++ {
			dice[i] = face
			roll(i + 1)
		}
	}
	roll(0)

	outcomes := make([]Outcome, 0, len(counts))
	for b, n := range counts {
		outcomes = append(outcomes, Outcome{Battle: b, Rolls: n})
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].AttackerLosses < outcomes[j].AttackerLosses
	})
	cached, _ := outcomeCache.LoadOrStore(key, outcomes)
	return cached.([]Outcome)
}
