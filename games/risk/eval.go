package risk

import "gamesearch/game"

// Evaluators are the cut-off heuristics selectable by name.
var Evaluators = map[string]game.Evaluate{
	"resources":    EvaluateResources,
	"connectivity": EvaluateConnectivity,
}

// EvaluateResources splits the win between both players by their share of
// cantons, troops and held region bonuses.
func EvaluateResources(s game.State) game.Score {
	rs := mustState(s)
	if score, err := rs.Score(); err == nil {
		return score
	}
	return average(rs.resourceShares())
}

// EvaluateConnectivity adds the share of each player's largest connected
// group of cantons to EvaluateResources.
func EvaluateConnectivity(s game.State) game.Score {
	rs := mustState(s)
	if score, err := rs.Score(); err == nil {
		return score
	}
	var largest [2]float64
	for p := range largest {
		largest[p] = float64(rs.largestComponent(game.Player(p)))
	}
	return average(append(rs.resourceShares(), share(largest)))
}

func mustState(s game.State) *State {
	rs, ok := s.(*State)
	if !ok {
		panic("unexpected state type")
	}
	return rs
}

func (s *State) resourceShares() []game.Score {
	var cantons, troops, bonus [2]float64
	for id, owner := range s.owner {
		cantons[owner]++
		troops[owner] += float64(s.troops[id])
	}
	for _, r := range s.m.Regions {
		if owner := s.regionOwner(r); owner >= 0 {
			bonus[owner] += float64(r.Bonus)
		}
	}

	shares := []game.Score{share(cantons), share(troops)}
	if bonus[0]+bonus[1] > 0 {
		shares = append(shares, share(bonus))
	}
	return shares
}

func (s *State) largestComponent(player game.Player) int {
	sizes := make(map[int]int)
	largest := 0
	for _, label := range s.components(player) {
		if label < 0 {
			continue
		}
		sizes[label]++
		largest = max(largest, sizes[label])
	}
	return largest
}

// share turns two non-negative quantities into a score; nothing to share is a draw.
func share(v [2]float64) game.Score {
	total := v[0] + v[1]
	if total == 0 {
		return game.Draw(2)
	}
	return game.Score{v[0] / total, v[1] / total}
}

func average(scores []game.Score) game.Score {
	avg := game.Filled(2, 0)
	for _, score := range scores {
		for p := range avg {
			avg[p] += score[p]
		}
	}
	for p := range avg {
		avg[p] /= float64(len(scores))
	}
	return avg
}
