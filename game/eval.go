package game

// Evaluate estimates the final score of a non-terminal state. It is used by
// searchers that cut playouts short; it is not part of the core contract.
type Evaluate func(State) Score

// EvaluateUniform assumes every player is equally likely to win.
func EvaluateUniform(s State) Score {
	return Uniform(s.Players())
}

// EvaluateBounds takes the midpoint of the state's bounds per player and
// renormalises it to sum to 1. Without bound info it is EvaluateUniform.
func EvaluateBounds(s State) Score {
	bounds, ok := BoundsOf(s)
	if !ok {
		return EvaluateUniform(s)
	}

	score := make(Score, s.Players())
	sum := 0.0
	for i := range score {
		score[i] = (bounds.Pessimistic[i] + bounds.Optimistic[i]) / 2
		sum += score[i]
	}
	if sum == 0 {
		return EvaluateUniform(s)
	}
	for i := range score {
		score[i] /= sum
	}
	return score
}
