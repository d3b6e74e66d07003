package game

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// Sample picks the index of a chance move in proportion to its weight.
func Sample(s State, r *rand.Rand) (int, error) {
	weights, err := WeightsOf(s)
	if err != nil {
		return 0, err
	}
	return SampleWeights(weights, r)
}

// SampleWeights picks an index in proportion to unnormalised weights.
func SampleWeights(weights []float64, r *rand.Rand) (int, error) {
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, fmt.Errorf("weight[%d]=%v: %w", i, w, ErrBadWeights)
		}
		total += w
	}
	if total <= 0 {
		return 0, fmt.Errorf("%d weights sum to %v: %w", len(weights), total, ErrBadWeights)
	}

	sampled := r.Float64() * total
	cumulative := 0.0
	last := 0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		last = i
		cumulative += w
		if sampled < cumulative {
			return i, nil
		}
	}
	return last, nil // Fallback in case of rounding errors
}
