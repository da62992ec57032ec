// Package fitness scores bit genomes against the target solution.
package fitness

import (
	"github.com/signalnine/bitevolve/genome"
)

// Score counts the positions where g agrees with target over their shared
// prefix and subtracts the length difference. The result may be negative.
func Score(g, target genome.Genome) int {
	shared := min(len(g), len(target))

	matching := 0
	for i := 0; i < shared; i++ {
		if g[i] == target[i] {
			matching++
		}
	}

	lengthDiff := len(g) - len(target)
	if lengthDiff < 0 {
		lengthDiff = -lengthDiff
	}
	return matching - lengthDiff
}

// MaxScore is the score of an exact match, the only genome that reaches it.
func MaxScore(target genome.Genome) int {
	return len(target)
}

// Evaluator scores genomes against a fixed target.
type Evaluator struct {
	Target genome.Genome
}

// NewEvaluator creates an evaluator. The target is copied.
func NewEvaluator(target genome.Genome) *Evaluator {
	return &Evaluator{Target: target.Clone()}
}

// Evaluate returns the fitness of g.
func (e *Evaluator) Evaluate(g genome.Genome) int {
	return Score(g, e.Target)
}

// IsSolution reports whether g is an exact match of the target.
func (e *Evaluator) IsSolution(g genome.Genome) bool {
	return g.Equal(e.Target)
}
