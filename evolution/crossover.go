// Package evolution provides genetic algorithm operators and the generation loop
// for evolving bit genomes toward a target solution.
package evolution

import (
	"math/rand"

	"github.com/signalnine/bitevolve/genome"
)

// Recombiner builds the first minLength genes of a child from two genomes that
// are both at least two genes long. It also returns the genes of the longer
// parent past minLength when that tail is subject to leftover handling, or nil.
type Recombiner interface {
	Recombine(a, b genome.Genome, minLength int, rng *rand.Rand) (child, tail genome.Genome)
	Strategy() CrossoverStrategy
}

// LeftoverPolicy decides which tail genes are appended to a child.
type LeftoverPolicy interface {
	Keep(tail genome.Genome, a, b *Individual, minLength int, rng *rand.Rand) genome.Genome
	Strategy() LeftoverStrategy
}

// NewRecombiner builds the recombiner for strategy.
func NewRecombiner(strategy CrossoverStrategy) (Recombiner, error) {
	switch strategy {
	case CrossoverOnePoint:
		return OnePointCrossover{}, nil
	case CrossoverTwoPoint:
		return TwoPointCrossover{}, nil
	case CrossoverUniform:
		return UniformCrossover{}, nil
	case CrossoverArithmetic:
		return ArithmeticCrossover{}, nil
	default:
		return nil, unsupported("crossover", string(strategy))
	}
}

// NewLeftoverPolicy builds the leftover policy for strategy.
func NewLeftoverPolicy(strategy LeftoverStrategy) (LeftoverPolicy, error) {
	switch strategy {
	case LeftoverKeepAllOrNothing:
		return KeepAllOrNothing{}, nil
	case LeftoverKeepOneOrNot:
		return KeepOneOrNot{}, nil
	case LeftoverKeepFittestParent:
		return KeepFromFittestParent{}, nil
	default:
		return nil, unsupported("crossover leftover", string(strategy))
	}
}

// CrossoverOperator combines two parents into one new child.
type CrossoverOperator struct {
	Recombiner Recombiner
	Leftover   LeftoverPolicy
}

// NewCrossoverOperator creates a crossover operator from its two strategy names.
func NewCrossoverOperator(crossover CrossoverStrategy, leftover LeftoverStrategy) (*CrossoverOperator, error) {
	recombiner, err := NewRecombiner(crossover)
	if err != nil {
		return nil, err
	}
	policy, err := NewLeftoverPolicy(leftover)
	if err != nil {
		return nil, err
	}
	return &CrossoverOperator{Recombiner: recombiner, Leftover: policy}, nil
}

// Crossover produces a child from two parents. The child never shares genome
// storage with either parent.
//
// When either parent has at most one gene there is nothing to cut, so the
// child is a copy of the strictly fitter parent (b on ties).
func (c *CrossoverOperator) Crossover(a, b *Individual, rng *rand.Rand) *Individual {
	if a.GenomeLength() <= 1 || b.GenomeLength() <= 1 {
		if a.Fitness > b.Fitness {
			return a.Clone()
		}
		return b.Clone()
	}

	minLength := min(a.GenomeLength(), b.GenomeLength())
	child, tail := c.Recombiner.Recombine(a.Genome, b.Genome, minLength, rng)
	if len(tail) > 0 {
		child = append(child, c.Leftover.Keep(tail, a, b, minLength, rng)...)
	}
	return NewIndividual(child)
}

// longerTail returns the genes of the longer genome past minLength.
func longerTail(a, b genome.Genome, minLength int) genome.Genome {
	if len(a) > len(b) {
		return a[minLength:]
	}
	return b[minLength:]
}

// OnePointCrossover takes a's genes before a random cut and b's genes from
// the cut up to minLength. The child is truncated to minLength on purpose, so
// ONE_POINT children are always exactly minLength genes long.
type OnePointCrossover struct{}

func (OnePointCrossover) Strategy() CrossoverStrategy { return CrossoverOnePoint }

func (OnePointCrossover) Recombine(a, b genome.Genome, minLength int, rng *rand.Rand) (genome.Genome, genome.Genome) {
	cut := rng.Intn(minLength - 1) // [0, minLength-2]

	child := make(genome.Genome, 0, minLength)
	child = append(child, a[:cut]...)
	child = append(child, b[cut:minLength]...)
	return child, nil
}

// TwoPointCrossover swaps in b's genes between two random cuts.
type TwoPointCrossover struct{}

func (TwoPointCrossover) Strategy() CrossoverStrategy { return CrossoverTwoPoint }

func (TwoPointCrossover) Recombine(a, b genome.Genome, minLength int, rng *rand.Rand) (genome.Genome, genome.Genome) {
	// first in [1, minLength-1], second in [first, minLength-1]
	first := rng.Intn(minLength-1) + 1
	second := rng.Intn(minLength-first) + first

	child := make(genome.Genome, 0, minLength)
	child = append(child, a[:first]...)
	child = append(child, b[first:second]...)
	child = append(child, a[second:minLength]...)
	return child, nil
}

// UniformCrossover draws every position from one of the parents while giving
// each parent about half of the positions.
type UniformCrossover struct{}

func (UniformCrossover) Strategy() CrossoverStrategy { return CrossoverUniform }

func (UniformCrossover) Recombine(a, b genome.Genome, minLength int, rng *rand.Rand) (genome.Genome, genome.Genome) {
	pickA := minLength / 2
	pickB := minLength / 2
	if rng.Intn(2) == 0 {
		pickA += minLength % 2
	} else {
		pickB += minLength % 2
	}

	child := make(genome.Genome, 0, minLength)
	for cursor := 0; cursor < minLength; cursor++ {
		// Weighted by the remaining quotas, so an exhausted side is never chosen
		if rng.Intn(pickA+pickB) < pickA {
			child = append(child, a[cursor])
			pickA--
		} else {
			child = append(child, b[cursor])
			pickB--
		}
	}
	return child, longerTail(a, b, minLength)
}

// ArithmeticCrossover XORs the parents gene by gene.
type ArithmeticCrossover struct{}

func (ArithmeticCrossover) Strategy() CrossoverStrategy { return CrossoverArithmetic }

func (ArithmeticCrossover) Recombine(a, b genome.Genome, minLength int, _ *rand.Rand) (genome.Genome, genome.Genome) {
	child := make(genome.Genome, minLength)
	for i := 0; i < minLength; i++ {
		child[i] = a[i] ^ b[i]
	}
	return child, longerTail(a, b, minLength)
}

// KeepAllOrNothing keeps the whole tail on one coin flip.
type KeepAllOrNothing struct{}

func (KeepAllOrNothing) Strategy() LeftoverStrategy { return LeftoverKeepAllOrNothing }

func (KeepAllOrNothing) Keep(tail genome.Genome, _, _ *Individual, _ int, rng *rand.Rand) genome.Genome {
	if rng.Intn(2) == 0 {
		return nil
	}
	return tail
}

// KeepOneOrNot flips a coin for every tail gene.
type KeepOneOrNot struct{}

func (KeepOneOrNot) Strategy() LeftoverStrategy { return LeftoverKeepOneOrNot }

func (KeepOneOrNot) Keep(tail genome.Genome, _, _ *Individual, _ int, rng *rand.Rand) genome.Genome {
	kept := make(genome.Genome, 0, len(tail))
	for _, bit := range tail {
		if rng.Intn(2) == 1 {
			kept = append(kept, bit)
		}
	}
	return kept
}

// KeepFromFittestParent keeps the genes past minLength of the fitter parent
// (a on ties). That parent may be the shorter one, leaving nothing to keep.
type KeepFromFittestParent struct{}

func (KeepFromFittestParent) Strategy() LeftoverStrategy { return LeftoverKeepFittestParent }

func (KeepFromFittestParent) Keep(_ genome.Genome, a, b *Individual, minLength int, _ *rand.Rand) genome.Genome {
	if a.Fitness >= b.Fitness {
		return a.Genome[minLength:]
	}
	return b.Genome[minLength:]
}
