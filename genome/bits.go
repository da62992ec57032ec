// Package genome provides the variable-length bit genome evolved by the engine.
package genome

import (
	"math/rand"
	"strings"
)

// Bit is a single gene.
type Bit uint8

const (
	Zero Bit = 0
	One  Bit = 1
)

// Genome is an ordered, growable sequence of genes.
type Genome []Bit

// Random returns a genome of the given length with uniformly random genes.
func Random(length int, rng *rand.Rand) Genome {
	g := make(Genome, length)
	for i := range g {
		g[i] = Bit(rng.Intn(2))
	}
	return g
}

// RandomBit draws a single uniformly random gene.
func RandomBit(rng *rand.Rand) Bit {
	return Bit(rng.Intn(2))
}

// Clone returns a copy that shares no backing array with g.
func (g Genome) Clone() Genome {
	if g == nil {
		return nil
	}
	clone := make(Genome, len(g))
	copy(clone, g)
	return clone
}

// Equal reports whether both genomes have the same length and genes.
func (g Genome) Equal(other Genome) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the genome as a bit string, e.g. "10110".
func (g Genome) String() string {
	var sb strings.Builder
	sb.Grow(len(g))
	for _, b := range g {
		if b == One {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Distance computes distance between two genomes (0.0 = identical, 1.0 = maximally different).
// Mismatches over the shared prefix and every gene past it count as one
// difference each, normalised by the longer length.
func Distance(a, b Genome) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0.0
	}

	shared := min(len(a), len(b))
	diff := longest - shared
	for i := 0; i < shared; i++ {
		if a[i] != b[i] {
			diff++
		}
	}
	return float64(diff) / float64(longest)
}
