package evolution

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/bitevolve/evolution/fitness"
	"github.com/signalnine/bitevolve/genome"
)

// individuals builds unscored individuals from bit strings.
func individuals(bitStrings ...string) []*Individual {
	out := make([]*Individual, len(bitStrings))
	for i, s := range bitStrings {
		out[i] = NewIndividual(genome.MustParse(s))
	}
	return out
}

// withFitness builds individuals with the given fitness and a one-gene genome.
func withFitness(values ...int) []*Individual {
	out := make([]*Individual, len(values))
	for i, f := range values {
		out[i] = &Individual{Genome: genome.Genome{genome.One}, Fitness: f}
	}
	return out
}

func TestNewPopulation(t *testing.T) {
	eval := fitness.NewEvaluator(genome.MustParse("101"))
	pop := NewPopulation(eval, individuals("101", "100", "10", "1011", "010"))

	assert.Equal(t, 5, pop.Size())
	assert.Equal(t, 0, pop.Generation)
	assert.Equal(t, []float64{3, 2, 1, 2, 0}, pop.FitnessValues())
}

func TestNewRandomPopulation(t *testing.T) {
	eval := fitness.NewEvaluator(genome.MustParse("1010"))
	rng := rand.New(rand.NewSource(42))

	pop := NewRandomPopulation(eval, 200, 2, 6, rng)

	require.Equal(t, 200, pop.Size())
	seen := make(map[int]bool)
	for _, ind := range pop.Individuals {
		assert.GreaterOrEqual(t, ind.GenomeLength(), 2)
		assert.LessOrEqual(t, ind.GenomeLength(), 6)
		seen[ind.GenomeLength()] = true
	}
	assert.Len(t, seen, 5, "every length in the range should occur")
}

func TestNewFixedLengthPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pop := NewFixedLengthPopulation(fitness.NewEvaluator(genome.MustParse("1")), 20, 7, rng)

	for _, ind := range pop.Individuals {
		assert.Equal(t, 7, ind.GenomeLength())
	}
}

func TestRandomPopulationIsDeterministic(t *testing.T) {
	eval := fitness.NewEvaluator(genome.MustParse("1010"))
	a := NewRandomPopulation(eval, 30, 1, 10, rand.New(rand.NewSource(9)))
	b := NewRandomPopulation(eval, 30, 1, 10, rand.New(rand.NewSource(9)))

	for i := range a.Individuals {
		assert.True(t, a.Individuals[i].Genome.Equal(b.Individuals[i].Genome))
	}
}

func TestPopulationFittest(t *testing.T) {
	pop := &Population{Individuals: withFitness(1, 5, 3, 5)}

	best, err := pop.Fittest()
	require.NoError(t, err)
	assert.Same(t, pop.Individuals[1], best, "first of equally fit individuals wins")

	_, err = (&Population{}).Fittest()
	assert.ErrorIs(t, err, ErrEmptyPopulation)
}

func TestPopulationContains(t *testing.T) {
	eval := fitness.NewEvaluator(genome.MustParse("101"))
	pop := NewPopulation(eval, individuals("1010", "10", "111"))
	assert.False(t, pop.Contains(eval), "a prefix match is not a solution")

	pop.Individuals = append(pop.Individuals, NewIndividual(genome.MustParse("101")))
	assert.True(t, pop.Contains(eval))
}

func TestPopulationAverages(t *testing.T) {
	pop := &Population{Individuals: []*Individual{
		{Genome: genome.MustParse("1"), Fitness: -2},
		{Genome: genome.MustParse("111"), Fitness: 4},
	}}

	assert.Equal(t, 1.0, pop.AverageFitness())
	assert.Equal(t, 2.0, pop.AverageGenomeLength())

	empty := &Population{}
	assert.Equal(t, 0.0, empty.AverageFitness())
	assert.Equal(t, 0.0, empty.AverageGenomeLength())
}

func TestPopulationComputeDiversity(t *testing.T) {
	same := &Population{Individuals: individuals("1010", "1010", "1010")}
	assert.Equal(t, 0.0, same.ComputeDiversity())

	opposite := &Population{Individuals: individuals("1111", "0000")}
	assert.Equal(t, 1.0, opposite.ComputeDiversity())

	single := &Population{Individuals: individuals("1")}
	assert.Equal(t, 0.0, single.ComputeDiversity())
}

func TestPopulationComputeDiversityLarge(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pop := NewFixedLengthPopulation(fitness.NewEvaluator(genome.MustParse("1")), 200, 32, rng)

	d := pop.ComputeDiversity()
	assert.Greater(t, d, 0.3)
	assert.Less(t, d, 0.7)
	assert.Equal(t, d, pop.ComputeDiversity(), "sampling must be deterministic")
}

func TestSortByFitness(t *testing.T) {
	pool := withFitness(2, 7, -1, 7, 0)

	sorted := SortByFitness(pool)

	require.Len(t, sorted, 5)
	assert.Same(t, pool[1], sorted[0])
	assert.Same(t, pool[3], sorted[1], "ties keep pool order")
	assert.Same(t, pool[0], sorted[2])
	assert.Same(t, pool[4], sorted[3])
	assert.Same(t, pool[2], sorted[4])

	assert.Equal(t, 2, pool[0].Fitness, "input must not be reordered")
}

func TestIndividualClone(t *testing.T) {
	orig := &Individual{Genome: genome.MustParse("101"), Fitness: 3}

	clone := orig.Clone()
	clone.Genome[0] = genome.Zero
	clone.Fitness = 0

	assert.Equal(t, "101", orig.Genome.String())
	assert.Equal(t, 3, orig.Fitness)
}

func TestIndividualGeneEdits(t *testing.T) {
	ind := NewIndividual(genome.MustParse("101"))

	require.NoError(t, ind.SetGene(1, genome.One))
	assert.Equal(t, "111", ind.Genome.String())

	ind.AddGene(genome.Zero)
	assert.Equal(t, "1110", ind.Genome.String())

	require.NoError(t, ind.RemoveGene(0))
	assert.Equal(t, "110", ind.Genome.String())

	assert.ErrorIs(t, ind.SetGene(3, genome.One), ErrGeneIndexOutOfRange)
	assert.ErrorIs(t, ind.RemoveGene(-1), ErrGeneIndexOutOfRange)
}
