package evolution

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/signalnine/bitevolve/evolution/fitness"
	"github.com/signalnine/bitevolve/genome"
)

// diversitySamplePairs bounds the pairwise comparisons made for large populations.
const diversitySamplePairs = 100

// Individual represents a single genome with its fitness score.
type Individual struct {
	Genome  genome.Genome
	Fitness int
}

// NewIndividual wraps a genome. Fitness stays 0 until a Population scores it.
func NewIndividual(g genome.Genome) *Individual {
	return &Individual{Genome: g}
}

// Clone creates a deep copy of the individual.
func (ind *Individual) Clone() *Individual {
	return &Individual{
		Genome:  ind.Genome.Clone(),
		Fitness: ind.Fitness,
	}
}

// GenomeLength returns the number of genes.
func (ind *Individual) GenomeLength() int {
	return len(ind.Genome)
}

// SetGene overwrites the gene at index.
func (ind *Individual) SetGene(index int, bit genome.Bit) error {
	if index < 0 || index >= len(ind.Genome) {
		return fmt.Errorf("%w: %d (length %d)", ErrGeneIndexOutOfRange, index, len(ind.Genome))
	}
	ind.Genome[index] = bit
	return nil
}

// AddGene appends a gene to the end of the genome.
func (ind *Individual) AddGene(bit genome.Bit) {
	ind.Genome = append(ind.Genome, bit)
}

// RemoveGene deletes the gene at index, shifting the tail left.
func (ind *Individual) RemoveGene(index int) error {
	if index < 0 || index >= len(ind.Genome) {
		return fmt.Errorf("%w: %d (length %d)", ErrGeneIndexOutOfRange, index, len(ind.Genome))
	}
	ind.Genome = append(ind.Genome[:index], ind.Genome[index+1:]...)
	return nil
}

func (ind *Individual) String() string {
	return fmt.Sprintf("Individual{genome=%s, fitness=%d}", ind.Genome, ind.Fitness)
}

// FitterThan orders individuals by fitness, descending.
func FitterThan(a, b *Individual) bool {
	return a.Fitness > b.Fitness
}

// SortByFitness returns a copy of individuals sorted by fitness (descending).
// Individuals with equal fitness keep their relative order.
func SortByFitness(individuals []*Individual) []*Individual {
	sorted := make([]*Individual, len(individuals))
	copy(sorted, individuals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return FitterThan(sorted[i], sorted[j])
	})
	return sorted
}

// Population represents a collection of individuals.
type Population struct {
	Individuals []*Individual
	Generation  int
}

// NewPopulation creates a population from a list of individuals and scores
// every one of them with eval.
func NewPopulation(eval *fitness.Evaluator, individuals []*Individual) *Population {
	p := &Population{
		Individuals: individuals,
		Generation:  0,
	}
	p.UpdateFitness(eval)
	return p
}

// NewRandomPopulation creates size random individuals whose genome lengths are
// drawn uniformly from [minLength, maxLength].
func NewRandomPopulation(eval *fitness.Evaluator, size, minLength, maxLength int, rng *rand.Rand) *Population {
	individuals := make([]*Individual, 0, size)
	for i := 0; i < size; i++ {
		length := rng.Intn(maxLength-minLength+1) + minLength
		individuals = append(individuals, NewIndividual(genome.Random(length, rng)))
	}
	return NewPopulation(eval, individuals)
}

// NewFixedLengthPopulation creates size random individuals of the same genome length.
func NewFixedLengthPopulation(eval *fitness.Evaluator, size, length int, rng *rand.Rand) *Population {
	individuals := make([]*Individual, 0, size)
	for i := 0; i < size; i++ {
		individuals = append(individuals, NewIndividual(genome.Random(length, rng)))
	}
	return NewPopulation(eval, individuals)
}

// UpdateFitness recomputes every individual's fitness.
func (p *Population) UpdateFitness(eval *fitness.Evaluator) {
	for _, ind := range p.Individuals {
		ind.Fitness = eval.Evaluate(ind.Genome)
	}
}

// Size returns the number of individuals in the population.
func (p *Population) Size() int {
	return len(p.Individuals)
}

// Fittest returns the individual with the highest fitness. The first of
// several equally fit individuals wins.
func (p *Population) Fittest() (*Individual, error) {
	if len(p.Individuals) == 0 {
		return nil, ErrEmptyPopulation
	}

	best := p.Individuals[0]
	for _, ind := range p.Individuals[1:] {
		if ind.Fitness > best.Fitness {
			best = ind
		}
	}
	return best, nil
}

// Contains reports whether any individual's genome is an exact solution.
func (p *Population) Contains(eval *fitness.Evaluator) bool {
	for _, ind := range p.Individuals {
		if eval.IsSolution(ind.Genome) {
			return true
		}
	}
	return false
}

// AverageFitness returns the mean fitness.
func (p *Population) AverageFitness() float64 {
	if len(p.Individuals) == 0 {
		return 0.0
	}

	var sum int
	for _, ind := range p.Individuals {
		sum += ind.Fitness
	}
	return float64(sum) / float64(len(p.Individuals))
}

// AverageGenomeLength returns the mean number of genes per individual.
func (p *Population) AverageGenomeLength() float64 {
	if len(p.Individuals) == 0 {
		return 0.0
	}

	var sum int
	for _, ind := range p.Individuals {
		sum += len(ind.Genome)
	}
	return float64(sum) / float64(len(p.Individuals))
}

// FitnessValues returns the fitness of every individual in population order.
func (p *Population) FitnessValues() []float64 {
	values := make([]float64, len(p.Individuals))
	for i, ind := range p.Individuals {
		values[i] = float64(ind.Fitness)
	}
	return values
}

// ComputeDiversity calculates population diversity using pairwise distances.
// Higher = more diverse, Lower = converged.
// Returns diversity score in range [0.0, 1.0].
func (p *Population) ComputeDiversity() float64 {
	n := len(p.Individuals)
	if n < 2 {
		return 0.0
	}

	var totalDistance float64
	var pairCount int

	if n <= 50 {
		// Small population: check all pairs
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				totalDistance += genome.Distance(p.Individuals[i].Genome, p.Individuals[j].Genome)
				pairCount++
			}
		}
	} else {
		// Large population: fixed stride over pairs so the run's rng stream is untouched
		for k := 0; k < diversitySamplePairs; k++ {
			i := (k * 37) % n
			j := (i + 1 + k%(n-1)) % n
			totalDistance += genome.Distance(p.Individuals[i].Genome, p.Individuals[j].Genome)
			pairCount++
		}
	}

	return totalDistance / float64(pairCount)
}

func (p *Population) String() string {
	return fmt.Sprintf("Population{generation=%d, individuals=%v}", p.Generation, p.Individuals)
}
