package evolution

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/signalnine/bitevolve/evolution/fitness"
	"github.com/signalnine/bitevolve/evolution/operators"
)

// Outcome is how a run terminated.
type Outcome int

const (
	// OutcomeSuccess means a generation contained an exact match of the target.
	OutcomeSuccess Outcome = iota
	// OutcomeExhausted means every generation ran without an exact match.
	OutcomeExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "success":
		*o = OutcomeSuccess
	case "exhausted":
		*o = OutcomeExhausted
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}

// Result is the output of a run.
type Result struct {
	Best       *Individual // Fittest individual of the last population
	Generation int         // Generation at which the run terminated
	Outcome    Outcome
	BestEver   *Individual // Fittest individual seen in any generation
}

// GenerationStats holds statistics for a single generation.
type GenerationStats struct {
	Generation      int       `json:"generation"`
	Size            int       `json:"size"`
	BestFitness     float64   `json:"best_fitness"`
	WorstFitness    float64   `json:"worst_fitness"`
	AvgFitness      float64   `json:"avg_fitness"`
	FitnessStdDev   float64   `json:"fitness_std_dev"`
	Diversity       float64   `json:"diversity"`
	AvgGenomeLength float64   `json:"avg_genome_length"`
	Timestamp       time.Time `json:"timestamp"`
}

// EvolutionEngine runs the evolutionary algorithm.
type EvolutionEngine struct {
	Config           *EvolutionConfig
	Population       *Population
	StatsHistory     []GenerationStats
	BestEver         *Individual
	Rng              *rand.Rand
	Evaluator        *fitness.Evaluator
	Selector         Selector
	Crossover        *CrossoverOperator
	MutationPipeline *operators.MutationPipeline

	mutateParents  bool
	mutateChildren bool

	// Callbacks for progress reporting
	OnGenerationComplete func(stats GenerationStats)
}

// NewEvolutionEngine validates config and builds every operator it names.
// The engine owns the run's only random source, seeded from config.Seed.
func NewEvolutionEngine(config *EvolutionConfig) (*EvolutionEngine, error) {
	if config == nil {
		return nil, fmt.Errorf("nil config")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	selector, err := NewSelector(config.SelectionStrategy, config.TournamentSize)
	if err != nil {
		return nil, err
	}
	crossover, err := NewCrossoverOperator(config.CrossoverStrategy, config.CrossoverLeftoverStrategy)
	if err != nil {
		return nil, err
	}
	mutateParents, mutateChildren, err := config.MutationTargetStrategy.targets()
	if err != nil {
		return nil, err
	}

	// Create mutation pipeline
	mutationPipeline, err := operators.NewDefaultPipeline(operators.Rates{
		Mutation:  config.MutationRate,
		BitAdd:    config.BitAddRate,
		BitRemove: config.BitRemoveRate,
		BitFlip:   config.BitFlipRate,
	})
	if err != nil {
		return nil, err
	}

	return &EvolutionEngine{
		Config:           config,
		Rng:              rand.New(rand.NewSource(config.Seed)),
		Evaluator:        fitness.NewEvaluator(config.Solution),
		Selector:         selector,
		Crossover:        crossover,
		MutationPipeline: mutationPipeline,
		mutateParents:    mutateParents,
		mutateChildren:   mutateChildren,
		StatsHistory:     make([]GenerationStats, 0, config.MaxGeneration+1),
	}, nil
}

// InitializePopulation creates the initial random population.
func (e *EvolutionEngine) InitializePopulation() {
	cfg := e.Config
	if cfg.Verbose {
		log.Printf("Initializing population of size %d (genome length %d-%d)",
			cfg.PopulationSize, cfg.MinGenomeLength, cfg.MaxGenomeLength)
	}

	if cfg.MinGenomeLength == cfg.MaxGenomeLength {
		e.Population = NewFixedLengthPopulation(e.Evaluator, cfg.PopulationSize, cfg.MinGenomeLength, e.Rng)
	} else {
		e.Population = NewRandomPopulation(e.Evaluator, cfg.PopulationSize, cfg.MinGenomeLength, cfg.MaxGenomeLength, e.Rng)
	}
}

// CreateOffspring creates the next generation via selection, crossover, and mutation.
// Survivors are copies, so the current population is left untouched.
func (e *EvolutionEngine) CreateOffspring() ([]*Individual, error) {
	size := e.Config.PopulationSize

	// 1. Selection - survivors carried over unconditionally
	selected, err := e.Selector.Select(e.Population.Individuals, e.Config.EliteCount(), e.Rng)
	if err != nil {
		return nil, fmt.Errorf("select survivors: %w", err)
	}
	survivors := make([]*Individual, 0, size)
	for _, ind := range selected {
		survivors = append(survivors, ind.Clone())
	}

	// 2. Mutation of survivors
	if e.mutateParents {
		for _, ind := range survivors {
			if _, err := e.MutationPipeline.Apply(ind, e.Rng); err != nil {
				return nil, fmt.Errorf("mutate survivor: %w", err)
			}
		}
	}

	// 3. Fill the rest with children of two survivors
	children := make([]*Individual, 0, size-len(survivors))
	for len(survivors)+len(children) < size {
		parents, err := e.Selector.Select(survivors, 2, e.Rng)
		if err != nil {
			return nil, fmt.Errorf("select parents: %w", err)
		}

		child := e.Crossover.Crossover(parents[0], parents[1], e.Rng)
		if e.mutateChildren {
			if _, err := e.MutationPipeline.Apply(child, e.Rng); err != nil {
				return nil, fmt.Errorf("mutate child: %w", err)
			}
		}
		children = append(children, child)
	}

	return append(survivors, children...), nil
}

// recordStats computes statistics for the current population, updates the
// best individual ever seen and notifies OnGenerationComplete.
func (e *EvolutionEngine) recordStats(best *Individual) GenerationStats {
	summary := fitness.Summarize(e.Population.FitnessValues())
	stats := GenerationStats{
		Generation:      e.Population.Generation,
		Size:            e.Population.Size(),
		BestFitness:     summary.Best,
		WorstFitness:    summary.Worst,
		AvgFitness:      summary.Mean,
		FitnessStdDev:   summary.StdDev,
		Diversity:       e.Population.ComputeDiversity(),
		AvgGenomeLength: e.Population.AverageGenomeLength(),
		Timestamp:       time.Now(),
	}
	e.StatsHistory = append(e.StatsHistory, stats)

	if e.BestEver == nil || best.Fitness > e.BestEver.Fitness {
		e.BestEver = best.Clone()
		if e.Config.Verbose {
			log.Printf("New best fitness: %d (%s)", best.Fitness, best.Genome)
		}
	}

	if e.OnGenerationComplete != nil {
		e.OnGenerationComplete(stats)
	}

	if e.Config.Verbose {
		log.Printf("Generation %d: best %.0f, avg %.3f, diversity %.4f",
			stats.Generation, stats.BestFitness, stats.AvgFitness, stats.Diversity)
	}
	return stats
}

// Evolve runs the evolutionary loop until a generation contains the target or
// generation MaxGeneration has been bred from.
//
// On exhaustion Result.Best is the fittest of the population bred from
// generation MaxGeneration. That population is neither checked for the target
// nor recorded in StatsHistory, so an exhausted run may still report the exact
// target as Best.
func (e *EvolutionEngine) Evolve() (*Result, error) {
	if e.Config.Verbose {
		log.Println("Starting evolutionary loop...")
	}

	// Initialize population if not already done
	if e.Population == nil {
		e.InitializePopulation()
	}

	for generation := 0; generation <= e.Config.MaxGeneration; generation++ {
		e.Population.Generation = generation

		best, err := e.Population.Fittest()
		if err != nil {
			return nil, err
		}
		e.recordStats(best)

		if e.Population.Contains(e.Evaluator) {
			if e.Config.Verbose {
				log.Printf("Solution found in %d generations", generation)
			}
			return &Result{
				Best:       best,
				Generation: generation,
				Outcome:    OutcomeSuccess,
				BestEver:   e.BestEver,
			}, nil
		}

		offspring, err := e.CreateOffspring()
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", generation, err)
		}
		e.Population = NewPopulation(e.Evaluator, offspring)
		e.Population.Generation = generation + 1
	}

	best, err := e.Population.Fittest()
	if err != nil {
		return nil, err
	}
	if e.BestEver == nil || best.Fitness > e.BestEver.Fitness {
		e.BestEver = best.Clone()
	}

	if e.Config.Verbose {
		log.Printf("No solution found in %d generations", e.Config.MaxGeneration)
	}
	return &Result{
		Best:       best,
		Generation: e.Config.MaxGeneration,
		Outcome:    OutcomeExhausted,
		BestEver:   e.BestEver,
	}, nil
}

// GetStats returns the stats history.
func (e *EvolutionEngine) GetStats() []GenerationStats {
	return e.StatsHistory
}

// GetBestIndividuals returns the top n individuals of the current population.
func (e *EvolutionEngine) GetBestIndividuals(n int) []*Individual {
	if e.Population == nil {
		return nil
	}
	return SelectElite(e.Population.Individuals, n)
}
