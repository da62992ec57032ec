package evolution

import (
	"errors"
	"fmt"
	"math"

	"github.com/signalnine/bitevolve/genome"
)

// EvolutionConfig holds configuration for an evolutionary run.
type EvolutionConfig struct {
	Solution        genome.Genome `yaml:"solution" toml:"solution" json:"solution"`                      // Target bit string
	MinGenomeLength int           `yaml:"minGenomeLength" toml:"minGenomeLength" json:"minGenomeLength"` // Shortest initial genome
	MaxGenomeLength int           `yaml:"maxGenomeLength" toml:"maxGenomeLength" json:"maxGenomeLength"` // Longest initial genome
	MaxGeneration   int           `yaml:"maxGeneration" toml:"maxGeneration" json:"maxGeneration"`       // Last generation index (inclusive)
	PopulationSize  int           `yaml:"populationSize" toml:"populationSize" json:"populationSize"`    // Number of individuals per generation
	Seed            int64         `yaml:"seed" toml:"seed" json:"seed"`                                  // Seed of the run's only random source

	SelectionStrategy SelectionStrategy `yaml:"selectionStrategy" toml:"selectionStrategy" json:"selectionStrategy"`
	TournamentSize    int               `yaml:"tournamentSize" toml:"tournamentSize" json:"tournamentSize"` // Contestants per tournament

	MutationTargetStrategy MutationTargetStrategy `yaml:"mutationTargetStrategy" toml:"mutationTargetStrategy" json:"mutationTargetStrategy"`
	MutationRate           float64                `yaml:"mutationRate" toml:"mutationRate" json:"mutationRate"`    // Chance an individual gets a mutation attempt
	BitAddRate             float64                `yaml:"bitAddRate" toml:"bitAddRate" json:"bitAddRate"`          // Chance a chosen ADD takes effect
	BitRemoveRate          float64                `yaml:"bitRemoveRate" toml:"bitRemoveRate" json:"bitRemoveRate"` // Chance a chosen REMOVE takes effect
	BitFlipRate            float64                `yaml:"bitFlipRate" toml:"bitFlipRate" json:"bitFlipRate"`       // Chance a chosen FLIP takes effect

	CrossoverStrategy         CrossoverStrategy `yaml:"crossoverStrategy" toml:"crossoverStrategy" json:"crossoverStrategy"`
	CrossoverRate             float64           `yaml:"crossoverRate" toml:"crossoverRate" json:"crossoverRate"` // Share of each generation bred by crossover
	CrossoverLeftoverStrategy LeftoverStrategy  `yaml:"crossoverLeftoverStrategy" toml:"crossoverLeftoverStrategy" json:"crossoverLeftoverStrategy"`

	Verbose bool `yaml:"verbose" toml:"verbose" json:"verbose"` // Enable verbose logging
}

// DefaultConfig returns a default evolution configuration. Solution has no
// default and must be set.
func DefaultConfig() *EvolutionConfig {
	return &EvolutionConfig{
		MinGenomeLength:           8,
		MaxGenomeLength:           16,
		MaxGeneration:             1000,
		PopulationSize:            100,
		Seed:                      0,
		SelectionStrategy:         SelectionTournament,
		TournamentSize:            3,
		MutationTargetStrategy:    MutateChildren,
		MutationRate:              0.1,
		BitAddRate:                0.5,
		BitRemoveRate:             0.5,
		BitFlipRate:               1.0,
		CrossoverStrategy:         CrossoverUniform,
		CrossoverRate:             0.7,
		CrossoverLeftoverStrategy: LeftoverKeepFittestParent,
		Verbose:                   false,
	}
}

// EliteCount is the number of survivors carried into each next generation.
func (c *EvolutionConfig) EliteCount() int {
	return int(math.Round(float64(c.PopulationSize) * (1.0 - c.CrossoverRate)))
}

// breeds reports whether generations need children at all.
func (c *EvolutionConfig) breeds() bool {
	return c.EliteCount() < c.PopulationSize
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Validate checks the configuration before a run. All problems are reported
// together as joined ValidationErrors; nil means valid. Strategy names are
// checked when the engine builds its operators.
func (c *EvolutionConfig) Validate() error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if len(c.Solution) == 0 {
		fail("solution", "target solution must not be empty")
	} else if err := c.Solution.Validate(); err != nil {
		fail("solution", "%v", err)
	}
	if c.PopulationSize <= 0 {
		fail("populationSize", "must be positive, got %d", c.PopulationSize)
	}
	if c.MinGenomeLength < 1 {
		fail("minGenomeLength", "must be at least 1, got %d", c.MinGenomeLength)
	}
	if c.MinGenomeLength > c.MaxGenomeLength {
		fail("maxGenomeLength", "minGenomeLength %d exceeds maxGenomeLength %d", c.MinGenomeLength, c.MaxGenomeLength)
	}
	if c.MaxGeneration < 0 {
		fail("maxGeneration", "must not be negative, got %d", c.MaxGeneration)
	}

	rates := []struct {
		field string
		value float64
	}{
		{"mutationRate", c.MutationRate},
		{"bitAddRate", c.BitAddRate},
		{"bitRemoveRate", c.BitRemoveRate},
		{"bitFlipRate", c.BitFlipRate},
		{"crossoverRate", c.CrossoverRate},
	}
	for _, r := range rates {
		if math.IsNaN(r.value) || r.value < 0 || r.value > 1 {
			fail(r.field, "must be within [0, 1], got %v", r.value)
		}
	}

	// The remaining checks depend on a sane population size and crossover rate
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	elite := c.EliteCount()
	breeds := c.breeds()

	if breeds && elite < 1 {
		fail("crossoverRate", "%v leaves no survivors to breed %d children from", c.CrossoverRate, c.PopulationSize)
	}
	if breeds && c.SelectionStrategy == SelectionElitism && elite < 2 {
		fail("crossoverRate", "ELITISM needs at least two survivors to pick two distinct parents, got %d", elite)
	}
	if c.SelectionStrategy == SelectionTournament {
		// Survivors are drawn from the population, parents from the survivors
		pool := c.PopulationSize
		if breeds {
			pool = elite
		}
		if c.TournamentSize < 1 || c.TournamentSize > pool {
			fail("tournamentSize", "must be within [1, %d], got %d", pool, c.TournamentSize)
		}
	}
	if breeds && c.MaxGenomeLength < 2 && (c.MutationRate == 0 || c.BitAddRate == 0) {
		fail("maxGenomeLength", "genomes can never grow past one gene, so crossover can never cut a parent")
	}

	return errors.Join(errs...)
}
