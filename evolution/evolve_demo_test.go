package evolution

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/signalnine/bitevolve/genome"
)

// TestEvolutionDemo runs a visible evolution demo with progress output.
// Run with: go test ./evolution -v -run TestEvolutionDemo -count=1
func TestEvolutionDemo(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping demo in short mode")
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("  EVOLUTION DEMO - Bit String Evolution")
	fmt.Println(strings.Repeat("=", 60))

	config := DefaultConfig()
	config.Solution = genome.MustParse("1011001110001011")
	config.MaxGeneration = 200
	config.PopulationSize = 60
	config.MaxGenomeLength = 24
	config.MutationRate = 0.2
	config.Seed = time.Now().UnixNano()

	fmt.Printf("\nConfiguration:\n")
	fmt.Printf("  Solution:      %s\n", config.Solution)
	fmt.Printf("  Population:    %d\n", config.PopulationSize)
	fmt.Printf("  Generations:   %d\n", config.MaxGeneration)
	fmt.Printf("  Selection:     %s\n", config.SelectionStrategy)
	fmt.Printf("  Crossover:     %s (%.0f%%)\n", config.CrossoverStrategy, config.CrossoverRate*100)
	fmt.Printf("  Seed:          %d\n", config.Seed)

	engine, err := NewEvolutionEngine(config)
	if err != nil {
		t.Fatalf("Invalid config: %v", err)
	}

	// Track progress
	startTime := time.Now()
	engine.OnGenerationComplete = func(stats GenerationStats) {
		if stats.Generation%10 != 0 {
			return
		}
		elapsed := time.Since(startTime).Seconds()
		fmt.Printf("\n  Gen %3d | Best: %3.0f | Avg: %7.3f | Diversity: %.4f | Time: %.1fs",
			stats.Generation, stats.BestFitness, stats.AvgFitness, stats.Diversity, elapsed)
	}

	fmt.Println("\n\nStarting evolution...")
	fmt.Println(strings.Repeat("-", 60))

	res, err := engine.Evolve()
	if err != nil {
		t.Fatalf("Evolution failed: %v", err)
	}

	totalTime := time.Since(startTime)

	fmt.Println("\n" + strings.Repeat("-", 60))
	fmt.Println("\nEvolution Complete!")
	fmt.Printf("  Total Time:    %.2fs\n", totalTime.Seconds())
	fmt.Printf("  Outcome:       %s at generation %d\n", res.Outcome, res.Generation)
	fmt.Printf("  Best Fitness:  %d\n", engine.BestEver.Fitness)
	fmt.Printf("  Best Genome:   %s\n", engine.BestEver.Genome)

	// Show top 5 individuals
	fmt.Println("\nTop 5 Individuals:")
	for i, ind := range engine.GetBestIndividuals(5) {
		fmt.Printf("  %d. %s: %d\n", i+1, ind.Genome, ind.Fitness)
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
}
