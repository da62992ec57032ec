// Package main provides the bitevolve CLI for evolving bit strings toward a target.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/signalnine/bitevolve/config"
	"github.com/signalnine/bitevolve/evolution"
	"github.com/signalnine/bitevolve/evolution/fitness"
	"github.com/signalnine/bitevolve/metrics"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// CLI flags
var (
	configPath  string
	generations int
	seed        int64
	reportPath  string
	metricsAddr string
	verbose     bool
	showVersion bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "Configuration file (.yaml, .yml, .toml or .json)")
	flag.IntVar(&generations, "generations", 0, "Override maxGeneration from the configuration")
	flag.Int64Var(&seed, "seed", 0, "Override the random seed from the configuration")
	flag.StringVar(&reportPath, "report", "", "Write a run report (.json, or .fb for the binary result)")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose output")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("bitevolve %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	if configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -config is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags given explicitly win over the file
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyOverrides(cfg, set)

	// Print banner
	printBanner(cfg)

	engine, err := evolution.NewEvolutionEngine(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Setup metrics endpoint
	var recorder *metrics.Recorder
	if metricsAddr != "" {
		recorder = metrics.NewRecorder()
		mux := http.NewServeMux()
		mux.Handle("/metrics", recorder.Handler())
		server := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "\nWarning: metrics server stopped: %v\n", err)
			}
		}()
		defer server.Close()
		fmt.Printf("Serving metrics on %s/metrics\n\n", metricsAddr)
	}

	// Setup signal handler for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nInterrupted!")
		os.Exit(130)
	}()

	// Track progress
	startTime := time.Now()
	engine.OnGenerationComplete = func(stats evolution.GenerationStats) {
		elapsed := time.Since(startTime)

		fmt.Printf("\rGen %4d/%d | Best: %3.0f | Avg: %7.3f | Len: %5.1f | Div: %.4f | %s",
			stats.Generation, cfg.MaxGeneration,
			stats.BestFitness, stats.AvgFitness, stats.AvgGenomeLength, stats.Diversity,
			formatDuration(elapsed))

		if verbose && engine.BestEver != nil {
			fmt.Printf("\n  Best genome: %s\n", engine.BestEver.Genome)
		}

		if recorder != nil {
			recorder.ObserveGeneration(stats)
		}
	}

	// Run evolution
	fmt.Print("Starting evolution...\n\n")
	result, err := engine.Evolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nEvolution failed: %v\n", err)
		os.Exit(1)
	}
	if recorder != nil {
		recorder.ObserveResult(result)
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\n\nEvolution complete in %s\n", formatDuration(totalTime))

	// Save report
	if reportPath != "" {
		if err := evolution.SaveReport(reportPath, engine.Report(result)); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving report: %v\n", err)
			os.Exit(1)
		}
	}

	// Print summary
	printSummary(cfg, result, totalTime)
}

// applyOverrides copies the flags named in set onto cfg.
func applyOverrides(cfg *evolution.EvolutionConfig, set map[string]bool) {
	if set["seed"] {
		cfg.Seed = seed
	}
	if set["generations"] {
		cfg.MaxGeneration = generations
	}
	if set["verbose"] {
		cfg.Verbose = verbose
	}
}

func printBanner(cfg *evolution.EvolutionConfig) {
	fmt.Println()
	fmt.Println("╔════════════════════════════════════════════════════════════╗")
	fmt.Println("║                  Bit String Evolution                      ║")
	fmt.Println("╚════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Solution:       %s\n", cfg.Solution)
	fmt.Printf("  Genome Length:  %d-%d\n", cfg.MinGenomeLength, cfg.MaxGenomeLength)
	fmt.Printf("  Population:     %d\n", cfg.PopulationSize)
	fmt.Printf("  Generations:    %d\n", cfg.MaxGeneration)
	fmt.Printf("  Seed:           %d\n", cfg.Seed)
	if cfg.SelectionStrategy == evolution.SelectionTournament {
		fmt.Printf("  Selection:      %s (size %d)\n", cfg.SelectionStrategy, cfg.TournamentSize)
	} else {
		fmt.Printf("  Selection:      %s\n", cfg.SelectionStrategy)
	}
	fmt.Printf("  Crossover:      %s (rate %.2f, leftover %s)\n",
		cfg.CrossoverStrategy, cfg.CrossoverRate, cfg.CrossoverLeftoverStrategy)
	fmt.Printf("  Mutation:       %s (rate %.2f, add %.2f, remove %.2f, flip %.2f)\n",
		cfg.MutationTargetStrategy, cfg.MutationRate, cfg.BitAddRate, cfg.BitRemoveRate, cfg.BitFlipRate)
	if reportPath != "" {
		fmt.Printf("  Report:         %s\n", reportPath)
	}
	fmt.Println()
}

func printSummary(cfg *evolution.EvolutionConfig, result *evolution.Result, totalTime time.Duration) {
	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("                      EVOLUTION SUMMARY")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("  Total Time:      %s\n", formatDuration(totalTime))
	fmt.Printf("  Outcome:         %s\n", result.Outcome)
	fmt.Printf("  Generation:      %d\n", result.Generation)
	fmt.Printf("  Best Fitness:    %d / %d\n", result.Best.Fitness, fitness.MaxScore(cfg.Solution))
	fmt.Printf("  Best Genome:     %s\n", result.Best.Genome)
	if result.BestEver != nil && result.BestEver.Fitness > result.Best.Fitness {
		fmt.Printf("  Best Ever:       %s (fitness=%d)\n", result.BestEver.Genome, result.BestEver.Fitness)
	}
	if reportPath != "" {
		fmt.Printf("  Report:          %s\n", reportPath)
	}
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
