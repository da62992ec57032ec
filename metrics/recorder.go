// Package metrics exports run progress as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/signalnine/bitevolve/evolution"
)

const namespace = "bitevolve"

// Recorder tracks per-generation statistics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	generation      prometheus.Gauge
	bestFitness     prometheus.Gauge
	avgFitness      prometheus.Gauge
	worstFitness    prometheus.Gauge
	diversity       prometheus.Gauge
	avgGenomeLength prometheus.Gauge
	generations     prometheus.Counter
	runs            *prometheus.CounterVec
}

// NewRecorder creates a recorder with every metric registered.
func NewRecorder() *Recorder {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}

	r := &Recorder{
		registry:        prometheus.NewRegistry(),
		generation:      gauge("generation", "Index of the latest evaluated generation."),
		bestFitness:     gauge("best_fitness", "Best fitness in the latest generation."),
		avgFitness:      gauge("avg_fitness", "Mean fitness in the latest generation."),
		worstFitness:    gauge("worst_fitness", "Worst fitness in the latest generation."),
		diversity:       gauge("diversity", "Mean pairwise genome distance in the latest generation."),
		avgGenomeLength: gauge("avg_genome_length", "Mean genome length in the latest generation."),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generations evaluated.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished runs by outcome.",
		}, []string{"outcome"}),
	}

	r.registry.MustRegister(
		r.generation, r.bestFitness, r.avgFitness, r.worstFitness,
		r.diversity, r.avgGenomeLength, r.generations, r.runs,
	)
	return r
}

// ObserveGeneration records the statistics of one generation. It matches the
// signature of EvolutionEngine.OnGenerationComplete.
func (r *Recorder) ObserveGeneration(stats evolution.GenerationStats) {
	r.generation.Set(float64(stats.Generation))
	r.bestFitness.Set(stats.BestFitness)
	r.avgFitness.Set(stats.AvgFitness)
	r.worstFitness.Set(stats.WorstFitness)
	r.diversity.Set(stats.Diversity)
	r.avgGenomeLength.Set(stats.AvgGenomeLength)
	r.generations.Inc()
}

// ObserveResult counts a finished run.
func (r *Recorder) ObserveResult(res *evolution.Result) {
	r.runs.WithLabelValues(res.Outcome.String()).Inc()
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the recorder's metrics in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
