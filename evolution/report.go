package evolution

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/signalnine/bitevolve/bindings/resultfb"
	"github.com/signalnine/bitevolve/genome"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0"

// ErrMalformedResult is returned when a binary result cannot be decoded.
var ErrMalformedResult = errors.New("malformed run result")

// Report represents the serializable summary of a finished run.
type Report struct {
	// Configuration
	Config *EvolutionConfig `json:"config"`

	// Result
	Outcome      Outcome           `json:"outcome"`
	Generation   int               `json:"generation"`
	Best         *IndividualData   `json:"best"`
	BestEver     *IndividualData   `json:"best_ever,omitempty"`
	StatsHistory []GenerationStats `json:"stats_history"`

	// Metadata
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// IndividualData represents a serializable individual.
type IndividualData struct {
	Genome  genome.Genome `json:"genome"`
	Fitness int           `json:"fitness"`
}

func individualData(ind *Individual) *IndividualData {
	if ind == nil {
		return nil
	}
	return &IndividualData{Genome: ind.Genome.Clone(), Fitness: ind.Fitness}
}

// Report builds the report of a run that ended with res.
func (e *EvolutionEngine) Report(res *Result) *Report {
	return &Report{
		Config:       e.Config,
		Outcome:      res.Outcome,
		Generation:   res.Generation,
		Best:         individualData(res.Best),
		BestEver:     individualData(res.BestEver),
		StatsHistory: e.StatsHistory,
		Timestamp:    time.Now(),
		Version:      ReportVersion,
	}
}

// SaveReport writes report to path. Paths ending in ".fb" get the compact
// FlatBuffers result, anything else gets indented JSON.
func SaveReport(path string, report *Report) error {
	if report == nil || report.Best == nil {
		return fmt.Errorf("no result to save")
	}

	var data []byte
	if filepath.Ext(path) == ".fb" {
		var seed int64
		if report.Config != nil {
			seed = report.Config.Seed
		}
		data = encodeRunResult(report.Generation, report.Outcome, report.Best.Genome, report.Best.Fitness, seed)
	} else {
		var err error
		data, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	// Write to temp file first, then rename (atomic)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to finalize report: %w", err)
	}

	return nil
}

// LoadReport loads a JSON report from a file.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}

// EncodeResult serializes res as a resultfb.RunResult buffer.
func EncodeResult(res *Result, seed int64) []byte {
	return encodeRunResult(res.Generation, res.Outcome, res.Best.Genome, res.Best.Fitness, seed)
}

func encodeRunResult(generation int, outcome Outcome, g genome.Genome, fitness int, seed int64) []byte {
	builder := flatbuffers.NewBuilder(64 + len(g))

	genomeOffset := builder.CreateByteVector(g.Bytes())

	resultfb.RunResultStart(builder)
	resultfb.RunResultAddGeneration(builder, uint32(generation))
	resultfb.RunResultAddOutcome(builder, fbOutcome(outcome))
	resultfb.RunResultAddFitness(builder, int32(fitness))
	resultfb.RunResultAddGenome(builder, genomeOffset)
	resultfb.RunResultAddSeed(builder, seed)
	root := resultfb.RunResultEnd(builder)
	resultfb.FinishRunResultBuffer(builder, root)

	return builder.FinishedBytes()
}

func fbOutcome(o Outcome) resultfb.Outcome {
	if o == OutcomeSuccess {
		return resultfb.OutcomeSuccess
	}
	return resultfb.OutcomeExhausted
}

// DecodeResult reads a buffer written by EncodeResult. It returns the result,
// without BestEver, and the seed of the run.
func DecodeResult(buf []byte) (res *Result, seed int64, err error) {
	if len(buf) < flatbuffers.SizeUOffsetT {
		return nil, 0, fmt.Errorf("%w: %d bytes", ErrMalformedResult, len(buf))
	}
	// Offsets in a corrupt buffer make the accessors index out of range
	defer func() {
		if r := recover(); r != nil {
			res, seed, err = nil, 0, fmt.Errorf("%w: %v", ErrMalformedResult, r)
		}
	}()

	fb := resultfb.GetRootAsRunResult(buf, 0)

	outcome := OutcomeExhausted
	if fb.Outcome() == resultfb.OutcomeSuccess {
		outcome = OutcomeSuccess
	}

	best := NewIndividual(genome.FromBytes(fb.GenomeBytes()))
	best.Fitness = int(fb.Fitness())

	return &Result{
		Best:       best,
		Generation: int(fb.Generation()),
		Outcome:    outcome,
	}, fb.Seed(), nil
}
