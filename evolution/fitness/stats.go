package fitness

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the fitness distribution of one generation.
type Summary struct {
	Best   float64 `json:"best"`
	Worst  float64 `json:"worst"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes best, worst, mean and sample standard deviation.
// An empty input yields the zero Summary; StdDev is 0 below two values.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	s := Summary{
		Best:  floats.Max(values),
		Worst: floats.Min(values),
	}
	if len(values) < 2 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	return s
}
