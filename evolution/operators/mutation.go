// Package operators provides genetic mutation operators for evolving bit genomes.
package operators

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/signalnine/bitevolve/genome"
)

// ErrUnsupportedMutation is returned for mutation kinds outside ADD, REMOVE and FLIP.
var ErrUnsupportedMutation = errors.New("unsupported mutation strategy")

// MutationStrategy names one of the genome edits.
type MutationStrategy string

const (
	MutationAdd    MutationStrategy = "ADD"
	MutationRemove MutationStrategy = "REMOVE"
	MutationFlip   MutationStrategy = "FLIP"
)

// Mutable is a genome holder that can be edited in place.
type Mutable interface {
	GenomeLength() int
	SetGene(index int, bit genome.Bit) error
	AddGene(bit genome.Bit)
	RemoveGene(index int) error
}

// MutationOperator is the interface for all mutation operators.
type MutationOperator interface {
	// Mutate edits m in place.
	Mutate(m Mutable, rng *rand.Rand) error

	// Probability returns the probability of this mutation taking effect once chosen.
	Probability() float64

	// Name returns a human-readable name for this operator.
	Name() string

	// Strategy returns the kind of edit.
	Strategy() MutationStrategy
}

// BaseMutation provides common functionality for mutation operators.
type BaseMutation struct {
	probability float64
	name        string
}

// Probability returns the mutation probability.
func (m *BaseMutation) Probability() float64 {
	return m.probability
}

// Name returns the mutation name.
func (m *BaseMutation) Name() string {
	return m.name
}

// ShouldApply returns true if the mutation should be applied based on probability.
func (m *BaseMutation) ShouldApply(rng *rand.Rand) bool {
	return rng.Float64() < m.probability
}

// AddBitMutation appends a random gene to the end of the genome.
type AddBitMutation struct {
	BaseMutation
}

// NewAddBitMutation creates an ADD operator.
func NewAddBitMutation(probability float64) *AddBitMutation {
	return &AddBitMutation{BaseMutation{probability: probability, name: "add_bit"}}
}

func (m *AddBitMutation) Strategy() MutationStrategy { return MutationAdd }

func (m *AddBitMutation) Mutate(target Mutable, rng *rand.Rand) error {
	target.AddGene(genome.RandomBit(rng))
	return nil
}

// RemoveBitMutation removes the gene at a random index. A genome is never
// shrunk below one gene.
type RemoveBitMutation struct {
	BaseMutation
}

// NewRemoveBitMutation creates a REMOVE operator.
func NewRemoveBitMutation(probability float64) *RemoveBitMutation {
	return &RemoveBitMutation{BaseMutation{probability: probability, name: "remove_bit"}}
}

func (m *RemoveBitMutation) Strategy() MutationStrategy { return MutationRemove }

func (m *RemoveBitMutation) Mutate(target Mutable, rng *rand.Rand) error {
	length := target.GenomeLength()
	if length <= 1 {
		return nil
	}
	return target.RemoveGene(rng.Intn(length))
}

// FlipBitMutation overwrites the gene at a random index with a fresh random
// gene, which may equal the old one.
type FlipBitMutation struct {
	BaseMutation
}

// NewFlipBitMutation creates a FLIP operator.
func NewFlipBitMutation(probability float64) *FlipBitMutation {
	return &FlipBitMutation{BaseMutation{probability: probability, name: "flip_bit"}}
}

func (m *FlipBitMutation) Strategy() MutationStrategy { return MutationFlip }

func (m *FlipBitMutation) Mutate(target Mutable, rng *rand.Rand) error {
	length := target.GenomeLength()
	if length == 0 {
		return nil
	}
	index := rng.Intn(length)
	return target.SetGene(index, genome.RandomBit(rng))
}

// NewMutation builds the operator for a strategy.
func NewMutation(strategy MutationStrategy, probability float64) (MutationOperator, error) {
	switch strategy {
	case MutationAdd:
		return NewAddBitMutation(probability), nil
	case MutationRemove:
		return NewRemoveBitMutation(probability), nil
	case MutationFlip:
		return NewFlipBitMutation(probability), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMutation, strategy)
	}
}

// Registry holds all available mutation operators.
type Registry struct {
	operators []MutationOperator
}

// NewRegistry creates a new mutation operator registry.
func NewRegistry() *Registry {
	return &Registry{
		operators: make([]MutationOperator, 0),
	}
}

// Register adds a mutation operator to the registry.
func (r *Registry) Register(op MutationOperator) {
	r.operators = append(r.operators, op)
}

// Operators returns all registered operators.
func (r *Registry) Operators() []MutationOperator {
	return r.operators
}

// ApplyOne picks one registered operator uniformly at random and applies it
// if its own probability gate passes. It reports whether an edit was attempted.
func (r *Registry) ApplyOne(m Mutable, rng *rand.Rand) (bool, error) {
	if len(r.operators) == 0 {
		return false, nil
	}

	op := r.operators[rng.Intn(len(r.operators))]
	if rng.Float64() >= op.Probability() {
		return false, nil
	}
	if err := op.Mutate(m, rng); err != nil {
		return false, fmt.Errorf("%s: %w", op.Name(), err)
	}
	return true, nil
}

// Rates are the probabilities that drive the default pipeline.
type Rates struct {
	Mutation  float64 // per-individual chance of a mutation attempt
	BitAdd    float64
	BitRemove float64
	BitFlip   float64
}

// MutationPipeline wraps a Registry behind an outer per-individual gate.
type MutationPipeline struct {
	registry *Registry
	rate     float64
}

// NewMutationPipeline creates a new mutation pipeline from a registry.
func NewMutationPipeline(registry *Registry, rate float64) *MutationPipeline {
	return &MutationPipeline{registry: registry, rate: rate}
}

// Rate returns the per-individual mutation rate.
func (p *MutationPipeline) Rate() float64 {
	return p.rate
}

// Registry returns the operators behind the pipeline.
func (p *MutationPipeline) Registry() *Registry {
	return p.registry
}

// Apply mutates m in place: with probability Rate one operator is chosen and
// gated by its own probability. It reports whether an edit was attempted.
func (p *MutationPipeline) Apply(m Mutable, rng *rand.Rand) (bool, error) {
	if rng.Float64() >= p.rate {
		return false, nil
	}
	return p.registry.ApplyOne(m, rng)
}

// DefaultStrategies is the registration order of the default pipeline.
var DefaultStrategies = []MutationStrategy{MutationAdd, MutationRemove, MutationFlip}

// Of returns the rate of one mutation strategy, 0 for unknown ones.
func (r Rates) Of(strategy MutationStrategy) float64 {
	switch strategy {
	case MutationAdd:
		return r.BitAdd
	case MutationRemove:
		return r.BitRemove
	case MutationFlip:
		return r.BitFlip
	default:
		return 0
	}
}

// NewPipeline registers one operator per strategy, in order, with its rate
// taken from rates.
func NewPipeline(rates Rates, strategies ...MutationStrategy) (*MutationPipeline, error) {
	registry := NewRegistry()
	for _, strategy := range strategies {
		op, err := NewMutation(strategy, rates.Of(strategy))
		if err != nil {
			return nil, err
		}
		registry.Register(op)
	}
	return NewMutationPipeline(registry, rates.Mutation), nil
}

// NewDefaultPipeline registers ADD, REMOVE and FLIP with the given rates.
func NewDefaultPipeline(rates Rates) (*MutationPipeline, error) {
	return NewPipeline(rates, DefaultStrategies...)
}
