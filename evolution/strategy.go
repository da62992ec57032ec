package evolution

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedStrategy is returned when a configured strategy name is not
	// one of the known kinds of its family.
	ErrUnsupportedStrategy = errors.New("unsupported strategy")
	// ErrEmptyPopulation is returned when the fittest individual of an empty population is requested.
	ErrEmptyPopulation = errors.New("cannot find fittest individual in an empty population")
	// ErrSelectionSize is returned when a selection cannot be drawn from the pool it is given.
	ErrSelectionSize = errors.New("selection size exceeds pool")
	// ErrGeneIndexOutOfRange is returned by bounds-checked gene edits.
	ErrGeneIndexOutOfRange = errors.New("gene index out of range")
)

// SelectionStrategy chooses how survivors and parents are drawn.
type SelectionStrategy string

const (
	SelectionElitism    SelectionStrategy = "ELITISM"
	SelectionRoulette   SelectionStrategy = "ROULETTE"
	SelectionTournament SelectionStrategy = "TOURNAMENT"
)

// CrossoverStrategy chooses how two parents are combined.
type CrossoverStrategy string

const (
	CrossoverOnePoint   CrossoverStrategy = "ONE_POINT"
	CrossoverTwoPoint   CrossoverStrategy = "TWO_POINT"
	CrossoverUniform    CrossoverStrategy = "UNIFORM"
	CrossoverArithmetic CrossoverStrategy = "ARITHMETIC"
)

// LeftoverStrategy chooses what happens to the longer parent's tail after
// UNIFORM or ARITHMETIC crossover.
type LeftoverStrategy string

const (
	LeftoverKeepAllOrNothing  LeftoverStrategy = "KEEP_ALL_OR_NOTHING_RANDOMLY"
	LeftoverKeepOneOrNot      LeftoverStrategy = "KEEP_ONE_OR_NOT_RANDOMLY"
	LeftoverKeepFittestParent LeftoverStrategy = "KEEP_ONLY_FROM_FITTEST_PARENT"
)

// MutationTargetStrategy chooses which members of a generation are mutation candidates.
type MutationTargetStrategy string

const (
	MutateParents  MutationTargetStrategy = "PARENTS"
	MutateChildren MutationTargetStrategy = "CHILDREN"
	MutateBoth     MutationTargetStrategy = "BOTH"
)

// targets reports whether survivors and bred children are mutated.
func (s MutationTargetStrategy) targets() (parents, children bool, err error) {
	switch s {
	case MutateParents:
		return true, false, nil
	case MutateChildren:
		return false, true, nil
	case MutateBoth:
		return true, true, nil
	default:
		return false, false, unsupported("mutation target", string(s))
	}
}

func unsupported(family, name string) error {
	return fmt.Errorf("%w: %s %q", ErrUnsupportedStrategy, family, name)
}

func normalizeName(text []byte) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(string(text))), "-", "_")
}

// UnmarshalText accepts any case and dashes, e.g. "tournament" or "one-point".
// Unknown names are kept as-is and rejected when the operator is built.
func (s *SelectionStrategy) UnmarshalText(text []byte) error {
	*s = SelectionStrategy(normalizeName(text))
	return nil
}

func (s *CrossoverStrategy) UnmarshalText(text []byte) error {
	*s = CrossoverStrategy(normalizeName(text))
	return nil
}

func (s *LeftoverStrategy) UnmarshalText(text []byte) error {
	*s = LeftoverStrategy(normalizeName(text))
	return nil
}

func (s *MutationTargetStrategy) UnmarshalText(text []byte) error {
	*s = MutationTargetStrategy(normalizeName(text))
	return nil
}
