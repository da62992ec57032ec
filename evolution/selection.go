package evolution

import (
	"fmt"
	"math/rand"
)

// Selector draws count individuals from a pool. Implementations never reorder
// the caller's slice.
type Selector interface {
	Select(pool []*Individual, count int, rng *rand.Rand) ([]*Individual, error)
	Strategy() SelectionStrategy
}

// NewSelector builds the selector for strategy. tournamentSize is only used by TOURNAMENT.
func NewSelector(strategy SelectionStrategy, tournamentSize int) (Selector, error) {
	switch strategy {
	case SelectionElitism:
		return EliteSelector{}, nil
	case SelectionRoulette:
		return RouletteSelector{}, nil
	case SelectionTournament:
		if tournamentSize < 1 {
			return nil, fmt.Errorf("%w: tournament size %d", ErrSelectionSize, tournamentSize)
		}
		return TournamentSelector{Size: tournamentSize}, nil
	default:
		return nil, unsupported("selection", string(strategy))
	}
}

// EliteSelector returns the fittest individuals, distinct and sorted by
// fitness descending. Ties keep pool order.
type EliteSelector struct{}

func (EliteSelector) Strategy() SelectionStrategy { return SelectionElitism }

func (EliteSelector) Select(pool []*Individual, count int, _ *rand.Rand) ([]*Individual, error) {
	if count < 0 || count > len(pool) {
		return nil, fmt.Errorf("%w: elite of %d from %d", ErrSelectionSize, count, len(pool))
	}
	return SelectElite(pool, count), nil
}

// RouletteSelector samples with replacement, proportionally to fitness.
// When the pool's total fitness is not positive every draw is uniform.
type RouletteSelector struct{}

func (RouletteSelector) Strategy() SelectionStrategy { return SelectionRoulette }

func (RouletteSelector) Select(pool []*Individual, count int, rng *rand.Rand) ([]*Individual, error) {
	if count < 0 || (count > 0 && len(pool) == 0) {
		return nil, fmt.Errorf("%w: roulette of %d from %d", ErrSelectionSize, count, len(pool))
	}

	totalFitness := 0
	for _, ind := range pool {
		totalFitness += ind.Fitness
	}

	winners := make([]*Individual, 0, count)
	for i := 0; i < count; i++ {
		winners = append(winners, RouletteWheelSelection(pool, totalFitness, rng))
	}
	return winners, nil
}

// TournamentSelector runs one tournament per requested individual and keeps
// the single fittest contestant of each.
type TournamentSelector struct {
	Size int
}

func (TournamentSelector) Strategy() SelectionStrategy { return SelectionTournament }

func (s TournamentSelector) Select(pool []*Individual, count int, rng *rand.Rand) ([]*Individual, error) {
	if count < 0 || s.Size < 1 || s.Size > len(pool) {
		return nil, fmt.Errorf("%w: tournament of %d from %d", ErrSelectionSize, s.Size, len(pool))
	}

	contestants := make([]*Individual, len(pool))
	copy(contestants, pool)

	winners := make([]*Individual, 0, count)
	for i := 0; i < count; i++ {
		winners = append(winners, TournamentSelection(contestants, s.Size, rng))
	}
	return winners, nil
}

// TournamentSelection shuffles contestants in place and returns the fittest of
// the first k. The first of several equally fit contestants wins.
func TournamentSelection(contestants []*Individual, k int, rng *rand.Rand) *Individual {
	if len(contestants) == 0 {
		return nil
	}

	if k > len(contestants) {
		k = len(contestants)
	}
	if k < 1 {
		k = 1
	}

	rng.Shuffle(len(contestants), func(i, j int) {
		contestants[i], contestants[j] = contestants[j], contestants[i]
	})

	best := contestants[0]
	for _, ind := range contestants[1:k] {
		if ind.Fitness > best.Fitness {
			best = ind
		}
	}
	return best
}

// SelectElite returns the top n individuals by fitness.
func SelectElite(pool []*Individual, n int) []*Individual {
	if n > len(pool) {
		n = len(pool)
	}
	if n < 1 {
		return []*Individual{}
	}
	return SortByFitness(pool)[:n]
}

// RouletteWheelSelection selects an individual using fitness-proportionate selection.
// totalFitness must be the sum of the pool's fitness values.
func RouletteWheelSelection(pool []*Individual, totalFitness int, rng *rand.Rand) *Individual {
	if len(pool) == 0 {
		return nil
	}

	// If the total is zero or negative the wheel has no area, use uniform selection
	if totalFitness <= 0 {
		return pool[rng.Intn(len(pool))]
	}

	// Spin the wheel
	spin := rng.Intn(totalFitness)
	cumulative := 0
	for _, ind := range pool {
		cumulative += ind.Fitness
		if cumulative >= spin {
			return ind
		}
	}

	// Unreachable: the cumulative sum ends at totalFitness > spin
	return pool[len(pool)-1]
}
