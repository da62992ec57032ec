package operators

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/bitevolve/genome"
)

var errIndex = errors.New("index out of range")

// bits is a minimal Mutable backed by a genome.
type bits struct {
	g genome.Genome
}

func (b *bits) GenomeLength() int { return len(b.g) }

func (b *bits) SetGene(i int, bit genome.Bit) error {
	if i < 0 || i >= len(b.g) {
		return errIndex
	}
	b.g[i] = bit
	return nil
}

func (b *bits) AddGene(bit genome.Bit) { b.g = append(b.g, bit) }

func (b *bits) RemoveGene(i int) error {
	if i < 0 || i >= len(b.g) {
		return errIndex
	}
	b.g = append(b.g[:i], b.g[i+1:]...)
	return nil
}

func TestAddBitMutation(t *testing.T) {
	m := &bits{g: genome.MustParse("101")}
	rng := rand.New(rand.NewSource(12345))

	require.NoError(t, NewAddBitMutation(1.0).Mutate(m, rng))

	assert.Len(t, m.g, 4)
	assert.Equal(t, "101", m.g[:3].String(), "existing genes must be untouched")
}

func TestRemoveBitMutation(t *testing.T) {
	m := &bits{g: genome.MustParse("1111")}
	rng := rand.New(rand.NewSource(12345))

	require.NoError(t, NewRemoveBitMutation(1.0).Mutate(m, rng))
	assert.Equal(t, "111", m.g.String())
}

func TestRemoveBitMutationKeepsLastGene(t *testing.T) {
	m := &bits{g: genome.MustParse("1")}
	rng := rand.New(rand.NewSource(12345))

	for i := 0; i < 10; i++ {
		require.NoError(t, NewRemoveBitMutation(1.0).Mutate(m, rng))
	}
	assert.Equal(t, "1", m.g.String())
}

func TestFlipBitMutationKeepsLength(t *testing.T) {
	m := &bits{g: genome.MustParse("00000000")}
	rng := rand.New(rand.NewSource(12345))

	changed := false
	for i := 0; i < 50; i++ {
		require.NoError(t, NewFlipBitMutation(1.0).Mutate(m, rng))
		assert.Len(t, m.g, 8)
		if m.g.String() != "00000000" {
			changed = true
		}
	}
	assert.True(t, changed, "expected at least one gene to change over 50 flips")
}

func TestNewMutation(t *testing.T) {
	for _, s := range []MutationStrategy{MutationAdd, MutationRemove, MutationFlip} {
		op, err := NewMutation(s, 0.5)
		require.NoError(t, err)
		assert.Equal(t, s, op.Strategy())
		assert.Equal(t, 0.5, op.Probability())
	}

	_, err := NewMutation("SWAP", 0.5)
	assert.ErrorIs(t, err, ErrUnsupportedMutation)
}

func TestNewPipeline(t *testing.T) {
	pipeline, err := NewPipeline(Rates{Mutation: 1, BitAdd: 0.7}, MutationAdd)
	require.NoError(t, err)

	ops := pipeline.Registry().Operators()
	require.Len(t, ops, 1)
	assert.Equal(t, MutationAdd, ops[0].Strategy())
	assert.Equal(t, 0.7, ops[0].Probability())

	_, err = NewPipeline(Rates{Mutation: 1}, MutationAdd, "SWAP")
	assert.ErrorIs(t, err, ErrUnsupportedMutation)
}

func TestRegistryApplyOneRespectsOperatorRate(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewAddBitMutation(0))
	registry.Register(NewRemoveBitMutation(0))
	registry.Register(NewFlipBitMutation(0))

	m := &bits{g: genome.MustParse("1010")}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		applied, err := registry.ApplyOne(m, rng)
		require.NoError(t, err)
		assert.False(t, applied)
	}
	assert.Equal(t, "1010", m.g.String())
}

func TestRegistryApplyOneUsesEveryOperator(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewAddBitMutation(1))
	registry.Register(NewRemoveBitMutation(1))

	m := &bits{g: genome.MustParse("1010")}
	rng := rand.New(rand.NewSource(99))

	grew, shrank := false, false
	for i := 0; i < 100; i++ {
		before := len(m.g)
		applied, err := registry.ApplyOne(m, rng)
		require.NoError(t, err)
		require.True(t, applied)
		switch {
		case len(m.g) > before:
			grew = true
		case len(m.g) < before:
			shrank = true
		}
	}
	assert.True(t, grew)
	assert.True(t, shrank)
}

func TestPipelineZeroRateNeverMutates(t *testing.T) {
	pipeline, err := NewDefaultPipeline(Rates{Mutation: 0, BitAdd: 1, BitRemove: 1, BitFlip: 1})
	require.NoError(t, err)
	m := &bits{g: genome.MustParse("1100")}
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		applied, err := pipeline.Apply(m, rng)
		require.NoError(t, err)
		assert.False(t, applied)
	}
	assert.Equal(t, "1100", m.g.String())
}

func TestPipelineFullRateAlwaysAttempts(t *testing.T) {
	pipeline, err := NewDefaultPipeline(Rates{Mutation: 1, BitAdd: 1, BitRemove: 1, BitFlip: 1})
	require.NoError(t, err)
	m := &bits{g: genome.MustParse("1100")}
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		applied, err := pipeline.Apply(m, rng)
		require.NoError(t, err)
		assert.True(t, applied)
		assert.GreaterOrEqual(t, len(m.g), 1)
	}
}

func TestDefaultPipelineOrder(t *testing.T) {
	pipeline, err := NewDefaultPipeline(Rates{Mutation: 0.3, BitAdd: 0.1, BitRemove: 0.2, BitFlip: 0.4})
	require.NoError(t, err)

	ops := pipeline.Registry().Operators()
	require.Len(t, ops, 3)
	assert.Equal(t, MutationAdd, ops[0].Strategy())
	assert.Equal(t, MutationRemove, ops[1].Strategy())
	assert.Equal(t, MutationFlip, ops[2].Strategy())
	assert.Equal(t, 0.4, ops[2].Probability())
	assert.Equal(t, 0.3, pipeline.Rate())
}
