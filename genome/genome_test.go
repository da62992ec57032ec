package genome

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		Name  string
		Input string
		Want  Genome
	}{
		{Name: "plain", Input: "10110", Want: Genome{One, Zero, One, One, Zero}},
		{Name: "list", Input: "[1, 0, 1]", Want: Genome{One, Zero, One}},
		{Name: "grouped", Input: "1010_0101", Want: Genome{One, Zero, One, Zero, Zero, One, Zero, One}},
		{Name: "empty", Input: "", Want: Genome{}},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			got, err := Parse(c.Input)
			require.NoError(t, err)
			assert.Equal(t, c.Want, got)
		})
	}
}

func TestParseInvalidCharacter(t *testing.T) {
	_, err := Parse("10x1")

	var perr ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Offset)
	assert.Equal(t, 'x', perr.Char)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, MustParse("1001").Validate())
	assert.NoError(t, Genome{}.Validate())

	err := Genome{One, Zero, 7, 2}.Validate()
	var bitErr InvalidBitError
	require.ErrorAs(t, err, &bitErr)
	assert.Equal(t, InvalidBitError{Offset: 2, Value: 7}, bitErr)
}

func TestStringRoundTrip(t *testing.T) {
	g := MustParse("0011101")
	assert.Equal(t, "0011101", g.String())

	text, err := g.MarshalText()
	require.NoError(t, err)

	var decoded Genome
	require.NoError(t, decoded.UnmarshalText(text))
	assert.True(t, g.Equal(decoded))
}

func TestCloneIsDeep(t *testing.T) {
	original := MustParse("1111")
	clone := original.Clone()

	clone[0] = Zero
	clone = append(clone, Zero)

	assert.Equal(t, "1111", original.String())
	assert.Equal(t, "01110", clone.String())
}

func TestEqual(t *testing.T) {
	assert.True(t, MustParse("101").Equal(MustParse("101")))
	assert.False(t, MustParse("101").Equal(MustParse("100")))
	assert.False(t, MustParse("101").Equal(MustParse("1010")))
	assert.True(t, Genome{}.Equal(nil))
}

func TestRandomIsDeterministic(t *testing.T) {
	a := Random(64, rand.New(rand.NewSource(7)))
	b := Random(64, rand.New(rand.NewSource(7)))

	assert.Len(t, a, 64)
	assert.True(t, a.Equal(b))
	for _, bit := range a {
		assert.Contains(t, []Bit{Zero, One}, bit)
	}
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0.0, Distance(MustParse("1010"), MustParse("1010")))
	assert.Equal(t, 1.0, Distance(MustParse("1010"), MustParse("0101")))
	assert.Equal(t, 0.5, Distance(MustParse("10"), MustParse("1011")))
	assert.Equal(t, 0.0, Distance(nil, nil))
}

func TestBytesRoundTrip(t *testing.T) {
	g := MustParse("1001")
	assert.Equal(t, []byte{1, 0, 0, 1}, g.Bytes())
	assert.True(t, g.Equal(FromBytes([]byte{1, 0, 0, 7})))
}
