package genome

import (
	"fmt"
)

// ParseError reports an invalid character in a bit string.
type ParseError struct {
	Offset int
	Char   rune
}

func (e ParseError) Error() string {
	return fmt.Sprintf("genome: invalid character %q at offset %d", e.Char, e.Offset)
}

// InvalidBitError reports a gene that is neither Zero nor One. Decoders that
// fill a Genome element by element, such as YAML sequences, can produce one.
type InvalidBitError struct {
	Offset int
	Value  Bit
}

func (e InvalidBitError) Error() string {
	return fmt.Sprintf("genome: invalid bit %d at offset %d", e.Value, e.Offset)
}

// Validate returns an InvalidBitError for the first gene outside {Zero, One}.
func (g Genome) Validate() error {
	for i, b := range g {
		if b != Zero && b != One {
			return InvalidBitError{Offset: i, Value: b}
		}
	}
	return nil
}

// Parse decodes a bit string such as "10110" or "[1, 0, 1]".
// Whitespace, '_', ',', '[' and ']' are ignored.
func Parse(s string) (Genome, error) {
	g := make(Genome, 0, len(s))
	for i, c := range s {
		switch c {
		case '0':
			g = append(g, Zero)
		case '1':
			g = append(g, One)
		case ' ', '\t', '\n', '\r', '_', ',', '[', ']':
			// separators
		default:
			return nil, ParseError{Offset: i, Char: c}
		}
	}
	return g, nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests and
// literals.
func MustParse(s string) Genome {
	g, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return g
}

// MarshalText encodes the genome as a bit string.
func (g Genome) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText decodes a bit string into the genome.
func (g *Genome) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Bytes returns one byte per gene (0 or 1).
func (g Genome) Bytes() []byte {
	out := make([]byte, len(g))
	for i, b := range g {
		out[i] = byte(b)
	}
	return out
}

// FromBytes builds a genome from one byte per gene. Any non-zero byte is One.
func FromBytes(data []byte) Genome {
	g := make(Genome, len(data))
	for i, b := range data {
		if b != 0 {
			g[i] = One
		}
	}
	return g
}
