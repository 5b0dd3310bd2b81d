// Package landscape computes and encodes the local gene-order context of
// a gene: the ordered (family, strand) pairs of its chromosomal neighbors
// within a window, split into a left and a right tail.
package landscape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/syntenics/genescape/internal/annotation"
)

// TailGene is one landscape entry: the family of a neighboring gene and
// its strand. Identity is the family alone; strand is carried as
// metadata. Use Equal rather than == when comparing.
type TailGene struct {
	Family int
	Strand annotation.Strand
}

// Equal reports whether two tail genes denote the same family.
// Strand is deliberately ignored.
func (t TailGene) Equal(o TailGene) bool {
	return t.Family == o.Family
}

// String renders the tail gene in its wire form, e.g. "+412" or ".7".
func (t TailGene) String() string {
	return t.Strand.String() + strconv.Itoa(t.Family)
}

// Serialize renders a tail as "."-joined wire tokens. An empty tail
// serializes to the empty string.
func Serialize(tail []TailGene) string {
	if len(tail) == 0 {
		return ""
	}
	tokens := make([]string, len(tail))
	for i, t := range tail {
		tokens[i] = t.String()
	}
	return strings.Join(tokens, ".")
}

// Parse decodes a serialized tail. Each token is an optional strand
// character (+, - or .; anything absent parses as Unknown) followed by
// the decimal family id. Parse(Serialize(tail)) reproduces tail exactly.
func Parse(s string) ([]TailGene, error) {
	if s == "" {
		return nil, nil
	}

	var tail []TailGene
	i := 0
	for {
		strand := annotation.Unknown
		if i < len(s) {
			switch s[i] {
			case '+':
				strand = annotation.Direct
				i++
			case '-':
				strand = annotation.Reverse
				i++
			case '.':
				i++
			}
		}
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j == i {
			return nil, fmt.Errorf("malformed tail token at offset %d in %q", i, s)
		}
		family, err := strconv.Atoi(s[i:j])
		if err != nil {
			return nil, fmt.Errorf("parse family id in %q: %w", s, err)
		}
		tail = append(tail, TailGene{Family: family, Strand: strand})

		if j == len(s) {
			return tail, nil
		}
		if s[j] != '.' {
			return nil, fmt.Errorf("malformed tail separator at offset %d in %q", j, s)
		}
		i = j + 1
	}
}

// LeftWindow returns the up-to-w tail genes preceding index j, ordered
// farthest-to-nearest left to right.
func LeftWindow(genes []TailGene, j, w int) []TailGene {
	lo := j - w
	if lo < 0 {
		lo = 0
	}
	return append([]TailGene(nil), genes[lo:j]...)
}

// RightWindow returns the up-to-w tail genes following index j, ordered
// nearest-first.
func RightWindow(genes []TailGene, j, w int) []TailGene {
	hi := j + 1 + w
	if hi > len(genes) {
		hi = len(genes)
	}
	return append([]TailGene(nil), genes[j+1:hi]...)
}

// TruncateLeft keeps the w entries nearest to the gene in a left tail,
// preserving farthest-to-nearest order. Because a left tail is stored
// farthest-first, that means keeping the last w entries.
func TruncateLeft(tail []TailGene, w int) []TailGene {
	if len(tail) <= w {
		return tail
	}
	return tail[len(tail)-w:]
}

// TruncateRight keeps the w entries nearest to the gene in a right tail.
// Right tails are stored nearest-first, so that is the first w entries.
func TruncateRight(tail []TailGene, w int) []TailGene {
	if len(tail) <= w {
		return tail
	}
	return tail[:w]
}
