// Package annotation provides line-oriented readers for genome annotation
// files (GFF3, BED, chromosome tables), exposing a uniform record view.
package annotation

// Strand is the orientation of a feature on its chromosome.
type Strand int8

const (
	// Unknown means the strand was absent or unrecognized.
	Unknown Strand = iota
	// Direct is the forward (+) strand.
	Direct
	// Reverse is the backward (-) strand.
	Reverse
)

// ParseStrand converts a strand column value to a Strand.
// Anything other than "+" or "-" maps to Unknown.
func ParseStrand(s string) Strand {
	switch s {
	case "+":
		return Direct
	case "-":
		return Reverse
	default:
		return Unknown
	}
}

// String renders the strand as its single-character column form.
func (s Strand) String() string {
	switch s {
	case Direct:
		return "+"
	case Reverse:
		return "-"
	default:
		return "."
	}
}

// Record is the uniform view of one annotation line, whatever the source
// format. Start and End are kept exactly as written; 0- vs 1-based
// conventions are the caller's concern.
type Record struct {
	Chr    string
	Start  int
	End    int
	ID     string // empty when the format carries no id column
	Strand Strand
	Class  string // feature class (GFF3 column 3, "" when the column is ".")
	Score  string // raw score column, if any

	// Classed is true when the source format has a feature-class column
	// at all. Formats without one (BED, chromosome tables) are exempt
	// from class filtering even when a filter is configured.
	Classed bool
}

// HasID reports whether the record carries an identifier.
func (r *Record) HasID() bool {
	return r.ID != ""
}
