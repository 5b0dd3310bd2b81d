// Package genebook serves gene landscape lookups over a persisted
// synteny index, through three interchangeable retrieval strategies.
package genebook

import (
	"errors"
	"fmt"

	"github.com/syntenics/genescape/internal/annotation"
	"github.com/syntenics/genescape/internal/landscape"
)

// ErrImmutableBook is returned by GetMut on strategies that hold no
// in-memory state to mutate.
var ErrImmutableBook = errors.New("inline gene books cannot be accessed mutably")

// UnknownIDError reports a lookup for an id absent from the index.
type UnknownIDError struct {
	ID string
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("id %q not found in the gene book", e.ID)
}

// IsUnknownID reports whether err is an unknown-id lookup miss.
func IsUnknownID(err error) bool {
	var u *UnknownIDError
	return errors.As(err, &u)
}

// Gene is one query-time record: a gene with its window-truncated left
// and right landscape tails.
type Gene struct {
	ID      string
	Species string
	Chr     string
	Start   int
	Stop    int
	Strand  annotation.Strand
	Family  int
	// Left is ordered farthest-to-nearest, Right nearest-first.
	Left  []landscape.TailGene
	Right []landscape.TailGene
}

// Landscape returns the canonical local gene-order view: the left tail,
// then the gene itself, then the right tail.
func (g *Gene) Landscape() []landscape.TailGene {
	all := make([]landscape.TailGene, 0, len(g.Left)+1+len(g.Right))
	all = append(all, g.Left...)
	all = append(all, landscape.TailGene{Family: g.Family, Strand: g.Strand})
	all = append(all, g.Right...)
	return all
}

// clone returns a deep copy so map-backed lookups hand out values that
// cannot alias the stored gene.
func (g *Gene) clone() *Gene {
	c := *g
	c.Left = append([]landscape.TailGene(nil), g.Left...)
	c.Right = append([]landscape.TailGene(nil), g.Right...)
	return &c
}
