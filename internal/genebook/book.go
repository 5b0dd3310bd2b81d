package genebook

import (
	"sort"
	"sync"

	"github.com/syntenics/genescape/internal/annotation"
	"github.com/syntenics/genescape/internal/landscape"
	"github.com/syntenics/genescape/internal/store"
)

// Book looks up genes by id. The three strategies behave identically to
// callers: the same window truncation, the same landscape contract and
// the same unknown-id error kind, whatever the storage behind them.
type Book interface {
	// Lookup returns the gene for an id, or an *UnknownIDError.
	Lookup(id string) (*Gene, error)

	// GetMut returns the stored gene for in-place edits. Strategies
	// without resident state return ErrImmutableBook.
	GetMut(id string) (*Gene, error)

	// Species returns the distinct species present in the index.
	Species() ([]string, error)
}

// geneFromRow deserializes a persisted row and truncates its tails to
// the book's window. Truncation is asymmetric: the left tail keeps its
// last w entries (the nearest ones), the right tail its first w.
func geneFromRow(r *store.Row, window int) (*Gene, error) {
	left, err := landscape.Parse(r.LeftTail)
	if err != nil {
		return nil, err
	}
	right, err := landscape.Parse(r.RightTail)
	if err != nil {
		return nil, err
	}

	return &Gene{
		ID:      r.ID,
		Species: r.Species,
		Chr:     r.Chr,
		Start:   r.Start,
		Stop:    r.Stop,
		Strand:  annotation.ParseStrand(r.Direction),
		Family:  r.Family,
		Left:    landscape.TruncateLeft(left, window),
		Right:   landscape.TruncateRight(right, window),
	}, nil
}

// mapBook backs the full-preload and filtered-preload strategies: an
// id-to-gene map resident in memory, loaded once at construction.
type mapBook struct {
	genes   map[string]*Gene
	species []string
}

func loadMapBook(window int, load func(func(*store.Row) error) error) (*mapBook, error) {
	b := &mapBook{genes: make(map[string]*Gene)}
	speciesSet := make(map[string]bool)

	err := load(func(r *store.Row) error {
		g, err := geneFromRow(r, window)
		if err != nil {
			return err
		}
		b.genes[g.ID] = g
		speciesSet[g.Species] = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	for s := range speciesSet {
		b.species = append(b.species, s)
	}
	sort.Strings(b.species)
	return b, nil
}

// InMemory builds a full-preload book: every row is loaded into memory
// and lookups are pure map reads.
func InMemory(st *store.Store, window int) (Book, error) {
	return loadMapBook(window, st.SelectAll)
}

// Cached builds a filtered-preload book restricted, at the storage
// layer, to the given ids. Lookups behave exactly like InMemory within
// that subset.
func Cached(st *store.Store, window int, ids []string) (Book, error) {
	return loadMapBook(window, func(cb func(*store.Row) error) error {
		return st.SelectIDs(ids, cb)
	})
}

func (b *mapBook) Lookup(id string) (*Gene, error) {
	g, ok := b.genes[id]
	if !ok {
		return nil, &UnknownIDError{ID: id}
	}
	return g.clone(), nil
}

func (b *mapBook) GetMut(id string) (*Gene, error) {
	g, ok := b.genes[id]
	if !ok {
		return nil, &UnknownIDError{ID: id}
	}
	return g, nil
}

func (b *mapBook) Species() ([]string, error) {
	return b.species, nil
}

// inlineBook is the lazy strategy: no preload, one parameterized point
// query per lookup through a mutex-guarded store. Concurrent callers
// serialize on that single connection.
type inlineBook struct {
	mu     sync.Mutex
	st     *store.Store
	window int
}

// Inline builds a lazy book over an open store.
func Inline(st *store.Store, window int) Book {
	return &inlineBook{st: st, window: window}
}

func (b *inlineBook) Lookup(id string) (*Gene, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, err := b.st.SelectOne(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &UnknownIDError{ID: id}
	}
	return geneFromRow(r, b.window)
}

func (b *inlineBook) GetMut(id string) (*Gene, error) {
	return nil, ErrImmutableBook
}

func (b *inlineBook) Species() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.st.Species()
}
