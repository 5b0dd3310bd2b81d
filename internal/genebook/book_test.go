package genebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syntenics/genescape/internal/annotation"
	"github.com/syntenics/genescape/internal/ingest"
	"github.com/syntenics/genescape/internal/landscape"
	"github.com/syntenics/genescape/internal/store"
)

// buildWindow is the ceiling the test database is written with; queries
// may ask for any window up to it.
const buildWindow = 3

// testStore persists two species; ath/chr1 holds genes a..e with
// families 1..5 at increasing coordinates.
func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Reset())

	chr1 := make([]ingest.Annotation, 5)
	for i := range chr1 {
		strand := annotation.Direct
		if i%2 == 1 {
			strand = annotation.Reverse
		}
		chr1[i] = ingest.Annotation{
			ID:     []string{"a", "b", "c", "d", "e"}[i],
			Family: i + 1,
			Chr:    "chr1",
			Start:  (i + 1) * 100,
			Stop:   (i+1)*100 + 50,
			Strand: strand,
		}
	}
	genome := ingest.Genome{
		"ath": {"chr1": chr1},
		"zmays": {
			"chr8": {{ID: "m1", Family: 7, Chr: "chr8", Start: 10, Stop: 30, Strand: annotation.Reverse}},
		},
	}
	require.NoError(t, s.WriteGenome(genome, buildWindow))
	require.NoError(t, s.CreateIndices())
	return s
}

// books builds one book per strategy over the same store so tests can
// assert identical behavior across all three.
func books(t *testing.T, s *store.Store, window int, ids []string) map[string]Book {
	t.Helper()
	inMemory, err := InMemory(s, window)
	require.NoError(t, err)
	cached, err := Cached(s, window, ids)
	require.NoError(t, err)
	return map[string]Book{
		"memory": inMemory,
		"cached": cached,
		"inline": Inline(s, window),
	}
}

func landscapeFamilies(g *Gene) []int {
	var out []int
	for _, tg := range g.Landscape() {
		out = append(out, tg.Family)
	}
	return out
}

func TestLookupAcrossStrategies(t *testing.T) {
	s := testStore(t)
	for name, book := range books(t, s, buildWindow, []string{"c", "m1"}) {
		t.Run(name, func(t *testing.T) {
			g, err := book.Lookup("c")
			require.NoError(t, err)
			assert.Equal(t, "c", g.ID)
			assert.Equal(t, "ath", g.Species)
			assert.Equal(t, "chr1", g.Chr)
			assert.Equal(t, 300, g.Start)
			assert.Equal(t, 350, g.Stop)
			assert.Equal(t, annotation.Direct, g.Strand)
			assert.Equal(t, 3, g.Family)
			assert.Equal(t, []int{1, 2, 3, 4, 5}, landscapeFamilies(g))

			// strand survives the round trip through the tail strings
			assert.Equal(t, annotation.Direct, g.Left[0].Strand)
			assert.Equal(t, annotation.Reverse, g.Left[1].Strand)
			assert.Equal(t, annotation.Reverse, g.Right[0].Strand)
		})
	}
}

func TestLookupUnknownIDAcrossStrategies(t *testing.T) {
	s := testStore(t)
	for name, book := range books(t, s, buildWindow, []string{"c"}) {
		t.Run(name, func(t *testing.T) {
			_, err := book.Lookup("absent")
			require.Error(t, err)
			assert.True(t, IsUnknownID(err))
			var unknown *UnknownIDError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, "absent", unknown.ID)
		})
	}
}

// A query window smaller than the build ceiling truncates both tails,
// keeping the entries nearest to the gene.
func TestLookupTruncatesToQueryWindow(t *testing.T) {
	s := testStore(t)
	for name, book := range books(t, s, 1, []string{"c"}) {
		t.Run(name, func(t *testing.T) {
			g, err := book.Lookup("c")
			require.NoError(t, err)
			require.Len(t, g.Left, 1)
			require.Len(t, g.Right, 1)
			assert.Equal(t, 2, g.Left[0].Family)
			assert.Equal(t, 4, g.Right[0].Family)
			assert.Equal(t, []int{2, 3, 4}, landscapeFamilies(g))
		})
	}
}

func TestLookupEdgeGenes(t *testing.T) {
	s := testStore(t)
	for name, book := range books(t, s, buildWindow, []string{"a", "m1"}) {
		t.Run(name, func(t *testing.T) {
			g, err := book.Lookup("a")
			require.NoError(t, err)
			assert.Empty(t, g.Left)
			assert.Equal(t, []int{1, 2, 3, 4}, landscapeFamilies(g))

			lone, err := book.Lookup("m1")
			require.NoError(t, err)
			assert.Empty(t, lone.Left)
			assert.Empty(t, lone.Right)
			assert.Equal(t, []int{7}, landscapeFamilies(lone))
		})
	}
}

func TestSpeciesAcrossStrategies(t *testing.T) {
	s := testStore(t)
	for name, book := range books(t, s, buildWindow, []string{"c", "m1"}) {
		t.Run(name, func(t *testing.T) {
			species, err := book.Species()
			require.NoError(t, err)
			assert.Equal(t, []string{"ath", "zmays"}, species)
		})
	}
}

// The cached strategy only sees the ids it was built with; everything
// else is an ordinary miss.
func TestCachedRestrictsToRequestedIDs(t *testing.T) {
	s := testStore(t)
	book, err := Cached(s, buildWindow, []string{"b", "d"})
	require.NoError(t, err)

	_, err = book.Lookup("b")
	require.NoError(t, err)
	_, err = book.Lookup("c")
	assert.True(t, IsUnknownID(err))

	species, err := book.Species()
	require.NoError(t, err)
	assert.Equal(t, []string{"ath"}, species)
}

func TestGetMutInMemory(t *testing.T) {
	s := testStore(t)
	book, err := InMemory(s, buildWindow)
	require.NoError(t, err)

	g, err := book.GetMut("c")
	require.NoError(t, err)
	g.Family = 99

	again, err := book.Lookup("c")
	require.NoError(t, err)
	assert.Equal(t, 99, again.Family)

	_, err = book.GetMut("absent")
	assert.True(t, IsUnknownID(err))
}

// Lookup hands out copies: mutating a looked-up gene must not leak into
// the book.
func TestLookupReturnsCopies(t *testing.T) {
	s := testStore(t)
	book, err := InMemory(s, buildWindow)
	require.NoError(t, err)

	g, err := book.Lookup("c")
	require.NoError(t, err)
	g.Family = 99
	g.Left[0].Family = 99

	again, err := book.Lookup("c")
	require.NoError(t, err)
	assert.Equal(t, 3, again.Family)
	assert.Equal(t, 1, again.Left[0].Family)
}

func TestGetMutInlineIsImmutable(t *testing.T) {
	s := testStore(t)
	book := Inline(s, buildWindow)

	_, err := book.GetMut("c")
	assert.ErrorIs(t, err, ErrImmutableBook)
}

func TestLandscapeOrder(t *testing.T) {
	g := &Gene{
		ID: "x", Family: 10, Strand: annotation.Direct,
		Left:  []landscape.TailGene{{Family: 1}, {Family: 2}},
		Right: []landscape.TailGene{{Family: 3}},
	}
	assert.Equal(t, []int{1, 2, 10, 3}, landscapeFamilies(g))
}
