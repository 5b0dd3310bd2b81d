package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syntenics/genescape/internal/annotation"
	"github.com/syntenics/genescape/internal/ingest"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Reset())
	return s
}

// testGenome is one species with five genes on chr1 (families 1..5,
// alternating strand) and one gene on chr2.
func testGenome() ingest.Genome {
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
	return ingest.Genome{
		"ath": {
			"chr1": chr1,
			"chr2": {{ID: "z", Family: 9, Chr: "chr2", Start: 10, Stop: 20, Strand: annotation.Direct}},
		},
	}
}

func TestWriteGenomeAndSelectAll(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteGenome(testGenome(), 2))
	require.NoError(t, s.CreateIndices())

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	rows := make(map[string]*Row)
	require.NoError(t, s.SelectAll(func(r *Row) error {
		rows[r.ID] = r
		return nil
	}))
	require.Len(t, rows, 6)

	// middle gene of chr1: two neighbors on each side
	c := rows["c"]
	assert.Equal(t, "ath", c.Species)
	assert.Equal(t, "chr1", c.Chr)
	assert.Equal(t, 3, c.Family)
	assert.Equal(t, 300, c.Start)
	assert.Equal(t, 350, c.Stop)
	assert.Equal(t, "+", c.Direction)
	assert.Equal(t, "+1.-2", c.LeftTail)
	assert.Equal(t, "-4.+5", c.RightTail)

	// edges: tails shorter than the window
	assert.Equal(t, "", rows["a"].LeftTail)
	assert.Equal(t, "-2.+3", rows["a"].RightTail)
	assert.Equal(t, "+3.-4", rows["e"].LeftTail)
	assert.Equal(t, "", rows["e"].RightTail)

	// lone gene on its chromosome
	assert.Equal(t, "", rows["z"].LeftTail)
	assert.Equal(t, "", rows["z"].RightTail)
}

func TestSelectOne(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteGenome(testGenome(), 2))

	r, err := s.SelectOne("d")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 4, r.Family)
	assert.Equal(t, "-", r.Direction)

	r, err = s.SelectOne("nope")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestSelectIDs(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteGenome(testGenome(), 2))

	var ids []string
	require.NoError(t, s.SelectIDs([]string{"b", "z", "nope"}, func(r *Row) error {
		ids = append(ids, r.ID)
		return nil
	}))
	assert.ElementsMatch(t, []string{"b", "z"}, ids)

	require.NoError(t, s.SelectIDs(nil, func(r *Row) error {
		t.Fatal("callback must not run for an empty id set")
		return nil
	}))
}

func TestSpecies(t *testing.T) {
	s := openInMemory(t)
	genome := testGenome()
	genome["zmays"] = map[string][]ingest.Annotation{
		"chr8": {{ID: "m1", Family: 3, Chr: "chr8", Start: 5, Stop: 9, Strand: annotation.Reverse}},
	}
	require.NoError(t, s.WriteGenome(genome, 1))

	species, err := s.Species()
	require.NoError(t, err)
	assert.Equal(t, []string{"ath", "zmays"}, species)
}

// Reset drops and recreates the table on every run.
func TestResetDropsExistingRows(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteGenome(testGenome(), 2))

	require.NoError(t, s.Reset())
	count, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWriteGenomeZeroWindow(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteGenome(testGenome(), 0))

	require.NoError(t, s.SelectAll(func(r *Row) error {
		assert.Empty(t, r.LeftTail)
		assert.Empty(t, r.RightTail)
		return nil
	}))
}
