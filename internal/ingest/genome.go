package ingest

import (
	"sort"

	"github.com/syntenics/genescape/internal/annotation"
)

// Annotation is one retained gene after filtering, id extraction and
// family resolution.
type Annotation struct {
	ID     string
	Family int
	Chr    string
	Start  int
	Stop   int
	Strand annotation.Strand
}

// Genome accumulates retained genes per species and chromosome.
// Within a chromosome, genes are kept sorted ascending by start
// coordinate once ingestion of the species file completes; ties keep
// their original encounter order.
type Genome map[string]map[string][]Annotation

// NewGenome creates an empty genome accumulator.
func NewGenome() Genome {
	return make(Genome)
}

// add appends a gene to its species/chromosome bucket.
func (g Genome) add(species string, a Annotation) {
	chrs, ok := g[species]
	if !ok {
		chrs = make(map[string][]Annotation)
		g[species] = chrs
	}
	chrs[a.Chr] = append(chrs[a.Chr], a)
}

// sortSpecies stable-sorts every chromosome of a species by start.
func (g Genome) sortSpecies(species string) {
	for _, genes := range g[species] {
		sort.SliceStable(genes, func(i, j int) bool {
			return genes[i].Start < genes[j].Start
		})
	}
}

// Species returns the species names in sorted order.
func (g Genome) Species() []string {
	names := make([]string, 0, len(g))
	for s := range g {
		names = append(names, s)
	}
	sort.Strings(names)
	return names
}

// Chromosomes returns a species' chromosome names in sorted order.
func (g Genome) Chromosomes(species string) []string {
	chrs := make([]string, 0, len(g[species]))
	for c := range g[species] {
		chrs = append(chrs, c)
	}
	sort.Strings(chrs)
	return chrs
}

// Genes returns the sorted gene list of one chromosome.
func (g Genome) Genes(species, chr string) []Annotation {
	return g[species][chr]
}

// GeneCount returns the total number of retained genes.
func (g Genome) GeneCount() int {
	count := 0
	for _, chrs := range g {
		for _, genes := range chrs {
			count += len(genes)
		}
	}
	return count
}
