package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/syntenics/genescape/internal/ingest"
	"github.com/syntenics/genescape/internal/landscape"
)

// WriteGenome persists every gene of the genome with its landscape tails
// computed at the given build-time window ceiling. All rows of one
// chromosome are written inside a single transaction and committed
// together, so a reader never observes a partially written chromosome.
// Nothing is guaranteed across chromosomes or species.
func (s *Store) WriteGenome(genome ingest.Genome, window int) error {
	for _, species := range genome.Species() {
		s.logger.Debug("inserting species", zap.String("species", species))
		for _, chr := range genome.Chromosomes(species) {
			if err := s.writeChromosome(species, chr, genome.Genes(species, chr), window); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeChromosome writes one chromosome's sorted gene list in one
// transaction.
func (s *Store) writeChromosome(species, chr string, genes []ingest.Annotation, window int) error {
	s.logger.Debug("inserting chromosome",
		zap.String("species", species),
		zap.String("chr", chr),
		zap.Int("genes", len(genes)))

	tails := make([]landscape.TailGene, len(genes))
	for i, g := range genes {
		tails[i] = landscape.TailGene{Family: g.Family, Strand: g.Strand}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO genomes
		(species, chr, ancestral_id, id, start, stop, direction, left_tail_ids, right_tail_ids)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for j, g := range genes {
		left := landscape.Serialize(landscape.LeftWindow(tails, j, window))
		right := landscape.Serialize(landscape.RightWindow(tails, j, window))
		if _, err := stmt.Exec(
			species, chr, g.Family, g.ID, g.Start, g.Stop,
			g.Strand.String(), left, right,
		); err != nil {
			return fmt.Errorf("insert gene %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit chromosome %s: %w", chr, err)
	}
	return nil
}
