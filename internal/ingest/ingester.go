// Package ingest turns raw per-species annotation files into sorted,
// family-tagged gene records grouped by species and chromosome.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"

	"github.com/syntenics/genescape/internal/annotation"
	"github.com/syntenics/genescape/internal/family"
)

// Ingester reads genome annotation files, extracts species and canonical
// gene ids with configured regular expressions, resolves gene families
// and accumulates the survivors into a Genome.
//
// Ingestion is single-threaded on purpose: family ids and
// first-occurrence deduplication both depend on a stable traversal order.
type Ingester struct {
	speciesRe    *regexp.Regexp
	idRe         *regexp.Regexp
	featureClass string
	families     *family.Index
	chromTables  bool
	logger       *zap.Logger
}

// New creates an ingester. The species pattern must declare a named
// capture group "species" and the id pattern a named group "id"; both
// requirements are checked here, before any file is touched.
// featureClass restricts GFF3 records to one feature class; pass "" to
// accept every class.
func New(speciesPattern, idPattern, featureClass string, families *family.Index) (*Ingester, error) {
	speciesRe, err := regexp.Compile(speciesPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid species pattern %q: %w", speciesPattern, err)
	}
	if speciesRe.SubexpIndex("species") < 0 {
		return nil, &MissingCaptureGroupError{Group: "species", Pattern: speciesPattern}
	}

	idRe, err := regexp.Compile(idPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid id pattern %q: %w", idPattern, err)
	}
	if idRe.SubexpIndex("id") < 0 {
		return nil, &MissingCaptureGroupError{Group: "id", Pattern: idPattern}
	}

	return &Ingester{
		speciesRe:    speciesRe,
		idRe:         idRe,
		featureClass: featureClass,
		families:     families,
		logger:       zap.NewNop(),
	}, nil
}

// SetLogger sets the logger for progress and diagnostic messages.
func (n *Ingester) SetLogger(l *zap.Logger) {
	n.logger = l
}

// SetChromTables switches the ingester to the chromosome-table format
// for every input file, bypassing extension-based format selection.
func (n *Ingester) SetChromTables(enabled bool) {
	n.chromTables = enabled
}

// IngestFile processes one annotation file into the genome and returns
// the species name extracted from its base name.
func (n *Ingester) IngestFile(path string, genome Genome) (string, error) {
	n.logger.Info("processing genome file", zap.String("file", path))

	base := filepath.Base(path)
	m := n.speciesRe.FindStringSubmatch(base)
	if m == nil {
		return "", &SpeciesNotFoundError{File: path}
	}
	species := m[n.speciesRe.SubexpIndex("species")]
	n.logger.Info("species detected", zap.String("species", species))

	var reader annotation.Reader
	var err error
	if n.chromTables {
		reader, err = annotation.OpenChromTable(path)
	} else {
		reader, err = annotation.Open(path)
	}
	if err != nil {
		return "", err
	}
	defer reader.Close()

	seen := make(map[string]bool)
	for {
		rec, err := reader.Next()
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		if rec == nil {
			break
		}
		if n.featureClass != "" && rec.Classed && rec.Class != n.featureClass {
			continue
		}

		if !rec.HasID() {
			return "", &NoIDError{Record: fmt.Sprintf("%s:%d-%d", rec.Chr, rec.Start, rec.End)}
		}
		idMatch := n.idRe.FindStringSubmatch(rec.ID)
		if idMatch == nil {
			return "", &IDNotFoundError{RawID: rec.ID}
		}
		id := idMatch[n.idRe.SubexpIndex("id")]

		fam, ok := n.families.Resolve(id)
		if !ok {
			n.logger.Debug("skipping id not found in families", zap.String("id", id))
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		genome.add(species, Annotation{
			ID:     id,
			Family: fam,
			Chr:    rec.Chr,
			Start:  rec.Start,
			Stop:   rec.End,
			Strand: rec.Strand,
		})
	}

	if len(genome[species]) == 0 {
		n.logger.Warn("species appears to be empty", zap.String("species", species))
	} else {
		genome.sortSpecies(species)
	}
	return species, nil
}

// IngestTree processes files and directories sequentially, expanding
// directories to their immediate files in sorted listing order.
func (n *Ingester) IngestTree(paths []string, genome Genome) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat genome source %s: %w", path, err)
		}
		if !info.IsDir() {
			if _, err := n.IngestFile(path, genome); err != nil {
				return err
			}
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return fmt.Errorf("read genome directory %s: %w", path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if _, err := n.IngestFile(filepath.Join(path, entry.Name()), genome); err != nil {
				return err
			}
		}
	}
	return nil
}
