package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/syntenics/genescape/internal/family"
	"github.com/syntenics/genescape/internal/ingest"
	"github.com/syntenics/genescape/internal/store"
)

func newBuildCmd() *cobra.Command {
	var (
		familySources  []string
		genomeSources  []string
		dbPath         string
		speciesPattern string
		idPattern      string
		featureClass   string
		window         int
		chromTables    bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the synteny index database from family and genome files",
		Long: `Build reads gene-family membership files and per-species annotation
files (GFF3 or BED, optionally gzipped; chromosome tables with
--chrom-tables), computes each gene's landscape window, and writes the
result to a DuckDB database. The genomes table is dropped and fully
recreated on every run.`,
		Example: `  genescape build --families fams/ --genomes gff/ --db synteny.duckdb \
      --species-pattern '^(?P<species>[^.]*)' --id-pattern 'gene:(?P<id>.*)'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(familySources, genomeSources, dbPath,
				speciesPattern, idPattern, featureClass, window, chromTables)
		},
	}

	cmd.Flags().StringSliceVar(&familySources, "families", nil, "family membership files or directories")
	cmd.Flags().StringSliceVar(&genomeSources, "genomes", nil, "genome annotation files or directories")
	cmd.Flags().StringVar(&dbPath, "db", "", "output database file")
	cmd.Flags().StringVar(&speciesPattern, "species-pattern", "",
		"regexp with a named group 'species' applied to genome file names (default from config build.species_pattern)")
	cmd.Flags().StringVar(&idPattern, "id-pattern", "",
		"regexp with a named group 'id' applied to raw record ids (default from config build.id_pattern)")
	cmd.Flags().StringVar(&featureClass, "feature-class", "gene", "GFF3 feature class to retain")
	cmd.Flags().IntVar(&window, "window", 15, "number of flanking genes stored per side")
	cmd.Flags().BoolVar(&chromTables, "chrom-tables", false, "treat genome inputs as 5-column chromosome tables")
	cmd.MarkFlagRequired("families")
	cmd.MarkFlagRequired("genomes")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runBuild(familySources, genomeSources []string, dbPath, speciesPattern, idPattern, featureClass string, window int, chromTables bool) error {
	if speciesPattern == "" {
		speciesPattern = viper.GetString("build.species_pattern")
	}
	if idPattern == "" {
		idPattern = viper.GetString("build.id_pattern")
	}
	if speciesPattern == "" || idPattern == "" {
		return fmt.Errorf("species and id patterns are required (flags or build.* config keys)")
	}

	logger.Info("parsing families")
	builder := family.NewBuilder()
	builder.SetLogger(logger)
	families, err := builder.Build(familySources)
	if err != nil {
		return err
	}

	logger.Info("parsing genomes")
	ingester, err := ingest.New(speciesPattern, idPattern, featureClass, families)
	if err != nil {
		return err
	}
	ingester.SetLogger(logger)
	ingester.SetChromTables(chromTables)

	genome := ingest.NewGenome()
	if err := ingester.IngestTree(genomeSources, genome); err != nil {
		return err
	}
	logger.Info("ingestion complete",
		zap.Int("species", len(genome.Species())),
		zap.Int("genes", genome.GeneCount()))

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	st.SetLogger(logger)

	logger.Info("creating database", zap.String("db", dbPath))
	if err := st.Reset(); err != nil {
		return err
	}
	logger.Info("filling database", zap.Int("window", window))
	if err := st.WriteGenome(genome, window); err != nil {
		return err
	}
	return st.CreateIndices()
}
