package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syntenics/genescape/internal/genebook"
	"github.com/syntenics/genescape/internal/store"
)

func newLookupCmd() *cobra.Command {
	var (
		dbPath   string
		window   int
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "lookup <id>...",
		Short: "Look up genes and print their landscapes",
		Long: `Lookup prints, for each gene id, its species, position, family and
the landscape of family ids surrounding it. The query window may be
smaller than the window the database was built with, never larger.`,
		Example: `  genescape lookup --db synteny.duckdb --window 5 AT1G01010 AT1G01030
  genescape lookup --db synteny.duckdb --strategy inline AT1G01010`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(dbPath, window, strategy, args)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "synteny index database")
	cmd.Flags().IntVar(&window, "window", 15, "number of flanking genes reported per side")
	cmd.Flags().StringVar(&strategy, "strategy", "memory", "retrieval strategy: memory, cached or inline")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runLookup(dbPath string, window int, strategy string, ids []string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	var book genebook.Book
	switch strategy {
	case "memory":
		logger.Info("caching the database")
		book, err = genebook.InMemory(st, window)
	case "cached":
		logger.Info("caching the requested ids")
		book, err = genebook.Cached(st, window, ids)
	case "inline":
		book = genebook.Inline(st, window)
	default:
		return fmt.Errorf("unknown strategy %q (want memory, cached or inline)", strategy)
	}
	if err != nil {
		return err
	}

	missed := false
	for _, id := range ids {
		g, err := book.Lookup(id)
		if err != nil {
			if genebook.IsUnknownID(err) {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
				missed = true
				continue
			}
			return err
		}
		printGene(g)
	}

	if missed {
		return fmt.Errorf("some ids were not found")
	}
	return nil
}

func printGene(g *genebook.Gene) {
	tokens := make([]string, 0, len(g.Left)+1+len(g.Right))
	for _, t := range g.Landscape() {
		tokens = append(tokens, t.String())
	}
	fmt.Printf("%s\t%s\t%s:%d-%d\t%s\tfamily=%d\t%s\n",
		g.ID, g.Species, g.Chr, g.Start, g.Stop, g.Strand, g.Family,
		strings.Join(tokens, " "))
}

func newSpeciesCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "species",
		Short: "List the species present in the index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			species, err := genebook.Inline(st, 0).Species()
			if err != nil {
				return err
			}
			for _, s := range species {
				fmt.Println(s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "synteny index database")
	cmd.MarkFlagRequired("db")

	return cmd
}
