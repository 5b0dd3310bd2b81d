// Package main provides the genescape command-line tool: it builds and
// queries a synteny window index over annotated genomes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "genescape",
		Short:   "Build and query synteny landscape indexes",
		Long:    "genescape indexes, for every gene of annotated genomes, the gene families of its chromosomal neighbors within a window, and serves landscape lookups over the result.",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			return initLogger()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newLookupCmd())
	root.AddCommand(newSpeciesCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// initConfig loads ~/.genescape.yaml and GENESCAPE_* environment
// variables into viper. A missing config file is not an error.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetConfigName(".genescape")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("genescape")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// initLogger builds the process logger. Debug level with --verbose,
// otherwise info.
func initLogger() error {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l
	return nil
}
