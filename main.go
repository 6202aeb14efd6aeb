// Command sbmate scores the semantic annotations of SBML models: coverage,
// consistency and specificity against GO, SBO, ChEBI, KEGG and UniProt.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nodeadmin/sbmate/config"
	"github.com/nodeadmin/sbmate/logging"
)

const (
	Version = "0.3.0"
	appName = "sbmate"
)

func main() {
	logging.Preinit()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Annotation quality metrics for SBML models",
		Long: `sbmate computes three metrics for the annotations of an SBML model:

- coverage: share of entities that carry at least one annotation
- consistency: share of annotated entities whose identifiers belong to
  ontology branches that fit the entity kind
- specificity: how deep the identifiers sit in their ontology

GO, SBO and ChEBI are checked against local ontology files; KEGG and
UniProt identifiers are looked up online.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Config file path (YAML, default $"+config.EnvFile+" or "+config.DefaultFile+")")

	cmd.AddCommand(
		scoreCmd(&configPath),
		lookupCmd(&configPath),
		snapshotCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

// setup loads the config, applies it to logging and returns a cleanup
// function for the log file.
func setup(configPath string) (*config.Config, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	closeLog, err := logging.Init(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, func() { _ = closeLog() }, nil
}
