package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/do"
	"github.com/spf13/cobra"

	"github.com/nodeadmin/sbmate/analyzer"
	"github.com/nodeadmin/sbmate/annotation"
	"github.com/nodeadmin/sbmate/metrics"
	"github.com/nodeadmin/sbmate/ontology"
	"github.com/nodeadmin/sbmate/pipeline"
	"github.com/nodeadmin/sbmate/report"
	"github.com/nodeadmin/sbmate/store"
)

func scoreCmd(configPath *string) *cobra.Command {
	var (
		output      string
		workers     int
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "score <model.xml|glob>...",
		Short: "Compute coverage, consistency and specificity of SBML models",
		Example: `  sbmate score BIOMD0000000190.xml
  sbmate score -o table -w 4 'models/**/*.xml'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cleanup, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output.Format = output
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("metrics-file") {
				cfg.MetricsFile = metricsFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			di := newInjector(ctx, cfg)
			defer func() { _ = di.Shutdown() }()

			svc, err := do.Invoke[*pipeline.Service](di)
			if err != nil {
				return err
			}
			batch, err := svc.ScoreAll(ctx, args)
			if err != nil {
				return err
			}
			if err := report.Render(os.Stdout, cfg.Output.Format, batch); err != nil {
				return err
			}

			if err := do.MustInvoke[*metrics.Metrics](di).WriteFile(cfg.MetricsFile); err != nil {
				slog.Warn("Failed to write metrics file", "path", cfg.MetricsFile, "error", err)
			}

			if failed := batch.Failed(); len(failed) > 0 {
				return fmt.Errorf("%d of %d model files could not be scored", len(failed), len(batch.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "report",
		"Output format ("+strings.Join(report.Formats, ", ")+")")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "Number of models scored concurrently")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	return cmd
}

func lookupCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <go|sbo|chebi> <term>",
		Short: "Show the root, label, subtree size, specificity and lineage of a term",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := annotation.ParseResource(strings.ToLower(args[0]))
			if err != nil {
				return err
			}
			if !res.DAGBacked() {
				return fmt.Errorf("%s has no ontology graph", res)
			}

			cfg, cleanup, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			di := newInjector(cmd.Context(), cfg)
			defer func() { _ = di.Shutdown() }()

			st, err := do.Invoke[*store.Store](di)
			if err != nil {
				return err
			}

			term := annotation.Normalize(res, args[1])
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer tw.Flush()

			fmt.Fprintf(tw, "term:\t%s\n", term)
			root, ok := st.FindRoot(res, term)
			if !ok {
				fmt.Fprintf(tw, "root:\t%s\n", store.NoRootLabel)
				return nil
			}
			fmt.Fprintf(tw, "root:\t%s\n", root)
			fmt.Fprintf(tw, "label:\t%s\n", st.RootLabel(root))
			fmt.Fprintf(tw, "subtree size:\t%d of %d\n", st.SubtreeSize(res, term), st.SubtreeSize(res, root))
			if s, ok := analyzer.NewDAG(res, st).TermSpecificity(term); ok {
				fmt.Fprintf(tw, "specificity:\t%.4f\n", s)
			}
			fmt.Fprintf(tw, "lineage:\t%s\n", strings.Join(st.Lineage(res, term), " -> "))
			return nil
		},
	}
}

func snapshotCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "snapshot <ontology.obo|ontology.owl> <out.json>",
		Short: "Convert an OBO or OWL ontology into a JSON snapshot for faster loading",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]

			fmt.Fprintf(os.Stderr, "Parsing %s as %s...\n", filepath.Base(input), ontology.DetectFormat(input, format))
			start := time.Now()
			ont, err := ontology.LoadFile(input, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Parsed %d terms in %v\n", len(ont.Terms), time.Since(start))

			start = time.Now()
			if err := ontology.WriteJSONFile(ont, output); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote JSON in %v\n", time.Since(start))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", ontology.FormatAuto, "Input format: auto, obo, owl")
	return cmd
}
