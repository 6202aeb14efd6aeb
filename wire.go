package main

import (
	"context"
	"log/slog"

	"github.com/samber/do"

	"github.com/nodeadmin/sbmate/analyzer"
	"github.com/nodeadmin/sbmate/annotation"
	"github.com/nodeadmin/sbmate/calculator"
	"github.com/nodeadmin/sbmate/config"
	"github.com/nodeadmin/sbmate/metrics"
	"github.com/nodeadmin/sbmate/oracle"
	"github.com/nodeadmin/sbmate/pipeline"
	"github.com/nodeadmin/sbmate/store"
)

// newInjector registers every service lazily, so a command only loads
// what it invokes.
func newInjector(ctx context.Context, cfg *config.Config) *do.Injector {
	di := do.New()
	do.ProvideValue(di, ctx)
	do.ProvideValue(di, cfg)
	do.ProvideValue(di, metrics.New())

	do.Provide(di, newStore)
	do.Provide(di, newOracle)
	do.Provide(di, newCalculator)
	do.Provide(di, pipeline.New)
	return di
}

func ontologySources(cfg *config.Config) map[annotation.Resource]store.Source {
	src := func(o config.Ontology) store.Source {
		return store.Source{Path: o.Path, Format: o.Format, Relations: o.Relations}
	}
	return map[annotation.Resource]store.Source{
		annotation.GO:    src(cfg.Ontologies.GO),
		annotation.SBO:   src(cfg.Ontologies.SBO),
		annotation.CHEBI: src(cfg.Ontologies.ChEBI),
	}
}

func newStore(di *do.Injector) (*store.Store, error) {
	ctx := do.MustInvoke[context.Context](di)
	cfg := do.MustInvoke[*config.Config](di)
	return store.Load(ctx, ontologySources(cfg), slog.Default())
}

func newOracle(di *do.Injector) (*oracle.Client, error) {
	cfg := do.MustInvoke[*config.Config](di)
	return oracle.New(oracle.Config{
		KEGGURL:    cfg.Oracle.KEGGURL,
		UniProtURL: cfg.Oracle.UniProtURL,
		Timeout:    cfg.Oracle.Timeout,
		UserAgent:  cfg.Oracle.UserAgent,
	},
		oracle.WithMetrics(do.MustInvoke[*metrics.Metrics](di)),
		oracle.WithLogger(slog.Default()),
	), nil
}

func newCalculator(di *do.Injector) (*calculator.Calculator, error) {
	st, err := do.Invoke[*store.Store](di)
	if err != nil {
		return nil, err
	}
	set := analyzer.NewSet(st, do.MustInvoke[*oracle.Client](di), analyzer.WithLogger(slog.Default()))
	return calculator.New(set,
		calculator.WithMetrics(do.MustInvoke[*metrics.Metrics](di)),
		calculator.WithLogger(slog.Default()),
	), nil
}
