// Package pipeline scores SBML model files: it reads each file, extracts
// its annotation records and computes the file's metric report.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"

	"github.com/nodeadmin/sbmate/annotation"
	"github.com/nodeadmin/sbmate/calculator"
	"github.com/nodeadmin/sbmate/config"
	"github.com/nodeadmin/sbmate/metrics"
	"github.com/nodeadmin/sbmate/sbml"
)

// ErrInvalidInput is returned before any work when the path list is empty
// or contains an empty path.
var ErrInvalidInput = errors.New("invalid input: expected a model file path string or a list of them")

// Result is the outcome of one file. Exactly one of Report and Err is set.
type Result struct {
	Path   string
	Report *calculator.Report
	Err    error
}

// Batch is the outcome of one ScoreAll call, in input order.
type Batch struct {
	RunID   string
	Results []Result
}

// Reports returns the reports of the files that were scored.
func (b *Batch) Reports() []*calculator.Report {
	var out []*calculator.Report
	for _, r := range b.Results {
		if r.Report != nil {
			out = append(out, r.Report)
		}
	}
	return out
}

// Failed returns the results of files that could not be scored.
func (b *Batch) Failed() []Result {
	var out []Result
	for _, r := range b.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

type Service struct {
	calc      *calculator.Calculator
	extractor *annotation.Extractor
	metrics   *metrics.Metrics
	workers   int
	logger    *slog.Logger
}

// New builds the service from the injector. It needs *config.Config and
// *calculator.Calculator; *metrics.Metrics is optional.
func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)
	m, _ := do.Invoke[*metrics.Metrics](di)
	return NewService(
		do.MustInvoke[*calculator.Calculator](di),
		annotation.NewExtractor(cfg.Extract.Qualifiers...),
		cfg.Workers,
		m,
	), nil
}

func NewService(calc *calculator.Calculator, extractor *annotation.Extractor, workers int, m *metrics.Metrics) *Service {
	if workers < 1 {
		workers = 1
	}
	if extractor == nil {
		extractor = annotation.NewExtractor()
	}
	return &Service{
		calc:      calc,
		extractor: extractor,
		metrics:   m,
		workers:   workers,
		logger:    slog.Default(),
	}
}

// Score computes the report of one model file. The report is named after
// the path.
func (s *Service) Score(ctx context.Context, path string) (*calculator.Report, error) {
	if err := validateInput([]string{path}); err != nil {
		return nil, err
	}
	return s.score(ctx, s.logger, path)
}

func (s *Service) score(ctx context.Context, logger *slog.Logger, path string) (*calculator.Report, error) {
	start := time.Now()

	doc, err := sbml.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records := s.extractor.ExtractAll(doc.Entities)
	rep := s.calc.Calculate(ctx, path, records)

	logger.Info("Scored model",
		"path", path,
		"entities", rep.AnnotatableEntities,
		"annotated", rep.AnnotatedEntities,
		"consistent", rep.ConsistentEntities,
		"indeterminate", rep.IndeterminateEntities,
		"elapsed", time.Since(start))
	return rep, nil
}

// ScoreAll validates and expands paths, then scores every file with at
// most the configured number of files in flight. A file that cannot be
// read is reported in its Result and does not stop the others.
func (s *Service) ScoreAll(ctx context.Context, paths []string) (*Batch, error) {
	files, err := ResolvePaths(paths)
	if err != nil {
		return nil, err
	}

	batch := &Batch{RunID: uuid.NewString(), Results: make([]Result, len(files))}
	logger := s.logger.With("run_id", batch.RunID)
	logger.Info("Scoring models", "files", len(files), "workers", s.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep, err := s.score(gctx, logger, path)
			batch.Results[i] = Result{Path: path, Report: rep, Err: err}
			s.metrics.FileScored(err == nil)
			if err != nil {
				logger.Error("Failed to score model", "path", path, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return batch, nil
}
