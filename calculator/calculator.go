// Package calculator aggregates per-entity analyzer verdicts into the
// coverage, consistency and specificity of one model.
package calculator

import (
	"context"
	"log/slog"
	"math"

	"github.com/elliotchance/pie/v2"

	"github.com/nodeadmin/sbmate/analyzer"
	"github.com/nodeadmin/sbmate/annotation"
	"github.com/nodeadmin/sbmate/metrics"
)

// CategoryScore is the judgement of one resource category of one entity.
type CategoryScore struct {
	Resource    annotation.Resource `json:"resource"`
	IDs         []string            `json:"ids"`
	Verdict     analyzer.Verdict    `json:"verdict"`
	Specificity *float64            `json:"specificity,omitempty"`
	Unresolved  []string            `json:"unresolved,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// EntityScore is the breakdown of one annotatable entity.
type EntityScore struct {
	ObjectID    string                `json:"object_id"`
	Kind        annotation.EntityKind `json:"kind"`
	Annotated   bool                  `json:"annotated"`
	Verdict     *analyzer.Verdict     `json:"verdict,omitempty"`
	Specificity *float64              `json:"specificity,omitempty"`
	Categories  []CategoryScore       `json:"categories,omitempty"`
}

// Report holds the metrics of one model. Ratios are rounded to two
// decimals; nil means the metric is undefined for the model.
type Report struct {
	Name                  string        `json:"name"`
	AnnotatableEntities   int           `json:"annotatable_entities"`
	AnnotatedEntities     int           `json:"annotated_entities"`
	Coverage              *float64      `json:"coverage"`
	ConsistentEntities    int           `json:"consistent_entities"`
	IndeterminateEntities int           `json:"indeterminate_entities"`
	Consistency           *float64      `json:"consistency"`
	Specificity           *float64      `json:"specificity"`
	Entities              []EntityScore `json:"entities,omitempty"`
}

type Calculator struct {
	analyzers analyzer.Set
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

type Option func(*Calculator)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Calculator) { c.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(analyzers analyzer.Set, opts ...Option) *Calculator {
	c := &Calculator{analyzers: analyzers, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate scores the records of one model. Every record counts as an
// annotatable entity.
func (c *Calculator) Calculate(ctx context.Context, name string, records []annotation.Record) *Report {
	rep := &Report{
		Name:                name,
		AnnotatableEntities: len(records),
		Entities:            make([]EntityScore, 0, len(records)),
	}

	var specificities []float64
	for _, rec := range records {
		es := c.scoreEntity(ctx, rec)
		rep.Entities = append(rep.Entities, es)
		if !es.Annotated {
			continue
		}
		rep.AnnotatedEntities++

		switch *es.Verdict {
		case analyzer.Consistent:
			rep.ConsistentEntities++
			if es.Specificity != nil {
				specificities = append(specificities, *es.Specificity)
			}
		case analyzer.Indeterminate:
			rep.IndeterminateEntities++
		}
		c.metrics.Entity(es.Verdict.String())
	}

	if rep.AnnotatableEntities == 0 {
		return rep
	}
	rep.Coverage = ratio(rep.AnnotatedEntities, rep.AnnotatableEntities)
	if rep.AnnotatedEntities == 0 {
		return rep
	}
	rep.Consistency = ratio(rep.ConsistentEntities, rep.AnnotatedEntities)
	if len(specificities) > 0 {
		rep.Specificity = round2(pie.Average(specificities))
	}
	return rep
}

// scoreEntity evaluates every populated category in canonical order. The
// entity is inconsistent if any category is, otherwise indeterminate if
// any category is.
func (c *Calculator) scoreEntity(ctx context.Context, rec annotation.Record) EntityScore {
	es := EntityScore{ObjectID: rec.ObjectID(), Kind: rec.Kind()}
	populated := rec.Populated()
	if len(populated) == 0 {
		return es
	}
	es.Annotated = true

	verdict := analyzer.Consistent
	var specs []float64
	for _, res := range populated {
		cs := CategoryScore{Resource: res, IDs: rec.IDs(res), Verdict: analyzer.Inconsistent}
		a, err := c.analyzers.For(res)
		if err != nil {
			cs.Error = err.Error()
			es.Categories = append(es.Categories, cs)
			verdict = analyzer.Inconsistent
			continue
		}

		r := a.Consistency(ctx, rec.Kind(), cs.IDs)
		cs.Verdict = r.Verdict
		cs.Unresolved = r.Unresolved
		if r.Err != nil {
			cs.Error = r.Err.Error()
		}
		if s, ok := a.Specificity(r); ok {
			cs.Specificity = &s
			specs = append(specs, s)
		}
		es.Categories = append(es.Categories, cs)

		switch {
		case r.Verdict == analyzer.Inconsistent:
			verdict = analyzer.Inconsistent
		case r.Verdict == analyzer.Indeterminate && verdict == analyzer.Consistent:
			verdict = analyzer.Indeterminate
		}
	}
	es.Verdict = &verdict

	if verdict == analyzer.Consistent && len(specs) > 0 {
		mean := pie.Average(specs)
		es.Specificity = &mean
	}

	c.logger.Debug("Scored entity",
		"object_id", es.ObjectID,
		"kind", es.Kind,
		"categories", len(es.Categories),
		"verdict", verdict)
	return es
}

func ratio(n, d int) *float64 {
	return round2(float64(n) / float64(d))
}

// round2 rounds to two decimals, sending exact halves to the even digit.
func round2(v float64) *float64 {
	r := math.RoundToEven(v*100) / 100
	return &r
}
