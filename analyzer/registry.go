package analyzer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nodeadmin/sbmate/annotation"
)

// Oracle answers whether an identifier exists in a remote registry.
type Oracle interface {
	Exists(ctx context.Context, res annotation.Resource, id string) (bool, error)
}

// Registry analyzes identifiers of a flat registry (KEGG, UniProt). It has
// no hierarchy, so consistency is eligibility of the resource for the kind
// plus existence of every identifier.
type Registry struct {
	res    annotation.Resource
	oracle Oracle
	logger *slog.Logger
}

type RegistryOption func(*Registry)

func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRegistry(res annotation.Resource, oracle Oracle, opts ...RegistryOption) *Registry {
	r := &Registry{res: res, oracle: oracle, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Resource() annotation.Resource { return r.res }

// Consistency checks that the kind may carry this resource, then asks the
// oracle about each identifier. Any missing identifier makes the group
// inconsistent. Failed lookups make it indeterminate unless another
// identifier is already known to be missing.
func (r *Registry) Consistency(ctx context.Context, kind annotation.EntityKind, ids []string) Result {
	res := Result{Resource: r.res, Kind: kind, Verdict: Inconsistent, IDs: ids}
	if len(ids) == 0 || !annotation.Accepts(kind, string(r.res)) {
		return res
	}
	if r.oracle == nil {
		res.Verdict = Indeterminate
		res.Unresolved = ids
		res.Err = errors.New("no existence oracle configured")
		return res
	}

	var errs []error
	for _, id := range ids {
		ok, err := r.oracle.Exists(ctx, r.res, id)
		if err != nil {
			r.logger.Warn("Existence lookup failed",
				"resource", r.res,
				"id", id,
				"error", err)
			res.Unresolved = append(res.Unresolved, id)
			errs = append(errs, err)
			continue
		}
		if !ok {
			res.Unresolved = nil
			return res
		}
	}
	if len(errs) > 0 {
		res.Verdict = Indeterminate
		res.Err = errors.Join(errs...)
		return res
	}
	res.Verdict = Consistent
	return res
}

// Specificity of a consistent registry group is always 1.
func (r *Registry) Specificity(res Result) (float64, bool) {
	if res.Verdict != Consistent {
		return 0, false
	}
	return 1, true
}
