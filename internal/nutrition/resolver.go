package nutrition

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"nutriplan/internal/meal"
)

// Source tells where a NutritionInfo came from.
type Source string

const (
	SourceLookup   Source = "lookup"
	SourceEstimate Source = "estimate"
)

// Resolver prefers an authoritative Lookup and falls back to Estimate.
type Resolver struct {
	lookup Lookup
	logger *zap.Logger
}

// NewResolver creates a Resolver. lookup may be nil.
func NewResolver(lookup Lookup, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{lookup: lookup, logger: logger}
}

// Resolve never fails: a missing lookup, a miss or an error all yield the
// local estimate. Lookup hits are refined by Enhance; estimates are not.
func (r *Resolver) Resolve(ctx context.Context, name string) (meal.NutritionInfo, Source) {
	if r == nil || r.lookup == nil {
		return Estimate(name), SourceEstimate
	}

	info, err := r.lookup.Lookup(ctx, name)
	switch {
	case err == nil:
		return Enhance(name, info), SourceLookup
	case errors.Is(err, ErrNotFound):
		r.logger.Debug("no authoritative nutrition data", zap.String("meal", name))
	default:
		r.logger.Warn("nutrition lookup failed, using estimate", zap.String("meal", name), zap.Error(err))
	}
	return Estimate(name), SourceEstimate
}
