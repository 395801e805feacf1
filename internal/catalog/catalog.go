package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"nutriplan/internal/meal"
)

// DefaultInstructions is given to candidates that carry no preparation steps.
var DefaultInstructions = []string{"Heat if necessary", "Enjoy your meal!"}

// glutenTerms are the ingredient substrings excluded by a gluten-free restriction.
var glutenTerms = []string{"wheat", "bread", "pasta", "tortilla"}

// BucketFor maps a dietary restriction to its catalog bucket.
func BucketFor(restriction meal.DietaryRestriction) Bucket {
	switch restriction {
	case meal.DietVegan:
		return BucketVegan
	case meal.DietVegetarian:
		return BucketVegetarian
	default:
		return BucketOmnivore
	}
}

// OptionsFor returns the static candidates for a slot and dietary restriction.
// The returned slice is a copy and may be modified by the caller.
func OptionsFor(slot meal.Slot, restriction meal.DietaryRestriction) []meal.Candidate {
	static := table[slot][BucketFor(restriction)]
	out := make([]meal.Candidate, 0, len(static))
	for _, c := range static {
		out = append(out, withDefaults(c))
	}
	return applyRestriction(out, restriction)
}

// ContainsGluten reports whether any ingredient of c matches a gluten term.
func ContainsGluten(c meal.Candidate) bool {
	return ContainsAny(c.Ingredients, glutenTerms)
}

// ContainsAny reports whether any ingredient contains one of terms, ignoring case.
// Empty terms never match.
func ContainsAny(ingredients []string, terms []string) bool {
	for _, ing := range ingredients {
		lower := strings.ToLower(ing)
		for _, term := range terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term != "" && strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}

func applyRestriction(candidates []meal.Candidate, restriction meal.DietaryRestriction) []meal.Candidate {
	if restriction != meal.DietGlutenFree {
		return candidates
	}
	filtered := candidates[:0]
	for _, c := range candidates {
		if !ContainsGluten(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func withDefaults(c meal.Candidate) meal.Candidate {
	c.Ingredients = append([]string(nil), c.Ingredients...)
	if len(c.Instructions) == 0 {
		c.Instructions = append([]string(nil), DefaultInstructions...)
	} else {
		c.Instructions = append([]string(nil), c.Instructions...)
	}
	return c
}

// Supplier provides extra candidates from an upstream source such as
// imported recipes. Extras are appended after the static entries.
type Supplier interface {
	Extras(ctx context.Context, slot meal.Slot, bucket Bucket) ([]meal.Candidate, error)
}

// Store serves candidates from the static table, optionally merged with a Supplier.
type Store struct {
	supplier Supplier
	logger   *zap.Logger
}

// NewStore creates a Store. supplier may be nil.
func NewStore(supplier Supplier, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{supplier: supplier, logger: logger}
}

// Candidates returns the candidates for slot under restriction. Supplier
// failures are logged and the static list is returned.
func (s *Store) Candidates(ctx context.Context, slot meal.Slot, restriction meal.DietaryRestriction) []meal.Candidate {
	if s == nil || s.supplier == nil {
		return OptionsFor(slot, restriction)
	}

	bucket := BucketFor(restriction)
	merged := make([]meal.Candidate, 0, len(table[slot][bucket]))
	for _, c := range table[slot][bucket] {
		merged = append(merged, withDefaults(c))
	}

	extras, err := s.supplier.Extras(ctx, slot, bucket)
	if err != nil {
		s.logger.Warn("failed to load extra candidates",
			zap.String("slot", string(slot)),
			zap.String("bucket", string(bucket)),
			zap.Error(err))
	}
	for _, c := range extras {
		merged = append(merged, withDefaults(c))
	}

	return applyRestriction(merged, restriction)
}
