package planner

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"nutriplan/internal/catalog"
	"nutriplan/internal/meal"
	"nutriplan/internal/scoring"
	"nutriplan/internal/shared"
)

// FallbackMealName names the synthetic meal used when a slot has no candidates.
const FallbackMealName = "Simple Balanced Meal"

// fallbackBudgetShare is the fraction of the slot budget charged for the fallback meal.
const fallbackBudgetShare = 0.8

// CandidateSource lists the candidates of a slot under a dietary restriction.
type CandidateSource interface {
	Candidates(ctx context.Context, slot meal.Slot, restriction meal.DietaryRestriction) []meal.Candidate
}

// SlotInput is what the Selector needs to choose a slot's meal.
type SlotInput struct {
	Slot           meal.Slot
	TargetCalories float64
	Budget         float64
	Request        meal.PlanRequest
}

// Selection is the outcome of choosing a slot's meal.
type Selection struct {
	Candidate meal.Candidate
	Policy    shared.Policy
	Score     float64
}

// Selector chooses one candidate per slot.
type Selector struct {
	source CandidateSource
	scorer *scoring.Scorer
	rnd    RandomSource
	logger *zap.Logger
}

// NewSelector creates a Selector.
func NewSelector(source CandidateSource, scorer *scoring.Scorer, rnd RandomSource, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{source: source, scorer: scorer, rnd: rnd, logger: logger}
}

// FallbackCandidate is the synthetic meal for an empty slot.
func FallbackCandidate(budget float64) meal.Candidate {
	return meal.Candidate{
		Name:         FallbackMealName,
		Cost:         budget * fallbackBudgetShare,
		Ingredients:  []string{"Portion of protein", "Portion of vegetables", "Portion of complex carbs"},
		Instructions: []string{"Prepare ingredients as desired", "Combine and enjoy"},
	}
}

// DislikedTerms splits a free-text disliked-ingredients string on commas.
func DislikedTerms(s string) []string {
	var terms []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// Select picks one candidate for in.Slot. It never fails: an empty
// candidate list yields the fallback meal.
func (s *Selector) Select(ctx context.Context, in SlotInput) Selection {
	restriction := in.Request.Preferences.DietaryRestrictions
	candidates := s.source.Candidates(ctx, in.Slot, restriction)
	candidates = s.dropDisliked(in.Slot, candidates, DislikedTerms(in.Request.Preferences.DislikedIngredients))

	if len(candidates) == 0 {
		sel := Selection{Candidate: FallbackCandidate(in.Budget), Policy: shared.PolicyFallback}
		s.logSelection(in, sel)
		return sel
	}

	scores := make([]float64, len(candidates))
	var suitable []int
	best := 0
	for i, c := range candidates {
		scores[i] = s.scorer.Score(c, in.TargetCalories, in.Budget, in.Request.Goals.PrimaryGoal, in.Request.Preferences.CuisineType)
		if s.scorer.Suitable(scores[i]) {
			suitable = append(suitable, i)
		}
		if scores[i] > scores[best] {
			best = i
		}
	}

	var sel Selection
	if len(suitable) > 0 {
		pick := suitable[s.rnd.IntN(len(suitable))]
		sel = Selection{Candidate: candidates[pick], Policy: shared.PolicyRandom, Score: scores[pick]}
	} else {
		sel = Selection{Candidate: candidates[best], Policy: shared.PolicyBestMatch, Score: scores[best]}
	}
	s.logSelection(in, sel)
	return sel
}

// dropDisliked removes candidates containing a disliked term unless that
// would empty the slot.
func (s *Selector) dropDisliked(slot meal.Slot, candidates []meal.Candidate, terms []string) []meal.Candidate {
	if len(terms) == 0 {
		return candidates
	}
	kept := make([]meal.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !catalog.ContainsAny(c.Ingredients, terms) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		s.logger.Debug("disliked ingredients exclude every candidate, ignoring preference",
			zap.String("slot", string(slot)), zap.Strings("terms", terms))
		return candidates
	}
	return kept
}

func (s *Selector) logSelection(in SlotInput, sel Selection) {
	s.logger.Debug("selected meal",
		zap.String("slot", string(in.Slot)),
		zap.String("meal", sel.Candidate.Name),
		zap.String("policy", string(sel.Policy)),
		zap.Float64("score", sel.Score),
		zap.Float64("target_calories", in.TargetCalories),
		zap.Float64("budget", in.Budget))
}
