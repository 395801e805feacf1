package scoring

import (
	"math"
	"regexp"
	"strings"

	"nutriplan/internal/meal"
	"nutriplan/internal/nutrition"
)

// goalRule scores name alignment with a health goal. A nil Pattern always
// yields Match.
type goalRule struct {
	Goal    meal.Goal
	Pattern *regexp.Regexp
	Match   float64
	Miss    float64
}

const neutralGoalMatch = 0.5

// Goal patterns match case-sensitively, so capitalised names such as
// "Grilled Chicken Salad" miss unless a lowercase keyword appears.
var goalRules = []goalRule{
	{Goal: meal.GoalWeightLoss, Pattern: regexp.MustCompile(`salad|grilled|lean|steamed`), Match: 0.9, Miss: 0.6},
	{Goal: meal.GoalMuscleGain, Pattern: regexp.MustCompile(`protein|chicken|beef|fish|egg`), Match: 0.9, Miss: 0.6},
	{Goal: meal.GoalMaintenance, Match: 0.8, Miss: 0.8},
}

const (
	cuisineMatch    = 1.0
	cuisineMismatch = 0.3
)

// Breakdown holds the sub-scores behind a total score.
type Breakdown struct {
	CalorieMatch    float64
	BudgetMatch     float64
	HealthGoalMatch float64
	CuisineMatch    float64
	Total           float64
}

// Scorer computes weighted match scores for candidates.
type Scorer struct {
	weights   Weights
	threshold float64
}

// NewScorer creates a Scorer from cfg.
func NewScorer(cfg Config) *Scorer {
	w := cfg.Weights
	if cfg.Normalize {
		w = w.Normalized()
	}
	return &Scorer{weights: w, threshold: cfg.SuitabilityThreshold}
}

// Weights returns the effective weights.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Threshold returns the suitability threshold.
func (s *Scorer) Threshold() float64 {
	return s.threshold
}

// Suitable reports whether score strictly exceeds the threshold.
func (s *Scorer) Suitable(score float64) bool {
	return score > s.threshold
}

// Score returns the weighted match score of c.
func (s *Scorer) Score(c meal.Candidate, targetCalories, slotBudget float64, goal meal.Goal, cuisine meal.Cuisine) float64 {
	return s.Breakdown(c, targetCalories, slotBudget, goal, cuisine).Total
}

// Breakdown returns every sub-score together with the weighted total.
// Targets below 1 kcal are treated as 1.
func (s *Scorer) Breakdown(c meal.Candidate, targetCalories, slotBudget float64, goal meal.Goal, cuisine meal.Cuisine) Breakdown {
	b := Breakdown{
		CalorieMatch:    CalorieMatch(nutrition.EstimateCalories(c.Name), targetCalories),
		BudgetMatch:     BudgetMatch(c.Cost, slotBudget),
		HealthGoalMatch: HealthGoalMatch(c.Name, goal),
		CuisineMatch:    CuisineMatch(c.Name, cuisine),
	}
	b.Total = s.weights.NutritionalBalance*b.CalorieMatch +
		s.weights.BudgetOptimization*b.BudgetMatch +
		s.weights.HealthGoalAlignment*b.HealthGoalMatch +
		s.weights.PreferenceMatching*b.CuisineMatch
	return b
}

// CalorieMatch is 1 for an exact hit and falls linearly to 0 at a 100% miss.
func CalorieMatch(estimated, target float64) float64 {
	target = math.Max(target, 1)
	return 1 - math.Min(math.Abs(estimated-target)/target, 1)
}

// BudgetMatch is 0 over budget, otherwise 1 minus half the used fraction.
func BudgetMatch(cost, budget float64) float64 {
	if cost > budget {
		return 0
	}
	if budget <= 0 {
		return 1
	}
	return 1 - (cost/budget)*0.5
}

// HealthGoalMatch scores a meal name against a goal.
func HealthGoalMatch(name string, goal meal.Goal) float64 {
	for _, r := range goalRules {
		if r.Goal != goal {
			continue
		}
		if r.Pattern == nil || r.Pattern.MatchString(name) {
			return r.Match
		}
		return r.Miss
	}
	return neutralGoalMatch
}

// CuisineMatch is full marks for "any" or a name containing the cuisine.
func CuisineMatch(name string, cuisine meal.Cuisine) float64 {
	if cuisine == meal.CuisineAny || strings.Contains(strings.ToLower(name), strings.ToLower(string(cuisine))) {
		return cuisineMatch
	}
	return cuisineMismatch
}
