package nutrition

import (
	"math"
	"regexp"

	"nutriplan/internal/meal"
)

// mealTimeRule sets the calorie estimate outright when a meal-time word matches.
type mealTimeRule struct {
	Tag     string
	Pattern *regexp.Regexp
	Regular float64
	Large   float64
}

// componentRule adds calories on top of the component base when its pattern matches.
type componentRule struct {
	Tag     string
	Pattern *regexp.Regexp
	Add     float64
}

// macroRule splits calories into macros when its pattern matches; the
// fallback entry has a nil Pattern.
type macroRule struct {
	Tag        string
	Pattern    *regexp.Regexp
	Share      float64
	FiberRatio float64
	SugarRatio float64
}

const componentBase = 300

var largePortion = regexp.MustCompile(`(?i)large|big|hearty`)

// Rules are evaluated in order; the first match wins.
var mealTimeRules = []mealTimeRule{
	{Tag: "breakfast", Pattern: regexp.MustCompile(`(?i)breakfast|morning`), Regular: 400, Large: 600},
	{Tag: "lunch", Pattern: regexp.MustCompile(`(?i)lunch|noon`), Regular: 500, Large: 700},
	{Tag: "dinner", Pattern: regexp.MustCompile(`(?i)dinner|evening`), Regular: 600, Large: 800},
	{Tag: "snack", Pattern: regexp.MustCompile(`(?i)snack`), Regular: 200, Large: 200},
}

// Every matching rule contributes. The meat list is narrower than the
// protein list below (no fish, turkey or tofu) and is kept that way so
// existing scores stay stable.
var componentRules = []componentRule{
	{Tag: "meat", Pattern: regexp.MustCompile(`(?i)chicken|beef|meat`), Add: 200},
	{Tag: "starch", Pattern: regexp.MustCompile(`(?i)rice|pasta|potato`), Add: 150},
	{Tag: "dairy", Pattern: regexp.MustCompile(`(?i)cheese|cream`), Add: 100},
	{Tag: "vegetable", Pattern: regexp.MustCompile(`(?i)salad|vegetable`), Add: 50},
	{Tag: "fried", Pattern: regexp.MustCompile(`(?i)oil|fried`), Add: 150},
}

var proteinRules = []macroRule{
	{Tag: "protein-source", Pattern: regexp.MustCompile(`(?i)chicken|beef|fish|turkey|tofu|egg|protein`), Share: 0.30},
	{Tag: "default", Share: 0.15},
}

var carbRules = []macroRule{
	{Tag: "grain", Pattern: regexp.MustCompile(`(?i)bread|pasta|rice|potato|grain|cereal|oat`), Share: 0.60, FiberRatio: 0.10, SugarRatio: 0.10},
	{Tag: "default", Share: 0.45, FiberRatio: 0.08, SugarRatio: 0.15},
}

const (
	caloriesPerGramProtein = 4
	caloriesPerGramCarbs   = 4
	caloriesPerGramFat     = 9
)

// EstimateCalories derives a calorie figure from keywords in a meal name.
func EstimateCalories(name string) float64 {
	for _, r := range mealTimeRules {
		if r.Pattern.MatchString(name) {
			if largePortion.MatchString(name) {
				return r.Large
			}
			return r.Regular
		}
	}

	estimate := float64(componentBase)
	for _, r := range componentRules {
		if r.Pattern.MatchString(name) {
			estimate += r.Add
		}
	}
	return estimate
}

// Estimate synthesizes nutrition facts for a meal name. It is pure and
// every field of the result is non-negative.
func Estimate(name string) meal.NutritionInfo {
	calories := EstimateCalories(name)

	p := firstMatch(proteinRules, name)
	protein := math.Round(calories * p.Share / caloriesPerGramProtein)

	c := firstMatch(carbRules, name)
	carbs := math.Round(calories * c.Share / caloriesPerGramCarbs)
	fiber := math.Round(carbs * c.FiberRatio)
	sugar := math.Round(carbs * c.SugarRatio)

	remainder := calories - protein*caloriesPerGramProtein - carbs*caloriesPerGramCarbs
	fat := math.Max(0, math.Round(remainder/caloriesPerGramFat))

	return meal.NutritionInfo{
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
		Fiber:    meal.Grams(fiber),
		Sugar:    meal.Grams(sugar),
	}
}

func firstMatch(rules []macroRule, name string) macroRule {
	for _, r := range rules {
		if r.Pattern == nil || r.Pattern.MatchString(name) {
			return r
		}
	}
	return rules[len(rules)-1]
}
