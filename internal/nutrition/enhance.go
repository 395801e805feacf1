package nutrition

import (
	"math"
	"regexp"

	"nutriplan/internal/meal"
)

// adjustRule refines looked-up nutrition when its pattern matches the meal name.
type adjustRule struct {
	Tag     string
	Pattern *regexp.Regexp
	Apply   func(n *meal.NutritionInfo)
}

// Within a group the first matching rule wins; every group is evaluated.
var adjustGroups = [][]adjustRule{
	{
		{Tag: "fried", Pattern: regexp.MustCompile(`(?i)fried|sautéed`), Apply: scaleFat(1.2)},
		{Tag: "lean-cooking", Pattern: regexp.MustCompile(`(?i)grilled|baked|steamed`), Apply: scaleFat(0.9)},
	},
	{
		{Tag: "quality-protein", Pattern: regexp.MustCompile(`(?i)chicken|turkey|fish|egg`), Apply: func(n *meal.NutritionInfo) {
			n.Protein = math.Round(n.Protein * 1.1)
		}},
	},
	{
		{Tag: "whole-grain", Pattern: regexp.MustCompile(`(?i)whole grain|brown rice|quinoa|oats`), Apply: func(n *meal.NutritionInfo) {
			n.Fiber = scaleOrDerive(n.Fiber, 1.25, n.Carbs*0.1)
			n.Sugar = scaleOrDerive(n.Sugar, 0.9, n.Carbs*0.05)
		}},
	},
}

// scaleFat rescales fat and moves calories by the fat difference.
func scaleFat(factor float64) func(n *meal.NutritionInfo) {
	return func(n *meal.NutritionInfo) {
		fat := math.Round(n.Fat * factor)
		n.Calories += (fat - n.Fat) * caloriesPerGramFat
		n.Fat = fat
	}
}

func scaleOrDerive(v *float64, factor, derived float64) *float64 {
	if v != nil {
		return meal.Grams(math.Round(*v * factor))
	}
	return meal.Grams(math.Round(derived))
}

// Enhance adjusts authoritative nutrition for cooking method, protein source
// and whole grains named in the meal. base is not modified.
func Enhance(name string, base meal.NutritionInfo) meal.NutritionInfo {
	out := base
	for _, group := range adjustGroups {
		for _, r := range group {
			if r.Pattern.MatchString(name) {
				r.Apply(&out)
				break
			}
		}
	}
	return out
}
