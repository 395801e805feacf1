package planner

import (
	"math"

	"nutriplan/internal/meal"
)

// Aggregate sums the nutrition and cost of the four meals. Every nutrition
// total is rounded to the nearest integer; cost keeps its fractions.
func Aggregate(breakfast, lunch, snack, dinner meal.Meal) (meal.NutritionInfo, float64) {
	var total meal.NutritionInfo
	var fiber, sugar, cost float64
	for _, m := range []meal.Meal{breakfast, lunch, snack, dinner} {
		total.Calories += m.Nutrition.Calories
		total.Protein += m.Nutrition.Protein
		total.Carbs += m.Nutrition.Carbs
		total.Fat += m.Nutrition.Fat
		fiber += m.Nutrition.FiberOrZero()
		sugar += m.Nutrition.SugarOrZero()
		cost += m.Cost
	}

	total.Calories = math.Round(total.Calories)
	total.Protein = math.Round(total.Protein)
	total.Carbs = math.Round(total.Carbs)
	total.Fat = math.Round(total.Fat)
	total.Fiber = meal.Grams(math.Round(fiber))
	total.Sugar = meal.Grams(math.Round(sugar))
	return total, cost
}
