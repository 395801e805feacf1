package api

import (
	"fmt"
	"slices"
	"strings"

	"nutriplan/internal/meal"
)

// FieldError describes one rejected field of a request body.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError lists every problem found in a plan request.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Path+": "+fe.Message)
	}
	return "invalid plan request: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(path, format string, args ...any) {
	e.Errors = append(e.Errors, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
}

// ValidateRequest checks enum membership and numeric ranges of a plan request.
func ValidateRequest(req meal.PlanRequest) error {
	v := &ValidationError{}

	checkEnum(v, "preferences.cuisineType", req.Preferences.CuisineType, meal.Cuisines, false)
	checkEnum(v, "preferences.dietaryRestrictions", req.Preferences.DietaryRestrictions, meal.DietaryRestrictions, false)
	checkEnum(v, "goals.primaryGoal", req.Goals.PrimaryGoal, meal.Goals, false)
	checkEnum(v, "goals.healthConditions", req.Goals.HealthConditions, meal.HealthConditions, true)
	checkEnum(v, "budget.budgetPriority", req.Budget.BudgetPriority, meal.BudgetPriorities, false)

	if t := req.Goals.CalorieTarget; t != nil && (*t < meal.MinCalorieTarget || *t > meal.MaxCalorieTarget) {
		v.add("goals.calorieTarget", "must be between %d and %d", meal.MinCalorieTarget, meal.MaxCalorieTarget)
	}
	if b := req.Budget.DailyBudget; b < meal.MinDailyBudget || b > meal.MaxDailyBudget {
		v.add("budget.dailyBudget", "must be between %d and %d", meal.MinDailyBudget, meal.MaxDailyBudget)
	}
	if mb := req.Budget.MealBudget; mb != nil {
		for _, slot := range meal.Slots {
			if amount, ok := mb.For(slot); ok && amount < 0 {
				v.add("budget.mealBudget."+string(slot), "must not be negative")
			}
		}
	}

	if len(v.Errors) > 0 {
		return v
	}
	return nil
}

func checkEnum[T ~string](v *ValidationError, path string, value T, allowed []T, optional bool) {
	if optional && value == "" {
		return
	}
	if !slices.Contains(allowed, value) {
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = string(a)
		}
		v.add(path, "expected one of %s, got %q", strings.Join(names, ", "), string(value))
	}
}
