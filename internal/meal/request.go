package meal

// Cuisine is the user's preferred cuisine.
type Cuisine string

const (
	CuisineItalian       Cuisine = "italian"
	CuisineAsian         Cuisine = "asian"
	CuisineMexican       Cuisine = "mexican"
	CuisineAmerican      Cuisine = "american"
	CuisineMediterranean Cuisine = "mediterranean"
	CuisineIndian        Cuisine = "indian"
	CuisineAny           Cuisine = "any"
)

// Cuisines lists every accepted cuisine value.
var Cuisines = []Cuisine{
	CuisineItalian, CuisineAsian, CuisineMexican, CuisineAmerican,
	CuisineMediterranean, CuisineIndian, CuisineAny,
}

// DietaryRestriction is the user's dietary restriction.
type DietaryRestriction string

const (
	DietNone       DietaryRestriction = "none"
	DietVegetarian DietaryRestriction = "vegetarian"
	DietVegan      DietaryRestriction = "vegan"
	DietGlutenFree DietaryRestriction = "gluten-free"
	DietDairyFree  DietaryRestriction = "dairy-free"
	DietKeto       DietaryRestriction = "keto"
	DietPaleo      DietaryRestriction = "paleo"
)

// DietaryRestrictions lists every accepted restriction value.
var DietaryRestrictions = []DietaryRestriction{
	DietNone, DietVegetarian, DietVegan, DietGlutenFree, DietDairyFree, DietKeto, DietPaleo,
}

// Goal is the user's primary health goal.
type Goal string

const (
	GoalWeightLoss  Goal = "weight-loss"
	GoalMuscleGain  Goal = "muscle-gain"
	GoalMaintenance Goal = "maintenance"
)

// Goals lists every accepted goal value.
var Goals = []Goal{GoalWeightLoss, GoalMuscleGain, GoalMaintenance}

// HealthCondition is an optional health condition tag.
type HealthCondition string

const (
	ConditionNone      HealthCondition = "none"
	ConditionDiabetes  HealthCondition = "diabetes"
	ConditionHeart     HealthCondition = "heart"
	ConditionLowSodium HealthCondition = "low-sodium"
	ConditionIBS       HealthCondition = "ibs"
)

// HealthConditions lists every accepted condition value.
var HealthConditions = []HealthCondition{
	ConditionNone, ConditionDiabetes, ConditionHeart, ConditionLowSodium, ConditionIBS,
}

// BudgetPriority tells how strictly the budget should be honoured.
type BudgetPriority string

const (
	PriorityStrict    BudgetPriority = "strict"
	PriorityBalanced  BudgetPriority = "balanced"
	PriorityNutrition BudgetPriority = "nutrition"
)

// BudgetPriorities lists every accepted priority value.
var BudgetPriorities = []BudgetPriority{PriorityStrict, PriorityBalanced, PriorityNutrition}

// Accepted numeric ranges.
const (
	MinCalorieTarget = 1200
	MaxCalorieTarget = 3500
	MinDailyBudget   = 10
	MaxDailyBudget   = 50
)

type MealPreferences struct {
	CuisineType         Cuisine            `json:"cuisineType"`
	DietaryRestrictions DietaryRestriction `json:"dietaryRestrictions"`
	DislikedIngredients string             `json:"dislikedIngredients,omitempty"`
}

type HealthGoals struct {
	PrimaryGoal      Goal            `json:"primaryGoal"`
	CalorieTarget    *float64        `json:"calorieTarget,omitempty"`
	HealthConditions HealthCondition `json:"healthConditions,omitempty"`
}

// SlotBudgets holds optional per-slot budget overrides.
type SlotBudgets struct {
	Breakfast *float64 `json:"breakfast,omitempty"`
	Lunch     *float64 `json:"lunch,omitempty"`
	Snack     *float64 `json:"snack,omitempty"`
	Dinner    *float64 `json:"dinner,omitempty"`
}

// For returns the override for slot s, if any.
func (b *SlotBudgets) For(s Slot) (float64, bool) {
	if b == nil {
		return 0, false
	}
	var v *float64
	switch s {
	case Breakfast:
		v = b.Breakfast
	case Lunch:
		v = b.Lunch
	case Snack:
		v = b.Snack
	case Dinner:
		v = b.Dinner
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

type BudgetConstraints struct {
	DailyBudget    float64        `json:"dailyBudget"`
	BudgetPriority BudgetPriority `json:"budgetPriority"`
	MealBudget     *SlotBudgets   `json:"mealBudget,omitempty"`
}

// PlanRequest is the sole input to plan generation.
type PlanRequest struct {
	Preferences MealPreferences   `json:"preferences"`
	Goals       HealthGoals       `json:"goals"`
	Budget      BudgetConstraints `json:"budget"`
}
