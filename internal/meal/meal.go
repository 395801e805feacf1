package meal

// Slot is one of the four daily meal categories.
type Slot string

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Snack     Slot = "snack"
	Dinner    Slot = "dinner"
)

// Slots lists every slot in plan order.
var Slots = []Slot{Breakfast, Lunch, Snack, Dinner}

// SlotShares is the fraction of the daily calorie target and the daily budget
// assigned to each slot. The fractions sum to 1.0.
var SlotShares = map[Slot]float64{
	Breakfast: 0.25,
	Lunch:     0.30,
	Snack:     0.15,
	Dinner:    0.30,
}

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool {
	_, ok := SlotShares[s]
	return ok
}

// NutritionInfo holds nutrition facts for a meal or a whole plan.
// Fiber and Sugar are optional and count as 0 when nil.
type NutritionInfo struct {
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    *float64 `json:"fiber,omitempty"`
	Sugar    *float64 `json:"sugar,omitempty"`
}

// FiberOrZero returns the fiber amount, or 0 when unset.
func (n NutritionInfo) FiberOrZero() float64 {
	if n.Fiber == nil {
		return 0
	}
	return *n.Fiber
}

// SugarOrZero returns the sugar amount, or 0 when unset.
func (n NutritionInfo) SugarOrZero() float64 {
	if n.Sugar == nil {
		return 0
	}
	return *n.Sugar
}

// Grams is a helper for building optional nutrition fields.
func Grams(v float64) *float64 {
	return &v
}

// Candidate is an unselected catalog entry available for scoring within a slot.
type Candidate struct {
	Name         string   `json:"name"`
	Cost         float64  `json:"cost"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions,omitempty"`
}

// Meal is a candidate resolved into a slot with its nutrition facts.
type Meal struct {
	Name         string        `json:"name"`
	Type         Slot          `json:"type"`
	Cost         float64       `json:"cost"`
	Nutrition    NutritionInfo `json:"nutrition"`
	Ingredients  []string      `json:"ingredients"`
	Instructions []string      `json:"instructions,omitempty"`
}

// Plan holds exactly one meal per slot plus the plan-level totals.
type Plan struct {
	Breakfast      Meal          `json:"breakfast"`
	Lunch          Meal          `json:"lunch"`
	Snack          Meal          `json:"snack"`
	Dinner         Meal          `json:"dinner"`
	TotalNutrition NutritionInfo `json:"totalNutrition"`
	TotalCost      float64       `json:"totalCost"`
}

// Meals returns the plan's meals in slot order.
func (p Plan) Meals() []Meal {
	return []Meal{p.Breakfast, p.Lunch, p.Snack, p.Dinner}
}

// MealFor returns the meal occupying slot s.
func (p Plan) MealFor(s Slot) (Meal, bool) {
	switch s {
	case Breakfast:
		return p.Breakfast, true
	case Lunch:
		return p.Lunch, true
	case Snack:
		return p.Snack, true
	case Dinner:
		return p.Dinner, true
	}
	return Meal{}, false
}
