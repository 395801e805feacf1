package shopping

import (
	"strings"
	"time"

	"nutriplan/internal/meal"
)

// ShoppingList represents a shopping list for a saved meal plan.
type ShoppingList struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	MealPlanID string    `json:"meal_plan_id"`
	Items      []string  `json:"items"`
	CreatedAt  time.Time `json:"created_at"`
}

// BuildList consolidates the ingredients of every meal in slot order.
// Duplicates are matched case-insensitively and the first spelling wins.
func BuildList(plan meal.Plan) []string {
	seen := make(map[string]bool)
	items := []string{}
	for _, m := range plan.Meals() {
		for _, ing := range m.Ingredients {
			item := strings.TrimSpace(ing)
			key := strings.ToLower(item)
			if item == "" || seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, item)
		}
	}
	return items
}
