package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nutriplan/internal/api"
	"nutriplan/internal/meal"
	"nutriplan/internal/shopping"
)

type generateOptions struct {
	cuisine   string
	diet      string
	dislikes  string
	goal      string
	condition string
	calories  float64
	budget    float64
	priority  string
	save      bool
	userID    int64
	name      string
	asJSON    bool
}

// request builds and validates the plan request described by the flags.
// A zero calorie target means none was given.
func (o generateOptions) request() (meal.PlanRequest, error) {
	req := meal.PlanRequest{
		Preferences: meal.MealPreferences{
			CuisineType:         meal.Cuisine(o.cuisine),
			DietaryRestrictions: meal.DietaryRestriction(o.diet),
			DislikedIngredients: o.dislikes,
		},
		Goals: meal.HealthGoals{
			PrimaryGoal:      meal.Goal(o.goal),
			HealthConditions: meal.HealthCondition(o.condition),
		},
		Budget: meal.BudgetConstraints{
			DailyBudget:    o.budget,
			BudgetPriority: meal.BudgetPriority(o.priority),
		},
	}
	if o.calories != 0 {
		target := o.calories
		req.Goals.CalorieTarget = &target
	}
	return req, api.ValidateRequest(req)
}

// generate: build a plan from flags and print it.
func generateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a one-day meal plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request()
			if err != nil {
				return err
			}

			plan := appCtx.GeneratePlan(cmd.Context(), req)

			if opts.save {
				saved, err := appCtx.SavePlan(cmd.Context(), opts.userID, opts.name, req, plan)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "saved as %s (%s)\n", saved.ID, saved.PlanName)
			}

			if opts.asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}
			printPlan(os.Stdout, plan)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.cuisine, "cuisine", string(meal.CuisineAny), "preferred cuisine")
	f.StringVar(&opts.diet, "diet", string(meal.DietNone), "dietary restriction")
	f.StringVar(&opts.dislikes, "dislike", "", "comma-separated disliked ingredients")
	f.StringVar(&opts.goal, "goal", string(meal.GoalMaintenance), "primary health goal")
	f.StringVar(&opts.condition, "condition", "", "health condition")
	f.Float64Var(&opts.calories, "calories", 0, "daily calorie target (1200-3500)")
	f.Float64Var(&opts.budget, "budget", 25, "daily budget in dollars (10-50)")
	f.StringVar(&opts.priority, "priority", string(meal.PriorityBalanced), "budget priority")
	f.BoolVar(&opts.save, "save", false, "save the generated plan")
	f.Int64Var(&opts.userID, "user", 0, "owner of the saved plan (default 1)")
	f.StringVar(&opts.name, "name", "", "name of the saved plan")
	f.BoolVar(&opts.asJSON, "json", false, "print the plan as JSON")
	return cmd
}

var titleCaser = cases.Title(language.English)

func printPlan(w io.Writer, plan meal.Plan) {
	for _, m := range plan.Meals() {
		fmt.Fprintf(w, "%-10s %s ($%.2f, %.0f kcal)\n", titleCaser.String(string(m.Type)), m.Name, m.Cost, m.Nutrition.Calories)
	}

	t := plan.TotalNutrition
	fmt.Fprintf(w, "\nTotal: %.0f kcal, protein %.0fg, carbs %.0fg, fat %.0fg", t.Calories, t.Protein, t.Carbs, t.Fat)
	if t.Fiber != nil {
		fmt.Fprintf(w, ", fiber %.0fg", *t.Fiber)
	}
	fmt.Fprintf(w, "\nCost:  $%.2f\n", plan.TotalCost)

	fmt.Fprintln(w, "\nShopping list:")
	for _, item := range shopping.BuildList(plan) {
		fmt.Fprintf(w, "- %s\n", item)
	}
}
