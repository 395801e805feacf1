package planner

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nutriplan/internal/meal"
	"nutriplan/internal/nutrition"
	"nutriplan/internal/scoring"
	"nutriplan/internal/shared"
)

// Default daily calorie targets by goal.
const (
	weightLossCalories  = 1800
	muscleGainCalories  = 2600
	maintenanceCalories = 2100
)

// Planner handles the generation of meal plans.
type Planner struct {
	selector *Selector
	resolver *nutrition.Resolver
	logger   *zap.Logger
}

// NewPlanner creates a new Planner instance.
func NewPlanner(source CandidateSource, scorer *scoring.Scorer, resolver *nutrition.Resolver, rnd RandomSource, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rnd == nil {
		rnd = NewRandomSource(0)
	}
	return &Planner{
		selector: NewSelector(source, scorer, rnd, logger),
		resolver: resolver,
		logger:   logger,
	}
}

// DailyCalorieTarget returns the explicit target or the goal's default.
func DailyCalorieTarget(goals meal.HealthGoals) float64 {
	if goals.CalorieTarget != nil {
		return *goals.CalorieTarget
	}
	switch goals.PrimaryGoal {
	case meal.GoalWeightLoss:
		return weightLossCalories
	case meal.GoalMuscleGain:
		return muscleGainCalories
	default:
		return maintenanceCalories
	}
}

// SlotCalorieTarget returns the rounded share of daily for slot, never below 1.
func SlotCalorieTarget(daily float64, slot meal.Slot) float64 {
	return math.Max(1, math.Round(daily*meal.SlotShares[slot]))
}

// SlotBudget returns the slot override if present and non-zero, else the
// slot's share of the daily budget. Shares are not rounded.
func SlotBudget(budget meal.BudgetConstraints, slot meal.Slot) float64 {
	if v, ok := budget.MealBudget.For(slot); ok && v != 0 {
		return v
	}
	return budget.DailyBudget * meal.SlotShares[slot]
}

// GeneratePlan creates a meal plan for req. It always returns a complete plan.
func (p *Planner) GeneratePlan(ctx context.Context, req meal.PlanRequest) meal.Plan {
	plan, _ := p.Generate(ctx, req)
	return plan
}

// Generate creates a meal plan and reports how each slot was filled.
func (p *Planner) Generate(ctx context.Context, req meal.PlanRequest) (meal.Plan, []shared.SelectionMeta) {
	daily := DailyCalorieTarget(req.Goals)

	selections := make([]Selection, len(meal.Slots))
	metas := make([]shared.SelectionMeta, len(meal.Slots))
	for i, slot := range meal.Slots {
		start := time.Now()
		in := SlotInput{
			Slot:           slot,
			TargetCalories: SlotCalorieTarget(daily, slot),
			Budget:         SlotBudget(req.Budget, slot),
			Request:        req,
		}
		selections[i] = p.safeSelect(ctx, in)
		metas[i] = shared.SelectionMeta{
			Slot:     string(slot),
			MealName: selections[i].Candidate.Name,
			Policy:   selections[i].Policy,
			Score:    selections[i].Score,
			Latency:  time.Since(start),
		}
	}

	// Slots are independent, so nutrition is resolved concurrently.
	meals := make([]meal.Meal, len(meal.Slots))
	var g errgroup.Group
	for i, slot := range meal.Slots {
		g.Go(func() error {
			start := time.Now()
			c := selections[i].Candidate
			info, src := p.safeResolve(ctx, c.Name)
			meals[i] = meal.Meal{
				Name:         c.Name,
				Type:         slot,
				Cost:         c.Cost,
				Nutrition:    info,
				Ingredients:  c.Ingredients,
				Instructions: c.Instructions,
			}
			metas[i].NutritionSource = string(src)
			metas[i].Latency += time.Since(start)
			return nil
		})
	}
	// Resolve never fails, so the group only joins the workers.
	_ = g.Wait()

	plan := meal.Plan{
		Breakfast: meals[0],
		Lunch:     meals[1],
		Snack:     meals[2],
		Dinner:    meals[3],
	}
	plan.TotalNutrition, plan.TotalCost = Aggregate(plan.Breakfast, plan.Lunch, plan.Snack, plan.Dinner)
	return plan, metas
}

// safeSelect shields plan construction from a misbehaving candidate source.
func (p *Planner) safeSelect(ctx context.Context, in SlotInput) (sel Selection) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("meal selection panicked, using fallback meal",
				zap.String("slot", string(in.Slot)), zap.String("panic", fmt.Sprint(r)))
			sel = Selection{Candidate: FallbackCandidate(in.Budget), Policy: shared.PolicyFallback}
		}
	}()
	return p.selector.Select(ctx, in)
}

func (p *Planner) safeResolve(ctx context.Context, name string) (info meal.NutritionInfo, src nutrition.Source) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("nutrition lookup panicked, using estimate",
				zap.String("meal", name), zap.String("panic", fmt.Sprint(r)))
			info, src = nutrition.Estimate(name), nutrition.SourceEstimate
		}
	}()
	return p.resolver.Resolve(ctx, name)
}
