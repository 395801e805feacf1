package shopping

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"nutriplan/internal/database"
	"nutriplan/internal/meal"
	"nutriplan/internal/planner"
)

func TestBuildList(t *testing.T) {
	plan := meal.Plan{
		Breakfast: meal.Meal{Ingredients: []string{"2 eggs", "1 slice whole wheat toast"}},
		Lunch:     meal.Meal{Ingredients: []string{" Mixed greens ", "2 Eggs"}},
		Snack:     meal.Meal{Ingredients: []string{"", "1 protein bar"}},
		Dinner:    meal.Meal{Ingredients: []string{"mixed greens", "4 oz salmon fillet"}},
	}

	got := BuildList(plan)
	want := []string{"2 eggs", "1 slice whole wheat toast", "Mixed greens", "1 protein bar", "4 oz salmon fillet"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected %v, got %v", want, got)
	}

	if empty := BuildList(meal.Plan{}); empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil list, got %v", empty)
	}
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "shopping.db"))
	if err != nil {
		t.Fatalf("failed to create db: %v", err)
	}
	defer db.Close()

	plans := planner.NewPlanRepository(db.SQL)
	saved, err := plans.Save(ctx, 3, "Shopping week", meal.PlanRequest{}, meal.Plan{})
	if err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}

	repo := NewRepository(db.SQL)

	t.Run("missing list is nil", func(t *testing.T) {
		got, err := repo.GetByMealPlanID(ctx, saved.ID)
		if err != nil || got != nil {
			t.Errorf("expected nil, nil; got %v, %v", got, err)
		}
	})

	t.Run("save and replace", func(t *testing.T) {
		list := &ShoppingList{UserID: 3, MealPlanID: saved.ID, Items: []string{"eggs"}}
		id, err := repo.Save(ctx, list)
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if id == 0 || list.ID != id {
			t.Errorf("expected id to be set, got %d / %d", id, list.ID)
		}

		list.Items = []string{"eggs", "milk"}
		if _, err := repo.Save(ctx, list); err != nil {
			t.Fatalf("second Save failed: %v", err)
		}

		got, err := repo.GetByMealPlanID(ctx, saved.ID)
		if err != nil {
			t.Fatalf("GetByMealPlanID failed: %v", err)
		}
		if len(got.Items) != 2 || got.Items[1] != "milk" || got.UserID != 3 {
			t.Errorf("unexpected list %+v", got)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.DeleteByMealPlanID(ctx, saved.ID); err != nil {
			t.Fatalf("DeleteByMealPlanID failed: %v", err)
		}
		got, err := repo.GetByMealPlanID(ctx, saved.ID)
		if err != nil || got != nil {
			t.Errorf("expected list to be gone, got %v %v", got, err)
		}
	})
}
