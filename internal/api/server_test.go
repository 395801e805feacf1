package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nutriplan/internal/app"
	"nutriplan/internal/meal"
	"nutriplan/internal/metrics"
	"nutriplan/internal/nutrition"
	"nutriplan/internal/planner"
	"nutriplan/internal/sharing"
	"nutriplan/internal/shopping"
)

const knownID = "6f1c2a3e-8b7d-4c5e-9f00-112233445566"

// fakeService keeps saved plans in memory.
type fakeService struct {
	plans        map[string]*planner.SavedPlan
	lastReq      meal.PlanRequest
	shareEnabled bool
}

func newFakeService() *fakeService {
	return &fakeService{
		plans: map[string]*planner.SavedPlan{
			knownID: {ID: knownID, UserID: 4, PlanName: "Known", PlanData: meal.Plan{TotalCost: 20}},
		},
		shareEnabled: true,
	}
}

func (f *fakeService) GeneratePlan(ctx context.Context, req meal.PlanRequest) meal.Plan {
	f.lastReq = req
	return meal.Plan{Breakfast: meal.Meal{Name: "Oatmeal", Type: meal.Breakfast}, TotalCost: 21.5}
}

func (f *fakeService) NutritionFor(ctx context.Context, food string) (meal.NutritionInfo, nutrition.Source) {
	return nutrition.Estimate(food), nutrition.SourceEstimate
}

func (f *fakeService) SavePlan(ctx context.Context, userID int64, name string, req meal.PlanRequest, plan meal.Plan) (*planner.SavedPlan, error) {
	if userID == 0 {
		userID = planner.DefaultUserID
	}
	p := &planner.SavedPlan{ID: "new-id", UserID: userID, PlanName: name, PlanData: plan}
	f.plans[p.ID] = p
	return p, nil
}

func (f *fakeService) ListPlans(ctx context.Context, userID int64) ([]planner.SavedPlan, error) {
	out := []planner.SavedPlan{}
	for _, p := range f.plans {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeService) GetPlan(ctx context.Context, id string) (*planner.SavedPlan, error) {
	if p, ok := f.plans[id]; ok {
		return p, nil
	}
	return nil, planner.ErrPlanNotFound
}

func (f *fakeService) DeletePlan(ctx context.Context, id string) (bool, error) {
	if _, ok := f.plans[id]; !ok {
		return false, nil
	}
	delete(f.plans, id)
	return true, nil
}

func (f *fakeService) SharePlan(ctx context.Context, id string) (string, time.Time, error) {
	if !f.shareEnabled {
		return "", time.Time{}, app.ErrSharingDisabled
	}
	if _, err := f.GetPlan(ctx, id); err != nil {
		return "", time.Time{}, err
	}
	return "tok-" + id, time.Now().Add(time.Hour), nil
}

func (f *fakeService) GetSharedPlan(ctx context.Context, token string) (*planner.SavedPlan, error) {
	id, ok := strings.CutPrefix(token, "tok-")
	if !ok {
		return nil, sharing.ErrInvalidToken
	}
	return f.GetPlan(ctx, id)
}

func (f *fakeService) ShoppingList(ctx context.Context, planID string) (*shopping.ShoppingList, error) {
	p, err := f.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	return &shopping.ShoppingList{MealPlanID: p.ID, UserID: p.UserID, Items: []string{"oats"}}, nil
}

func (f *fakeService) Health() metrics.SysHealth {
	return metrics.SysHealth{Status: "ok"}
}

const validRequest = `{
	"preferences": {"cuisineType": "any", "dietaryRestrictions": "vegan"},
	"goals": {"primaryGoal": "maintenance"},
	"budget": {"dailyBudget": 25, "budgetPriority": "balanced"}
}`

func serve(t *testing.T, svc Service, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewServer(svc, nil).Handler().ServeHTTP(rec, req)
	return rec
}

func TestGeneratePlanHandler(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		svc := newFakeService()
		rec := serve(t, svc, http.MethodPost, "/api/meal-plan", validRequest)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		var plan meal.Plan
		if err := json.NewDecoder(rec.Body).Decode(&plan); err != nil {
			t.Fatalf("failed to decode plan: %v", err)
		}
		if plan.Breakfast.Name != "Oatmeal" || svc.lastReq.Preferences.DietaryRestrictions != meal.DietVegan {
			t.Errorf("unexpected plan %+v / request %+v", plan, svc.lastReq)
		}
	})

	t.Run("invalid fields are listed", func(t *testing.T) {
		body := `{
			"preferences": {"cuisineType": "french", "dietaryRestrictions": "vegan"},
			"goals": {"primaryGoal": "maintenance", "calorieTarget": 900},
			"budget": {"dailyBudget": 80, "budgetPriority": "balanced"}
		}`
		rec := serve(t, newFakeService(), http.MethodPost, "/api/meal-plan", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var resp messageResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Message != "Invalid request body" || len(resp.Errors) != 3 {
			t.Errorf("unexpected response %+v", resp)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := serve(t, newFakeService(), http.MethodPost, "/api/meal-plan", `{`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestNutritionHandler(t *testing.T) {
	rec := serve(t, newFakeService(), http.MethodGet, "/api/nutrition/Grilled%20Salmon%20with%20Roasted%20Vegetables", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if src := rec.Header().Get("X-Nutrition-Source"); src != string(nutrition.SourceEstimate) {
		t.Errorf("unexpected source header %q", src)
	}
	var info meal.NutritionInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if info.Calories != 350 {
		t.Errorf("expected 350 kcal, got %v", info.Calories)
	}
}

func TestSavedPlanHandlers(t *testing.T) {
	t.Run("save", func(t *testing.T) {
		body := `{"plan_name": "Mine", "plan_request": ` + validRequest + `, "plan_data": {"totalCost": 12}}`
		rec := serve(t, newFakeService(), http.MethodPost, "/api/meal-plans/save", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
		}
		var saved planner.SavedPlan
		if err := json.NewDecoder(rec.Body).Decode(&saved); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if saved.UserID != planner.DefaultUserID || saved.PlanName != "Mine" {
			t.Errorf("unexpected saved plan %+v", saved)
		}
	})

	t.Run("save without plan data", func(t *testing.T) {
		body := `{"plan_request": ` + validRequest + `}`
		rec := serve(t, newFakeService(), http.MethodPost, "/api/meal-plans/save", body)
		if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Plan data is required") {
			t.Errorf("expected plan data error, got %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("save with invalid request", func(t *testing.T) {
		body := `{"plan_request": {"preferences": {}}, "plan_data": {}}`
		rec := serve(t, newFakeService(), http.MethodPost, "/api/meal-plans/save", body)
		if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Invalid meal plan request") {
			t.Errorf("expected validation error, got %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("list by user", func(t *testing.T) {
		rec := serve(t, newFakeService(), http.MethodGet, "/api/meal-plans/user/4", "")
		var plans []planner.SavedPlan
		if err := json.NewDecoder(rec.Body).Decode(&plans); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if rec.Code != http.StatusOK || len(plans) != 1 {
			t.Errorf("expected one plan, got %d %v", rec.Code, plans)
		}
		if rec := serve(t, newFakeService(), http.MethodGet, "/api/meal-plans/user/abc", ""); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for bad user id, got %d", rec.Code)
		}
	})

	t.Run("get", func(t *testing.T) {
		cases := []struct {
			path string
			want int
		}{
			{"/api/meal-plans/" + knownID, http.StatusOK},
			{"/api/meal-plans/00000000-0000-0000-0000-000000000000", http.StatusNotFound},
			{"/api/meal-plans/not-a-uuid", http.StatusBadRequest},
		}
		for _, tc := range cases {
			if rec := serve(t, newFakeService(), http.MethodGet, tc.path, ""); rec.Code != tc.want {
				t.Errorf("GET %s: expected %d, got %d", tc.path, tc.want, rec.Code)
			}
		}
	})

	t.Run("delete", func(t *testing.T) {
		svc := newFakeService()
		rec := serve(t, svc, http.MethodDelete, "/api/meal-plans/"+knownID, "")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "deleted successfully") {
			t.Fatalf("expected delete success, got %d: %s", rec.Code, rec.Body)
		}
		rec = serve(t, svc, http.MethodDelete, "/api/meal-plans/"+knownID, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 on second delete, got %d", rec.Code)
		}
	})

	t.Run("shopping list", func(t *testing.T) {
		rec := serve(t, newFakeService(), http.MethodGet, "/api/meal-plans/"+knownID+"/shopping-list", "")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "oats") {
			t.Errorf("unexpected response %d: %s", rec.Code, rec.Body)
		}
	})
}

func TestShareHandlers(t *testing.T) {
	svc := newFakeService()

	rec := serve(t, svc, http.MethodPost, "/api/meal-plans/"+knownID+"/share", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var share shareResponse
	if err := json.NewDecoder(rec.Body).Decode(&share); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if share.URL != "/api/shared/"+share.Token {
		t.Errorf("unexpected share url %q", share.URL)
	}

	if rec := serve(t, svc, http.MethodGet, share.URL, ""); rec.Code != http.StatusOK {
		t.Errorf("expected shared plan, got %d", rec.Code)
	}
	if rec := serve(t, svc, http.MethodGet, "/api/shared/forged", ""); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for bad token, got %d", rec.Code)
	}

	svc.shareEnabled = false
	if rec := serve(t, svc, http.MethodPost, "/api/meal-plans/"+knownID+"/share", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 when sharing is disabled, got %d", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	rec := serve(t, newFakeService(), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health response %d: %s", rec.Code, rec.Body)
	}
}

func TestValidateRequest(t *testing.T) {
	var req meal.PlanRequest
	if err := json.Unmarshal([]byte(validRequest), &req); err != nil {
		t.Fatal(err)
	}
	if err := ValidateRequest(req); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	neg := -1.0
	req.Budget.MealBudget = &meal.SlotBudgets{Snack: &neg}
	req.Goals.HealthConditions = "gout"
	err := ValidateRequest(req)
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %v", err)
	}
	if verr.Errors[0].Path != "goals.healthConditions" || verr.Errors[1].Path != "budget.mealBudget.snack" {
		t.Errorf("unexpected paths %+v", verr.Errors)
	}
}
