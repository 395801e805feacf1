package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"nutriplan/internal/catalog"
	"nutriplan/internal/config"
	"nutriplan/internal/meal"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
)

// --- Mocks ---
type mockSender struct {
	mu   sync.Mutex
	sent []string
}

func (m *mockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		m.sent = append(m.sent, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

type mockService struct {
	saved     []int64
	saveErr   error
	importErr error
	lastSlot  meal.Slot
}

func (m *mockService) GeneratePlan(ctx context.Context, req meal.PlanRequest) meal.Plan {
	return meal.Plan{
		Breakfast: meal.Meal{Name: "Overnight Oats", Type: meal.Breakfast, Cost: 3, Ingredients: []string{"oats", "almond milk"}},
		Lunch:     meal.Meal{Name: "Lentil Soup", Type: meal.Lunch, Cost: 7, Ingredients: []string{"lentils"}},
		Snack:     meal.Meal{Name: "Apple", Type: meal.Snack, Cost: 1, Ingredients: []string{"apple"}},
		Dinner:    meal.Meal{Name: "Tofu Stir-Fry", Type: meal.Dinner, Cost: 9, Ingredients: []string{"tofu", "Oats"}},
		TotalCost: 20,
	}
}

func (m *mockService) SavePlan(ctx context.Context, userID int64, name string, req meal.PlanRequest, plan meal.Plan) (*planner.SavedPlan, error) {
	m.saved = append(m.saved, userID)
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	return &planner.SavedPlan{ID: "p1", UserID: userID}, nil
}

func (m *mockService) ImportMeal(ctx context.Context, url string, slot meal.Slot, bucket catalog.Bucket, cost float64) (*catalog.ImportedMeal, error) {
	m.lastSlot = slot
	if m.importErr != nil {
		return nil, m.importErr
	}
	return &catalog.ImportedMeal{ID: 1, Slot: slot, Bucket: bucket, Candidate: meal.Candidate{Name: "Clipped Curry", Cost: cost}}, nil
}

func (m *mockService) Usage(ctx context.Context, days int) ([]metrics.DailyUsage, error) {
	return []metrics.DailyUsage{{Date: "2026-01-02", TotalSelection: 8, Random: 5, BestMatch: 2, Fallback: 1}}, nil
}

func (m *mockService) Health() metrics.SysHealth {
	return metrics.SysHealth{Status: "ok", Goroutines: 3, DataDiskSize: "1.0 KiB"}
}

func message(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: userID},
		Text: text,
	}
}

func newTestBot(svc Service) (*Bot, *mockSender) {
	s := &mockSender{}
	cfg := &config.Config{AdminTelegramID: 99, TelegramAllowedUserIDs: []int64{1}}
	return newBot(s, cfg, svc, nil), s
}

// --- Tests ---

func TestParsePlanArgs(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req, err := ParsePlanArgs(nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req.Preferences.CuisineType != meal.CuisineAny || req.Budget.DailyBudget != 25 || req.Goals.PrimaryGoal != meal.GoalMaintenance {
			t.Errorf("unexpected defaults %+v", req)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		req, err := ParsePlanArgs([]string{"Cuisine=Italian", "diet=vegan", "calories=1800", "budget=30", "dislike=mushrooms,olives"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req.Preferences.CuisineType != meal.CuisineItalian || req.Preferences.DietaryRestrictions != meal.DietVegan {
			t.Errorf("unexpected preferences %+v", req.Preferences)
		}
		if req.Goals.CalorieTarget == nil || *req.Goals.CalorieTarget != 1800 || req.Budget.DailyBudget != 30 {
			t.Errorf("unexpected numbers %+v %+v", req.Goals, req.Budget)
		}
		if req.Preferences.DislikedIngredients != "mushrooms,olives" {
			t.Errorf("unexpected dislikes %q", req.Preferences.DislikedIngredients)
		}
	})

	for _, args := range [][]string{{"budget"}, {"budget=lots"}, {"colour=red"}, {"budget=5"}, {"diet=carnivore"}} {
		if _, err := ParsePlanArgs(args); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestFormatPlanMarkdownParts(t *testing.T) {
	plan := (&mockService{}).GeneratePlan(context.Background(), meal.PlanRequest{})
	planOutput, shoppingOutput := formatPlanMarkdownParts(plan)

	if !strings.Contains(planOutput, "📅 *Daily Meal Plan*") {
		t.Error("Missing plan header")
	}
	if !strings.Contains(planOutput, "*Breakfast*: Overnight Oats ($3.00)") {
		t.Errorf("Missing breakfast line in %q", planOutput)
	}
	if !strings.Contains(planOutput, "💰 *Cost:* $20.00") {
		t.Error("Missing total cost")
	}
	if !strings.Contains(shoppingOutput, "🛒 *Shopping List*") || !strings.Contains(shoppingOutput, "• tofu") {
		t.Error("Missing shopping items")
	}
	if strings.Count(strings.ToLower(shoppingOutput), "• oats") != 1 {
		t.Error("Expected duplicate ingredients to be merged")
	}
}

func TestProcessMessage(t *testing.T) {
	t.Run("plan is generated, saved and sent", func(t *testing.T) {
		svc := &mockService{}
		b, s := newTestBot(svc)
		b.processMessage(message(1, "/plan diet=vegan"))
		if len(svc.saved) != 1 || svc.saved[0] != 1 {
			t.Errorf("expected plan saved for user 1, got %v", svc.saved)
		}
		if len(s.sent) != 2 {
			t.Fatalf("expected plan and shopping list messages, got %d", len(s.sent))
		}
	})

	t.Run("save failure is not surfaced", func(t *testing.T) {
		svc := &mockService{saveErr: errors.New("disk full")}
		b, s := newTestBot(svc)
		b.processMessage(message(1, "/plan"))
		if len(s.sent) != 2 || strings.Contains(s.sent[0], "disk full") {
			t.Errorf("expected the plan to be delivered, got %v", s.sent)
		}
	})

	t.Run("invalid plan request", func(t *testing.T) {
		b, s := newTestBot(&mockService{})
		b.processMessage(message(1, "/plan budget=900"))
		if len(s.sent) != 1 || !strings.Contains(s.sent[0], "Invalid request") {
			t.Errorf("expected an error reply, got %v", s.sent)
		}
	})

	t.Run("metrics requires admin", func(t *testing.T) {
		b, s := newTestBot(&mockService{})
		b.processMessage(message(1, "/metrics"))
		b.processMessage(message(99, "/metrics"))
		if len(s.sent) != 2 || !strings.Contains(s.sent[0], "Access Denied") {
			t.Fatalf("unexpected replies %v", s.sent)
		}
		if !strings.Contains(s.sent[1], "8 picks (5 random, 2 best, 1 fallback)") || !strings.Contains(s.sent[1], "1.0 KiB") {
			t.Errorf("unexpected report %q", s.sent[1])
		}
	})

	t.Run("import", func(t *testing.T) {
		svc := &mockService{}
		b, s := newTestBot(svc)
		b.processMessage(message(99, "/import https://example.com/curry Dinner vegan 4.5"))
		if svc.lastSlot != meal.Dinner || len(s.sent) != 1 || !strings.Contains(s.sent[0], "Clipped Curry") {
			t.Errorf("unexpected import result %v %v", svc.lastSlot, s.sent)
		}

		svc.importErr = errors.New("no ingredients found")
		b.processMessage(message(99, "/import https://example.com/blog lunch"))
		if !strings.Contains(s.sent[1], "Error importing recipe") {
			t.Errorf("expected import error reply, got %q", s.sent[1])
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		b, s := newTestBot(&mockService{})
		b.processMessage(message(1, "hello"))
		if len(s.sent) != 1 || !strings.Contains(s.sent[0], "Unknown command") {
			t.Errorf("unexpected replies %v", s.sent)
		}
	})
}

func TestHandleWebhook(t *testing.T) {
	b, s := newTestBot(&mockService{})

	rec := httptest.NewRecorder()
	b.handleWebhook(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed update, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	update := `{"update_id": 1, "message": {"message_id": 1, "from": {"id": 42}, "chat": {"id": 42}, "text": "/help"}}`
	b.handleWebhook(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(update)))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) != 0 {
		t.Errorf("expected unauthorized user to be ignored, got %v", s.sent)
	}
}
