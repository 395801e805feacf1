package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nutriplan/internal/app"
	"nutriplan/internal/meal"
	"nutriplan/internal/metrics"
	"nutriplan/internal/nutrition"
	"nutriplan/internal/planner"
	"nutriplan/internal/sharing"
	"nutriplan/internal/shopping"
)

// Service is the application surface served over HTTP.
type Service interface {
	GeneratePlan(ctx context.Context, req meal.PlanRequest) meal.Plan
	NutritionFor(ctx context.Context, food string) (meal.NutritionInfo, nutrition.Source)
	SavePlan(ctx context.Context, userID int64, name string, req meal.PlanRequest, plan meal.Plan) (*planner.SavedPlan, error)
	ListPlans(ctx context.Context, userID int64) ([]planner.SavedPlan, error)
	GetPlan(ctx context.Context, id string) (*planner.SavedPlan, error)
	DeletePlan(ctx context.Context, id string) (bool, error)
	SharePlan(ctx context.Context, id string) (string, time.Time, error)
	GetSharedPlan(ctx context.Context, token string) (*planner.SavedPlan, error)
	ShoppingList(ctx context.Context, planID string) (*shopping.ShoppingList, error)
	Health() metrics.SysHealth
}

// Server exposes a Service as a JSON API.
type Server struct {
	svc    Service
	logger *zap.Logger
}

func NewServer(svc Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{svc: svc, logger: logger}
}

// Register adds the API routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/meal-plan", s.handleGeneratePlan)
	mux.HandleFunc("GET /api/nutrition/{food}", s.handleNutrition)
	mux.HandleFunc("POST /api/meal-plans/save", s.handleSavePlan)
	mux.HandleFunc("GET /api/meal-plans/user/{userId}", s.handleListPlans)
	mux.HandleFunc("GET /api/meal-plans/{id}", s.handleGetPlan)
	mux.HandleFunc("DELETE /api/meal-plans/{id}", s.handleDeletePlan)
	mux.HandleFunc("POST /api/meal-plans/{id}/share", s.handleSharePlan)
	mux.HandleFunc("GET /api/meal-plans/{id}/shopping-list", s.handleShoppingList)
	mux.HandleFunc("GET /api/shared/{token}", s.handleSharedPlan)
	mux.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the API routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return s.LogRequests(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LogRequests logs method, path, status and duration of every request.
func (s *Server) LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

type messageResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func (s *Server) writeFailure(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, messageResponse{Message: msg, Error: err.Error()})
}

func writeInvalid(w http.ResponseWriter, msg string, err error) {
	resp := messageResponse{Message: msg}
	var verr *ValidationError
	if errors.As(err, &verr) {
		resp.Errors = verr.Errors
	} else {
		resp.Errors = []FieldError{{Path: "", Message: err.Error()}}
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

func decodeRequest(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req meal.PlanRequest
	if err := decodeRequest(r, &req); err != nil {
		writeInvalid(w, "Invalid request body", err)
		return
	}
	if err := ValidateRequest(req); err != nil {
		writeInvalid(w, "Invalid request body", err)
		return
	}

	writeJSON(w, http.StatusOK, s.svc.GeneratePlan(r.Context(), req))
}

func (s *Server) handleNutrition(w http.ResponseWriter, r *http.Request) {
	food := r.PathValue("food")
	if food == "" {
		writeMessage(w, http.StatusBadRequest, "Food parameter is required")
		return
	}

	info, src := s.svc.NutritionFor(r.Context(), food)
	w.Header().Set("X-Nutrition-Source", string(src))
	writeJSON(w, http.StatusOK, info)
}

type savePlanRequest struct {
	UserID      int64             `json:"user_id"`
	PlanName    string            `json:"plan_name"`
	PlanRequest *meal.PlanRequest `json:"plan_request"`
	PlanData    *meal.Plan        `json:"plan_data"`
}

func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	var body savePlanRequest
	if err := decodeRequest(r, &body); err != nil {
		writeInvalid(w, "Invalid request body", err)
		return
	}
	if body.PlanRequest == nil {
		writeInvalid(w, "Invalid meal plan request", errors.New("plan_request is required"))
		return
	}
	if err := ValidateRequest(*body.PlanRequest); err != nil {
		writeInvalid(w, "Invalid meal plan request", err)
		return
	}
	if body.PlanData == nil {
		writeMessage(w, http.StatusBadRequest, "Plan data is required")
		return
	}

	saved, err := s.svc.SavePlan(r.Context(), body.UserID, body.PlanName, *body.PlanRequest, *body.PlanData)
	if err != nil {
		s.writeFailure(w, "Failed to save meal plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	plans, err := s.svc.ListPlans(r.Context(), userID)
	if err != nil {
		s.writeFailure(w, "Failed to fetch user meal plans", err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

// planID returns the {id} path value when it is a well-formed plan id.
func planID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid meal plan ID")
		return "", false
	}
	return id, true
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}

	plan, err := s.svc.GetPlan(r.Context(), id)
	if errors.Is(err, planner.ErrPlanNotFound) {
		writeMessage(w, http.StatusNotFound, "Meal plan not found")
		return
	}
	if err != nil {
		s.writeFailure(w, "Failed to fetch meal plan", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}

	deleted, err := s.svc.DeletePlan(r.Context(), id)
	if err != nil {
		s.writeFailure(w, "Failed to delete meal plan", err)
		return
	}
	if !deleted {
		writeMessage(w, http.StatusNotFound, "Meal plan not found or already deleted")
		return
	}
	writeMessage(w, http.StatusOK, "Meal plan deleted successfully")
}

type shareResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Server) handleSharePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}

	token, exp, err := s.svc.SharePlan(r.Context(), id)
	switch {
	case errors.Is(err, app.ErrSharingDisabled):
		writeMessage(w, http.StatusServiceUnavailable, "Plan sharing is not configured")
	case errors.Is(err, planner.ErrPlanNotFound):
		writeMessage(w, http.StatusNotFound, "Meal plan not found")
	case err != nil:
		s.writeFailure(w, "Failed to share meal plan", err)
	default:
		writeJSON(w, http.StatusOK, shareResponse{Token: token, URL: "/api/shared/" + token, ExpiresAt: exp})
	}
}

func (s *Server) handleSharedPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.svc.GetSharedPlan(r.Context(), r.PathValue("token"))
	switch {
	case errors.Is(err, app.ErrSharingDisabled):
		writeMessage(w, http.StatusServiceUnavailable, "Plan sharing is not configured")
	case errors.Is(err, sharing.ErrInvalidToken):
		writeMessage(w, http.StatusForbidden, "Share link is invalid or expired")
	case errors.Is(err, planner.ErrPlanNotFound):
		writeMessage(w, http.StatusNotFound, "Meal plan not found")
	case err != nil:
		s.writeFailure(w, "Failed to fetch shared meal plan", err)
	default:
		writeJSON(w, http.StatusOK, plan)
	}
}

func (s *Server) handleShoppingList(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}

	list, err := s.svc.ShoppingList(r.Context(), id)
	if errors.Is(err, planner.ErrPlanNotFound) {
		writeMessage(w, http.StatusNotFound, "Meal plan not found")
		return
	}
	if err != nil {
		s.writeFailure(w, "Failed to fetch shopping list", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Health())
}
