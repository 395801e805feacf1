package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nutriplan/internal/meal"
)

// ErrPlanNotFound is returned when a saved plan does not exist.
var ErrPlanNotFound = errors.New("meal plan not found")

// DefaultUserID owns plans saved without a user.
const DefaultUserID int64 = 1

// SavedPlan represents a stored meal plan together with the request that produced it.
type SavedPlan struct {
	ID          string                 `json:"id"`
	UserID      int64                  `json:"user_id"`
	PlanName    string                 `json:"plan_name"`
	DateCreated time.Time              `json:"date_created"`
	Preferences meal.MealPreferences   `json:"preferences"`
	Goals       meal.HealthGoals       `json:"goals"`
	Budget      meal.BudgetConstraints `json:"budget"`
	PlanData    meal.Plan              `json:"plan_data"`
}

// Request rebuilds the request stored with the plan.
func (p SavedPlan) Request() meal.PlanRequest {
	return meal.PlanRequest{Preferences: p.Preferences, Goals: p.Goals, Budget: p.Budget}
}

// DefaultPlanName names a plan saved on t without an explicit name.
func DefaultPlanName(t time.Time) string {
	return "Meal Plan - " + t.Format("1/2/2006")
}

// PlanRepository is a database-backed repository for meal plans.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{db: d}
}

// Save inserts a new meal plan and returns the stored record. A zero userID
// and an empty name are replaced by their defaults.
func (r *PlanRepository) Save(ctx context.Context, userID int64, name string, req meal.PlanRequest, plan meal.Plan) (*SavedPlan, error) {
	now := time.Now().UTC()
	if userID == 0 {
		userID = DefaultUserID
	}
	if name == "" {
		name = DefaultPlanName(now)
	}

	saved := &SavedPlan{
		ID:          uuid.NewString(),
		UserID:      userID,
		PlanName:    name,
		DateCreated: now,
		Preferences: req.Preferences,
		Goals:       req.Goals,
		Budget:      req.Budget,
		PlanData:    plan,
	}

	cols, err := marshalColumns(saved)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO saved_meal_plans (id, user_id, plan_name, date_created, preferences, goals, budget, plan_data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		saved.ID, saved.UserID, saved.PlanName, saved.DateCreated,
		cols[0], cols[1], cols[2], cols[3])
	if err != nil {
		return nil, fmt.Errorf("failed to insert meal plan: %w", err)
	}
	return saved, nil
}

// ListByUser returns every plan of userID, newest first.
func (r *PlanRepository) ListByUser(ctx context.Context, userID int64) ([]SavedPlan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, plan_name, date_created, preferences, goals, budget, plan_data
		FROM saved_meal_plans WHERE user_id = ? ORDER BY date_created DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans for user %d: %w", userID, err)
	}
	defer rows.Close()

	plans := []SavedPlan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

// Get returns the plan with id, or ErrPlanNotFound.
func (r *PlanRepository) Get(ctx context.Context, id string) (*SavedPlan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, plan_name, date_created, preferences, goals, budget, plan_data
		FROM saved_meal_plans WHERE id = ?`, id)
	p, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the plan with id. It reports whether a plan was removed.
func (r *PlanRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_meal_plans WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete meal plan %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func marshalColumns(p *SavedPlan) ([4]string, error) {
	var out [4]string
	for i, v := range []any{p.Preferences, p.Goals, p.Budget, p.PlanData} {
		b, err := json.Marshal(v)
		if err != nil {
			return out, fmt.Errorf("failed to marshal meal plan column: %w", err)
		}
		out[i] = string(b)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*SavedPlan, error) {
	var (
		p                                  SavedPlan
		preferences, goals, budget, planJS string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.PlanName, &p.DateCreated, &preferences, &goals, &budget, &planJS); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan meal plan: %w", err)
	}

	targets := []struct {
		raw string
		dst any
	}{
		{preferences, &p.Preferences},
		{goals, &p.Goals},
		{budget, &p.Budget},
		{planJS, &p.PlanData},
	}
	for _, t := range targets {
		if err := json.Unmarshal([]byte(t.raw), t.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal meal plan %s: %w", p.ID, err)
		}
	}
	return &p, nil
}
