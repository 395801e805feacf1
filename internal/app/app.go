package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"nutriplan/internal/catalog"
	"nutriplan/internal/clipper"
	"nutriplan/internal/meal"
	"nutriplan/internal/metrics"
	"nutriplan/internal/nutrition"
	"nutriplan/internal/planner"
	"nutriplan/internal/shopping"
	"nutriplan/internal/sharing"
	"nutriplan/internal/storage"
)

// ErrSharingDisabled is returned by share operations when no signer is configured.
var ErrSharingDisabled = errors.New("plan sharing is disabled")

// Deps holds the collaborators of an App. Signer, Archive and Clipper are
// optional; the features they back report an error when missing.
type Deps struct {
	Planner      *planner.Planner
	Plans        *planner.PlanRepository
	Lists        *shopping.Repository
	MetricsStore *metrics.Store
	Imported     *catalog.Repository
	Resolver     *nutrition.Resolver
	Archive      *storage.PlanArchive
	Signer       *sharing.Signer
	Clipper      *clipper.Clipper
	DataPath     string
	Logger       *zap.Logger
}

// App holds the application's dependencies.
type App struct {
	planner      *planner.Planner
	plans        *planner.PlanRepository
	lists        *shopping.Repository
	metricsStore *metrics.Store
	imported     *catalog.Repository
	resolver     *nutrition.Resolver
	archive      *storage.PlanArchive
	signer       *sharing.Signer
	clipper      *clipper.Clipper
	dataPath     string
	logger       *zap.Logger
}

// NewApp creates and initializes a new App instance.
func NewApp(d Deps) *App {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &App{
		planner:      d.Planner,
		plans:        d.Plans,
		lists:        d.Lists,
		metricsStore: d.MetricsStore,
		imported:     d.Imported,
		resolver:     d.Resolver,
		archive:      d.Archive,
		signer:       d.Signer,
		clipper:      d.Clipper,
		dataPath:     d.DataPath,
		logger:       d.Logger,
	}
}

// GeneratePlan builds a plan for req and records per-slot selection metrics.
// Metric failures are logged and never affect the plan.
func (a *App) GeneratePlan(ctx context.Context, req meal.PlanRequest) meal.Plan {
	plan, metas := a.planner.Generate(ctx, req)

	if a.metricsStore != nil {
		if err := a.metricsStore.RecordMeta(ctx, metas...); err != nil {
			a.logger.Warn("failed to record selection metrics", zap.Error(err))
		}
	}
	return plan
}

// SavePlan stores a plan with its request and derives its shopping list.
func (a *App) SavePlan(ctx context.Context, userID int64, name string, req meal.PlanRequest, plan meal.Plan) (*planner.SavedPlan, error) {
	saved, err := a.plans.Save(ctx, userID, name, req, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}

	list := &shopping.ShoppingList{
		UserID:     saved.UserID,
		MealPlanID: saved.ID,
		Items:      shopping.BuildList(plan),
	}
	if _, err := a.lists.Save(ctx, list); err != nil {
		a.logger.Warn("failed to save shopping list", zap.String("plan_id", saved.ID), zap.Error(err))
	}
	return saved, nil
}

func (a *App) ListPlans(ctx context.Context, userID int64) ([]planner.SavedPlan, error) {
	return a.plans.ListByUser(ctx, userID)
}

func (a *App) GetPlan(ctx context.Context, id string) (*planner.SavedPlan, error) {
	return a.plans.Get(ctx, id)
}

// DeletePlan removes a saved plan, its shopping list and any archived copy.
func (a *App) DeletePlan(ctx context.Context, id string) (bool, error) {
	deleted, err := a.plans.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	if err := a.lists.DeleteByMealPlanID(ctx, id); err != nil {
		a.logger.Warn("failed to delete shopping list", zap.String("plan_id", id), zap.Error(err))
	}
	if a.archive != nil {
		if err := a.archive.RemoveStaleVersions(id); err != nil {
			a.logger.Warn("failed to remove archived plan", zap.String("plan_id", id), zap.Error(err))
		}
	}
	return true, nil
}

// SharePlan issues a share token for an existing plan.
func (a *App) SharePlan(ctx context.Context, id string) (string, time.Time, error) {
	if a.signer == nil {
		return "", time.Time{}, ErrSharingDisabled
	}
	if _, err := a.plans.Get(ctx, id); err != nil {
		return "", time.Time{}, err
	}
	return a.signer.Issue(id)
}

// GetSharedPlan resolves a share token to the plan it names.
func (a *App) GetSharedPlan(ctx context.Context, token string) (*planner.SavedPlan, error) {
	if a.signer == nil {
		return nil, ErrSharingDisabled
	}
	id, err := a.signer.Parse(token)
	if err != nil {
		return nil, err
	}
	return a.plans.Get(ctx, id)
}

// ShoppingList returns the stored list of a plan, rebuilding it when the plan
// predates its list.
func (a *App) ShoppingList(ctx context.Context, planID string) (*shopping.ShoppingList, error) {
	list, err := a.lists.GetByMealPlanID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if list != nil {
		return list, nil
	}

	saved, err := a.plans.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	list = &shopping.ShoppingList{
		UserID:     saved.UserID,
		MealPlanID: saved.ID,
		Items:      shopping.BuildList(saved.PlanData),
	}
	if _, err := a.lists.Save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ExportPlans writes every plan of userID to the archive and returns how
// many files were written. Plans already archived are skipped.
func (a *App) ExportPlans(ctx context.Context, userID int64) (int, error) {
	if a.archive == nil {
		return 0, fmt.Errorf("no plan archive configured")
	}
	plans, err := a.plans.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, p := range plans {
		if a.archive.Exists(p.ID) {
			a.logger.Debug("plan already archived", zap.String("plan_id", p.ID))
			continue
		}
		if _, err := a.archive.Save(p, p.DateCreated); err != nil {
			return written, fmt.Errorf("failed to archive plan %s: %w", p.ID, err)
		}
		written++
	}
	return written, nil
}

// ImportMeal clips a recipe page and stores it as an extra catalog candidate.
func (a *App) ImportMeal(ctx context.Context, url string, slot meal.Slot, bucket catalog.Bucket, cost float64) (*catalog.ImportedMeal, error) {
	if a.clipper == nil {
		return nil, fmt.Errorf("no recipe clipper configured")
	}
	if !slot.Valid() {
		return nil, fmt.Errorf("invalid slot %q", slot)
	}
	if !slices.Contains(catalog.Buckets, bucket) {
		return nil, fmt.Errorf("invalid bucket %q", bucket)
	}
	if cost < 0 {
		return nil, fmt.Errorf("cost must not be negative")
	}

	rec, err := a.clipper.ClipURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to clip recipe: %w", err)
	}

	imported := catalog.ImportedMeal{
		Slot:      slot,
		Bucket:    bucket,
		Candidate: rec.Candidate(cost),
		SourceURL: rec.SourceURL,
	}
	id, err := a.imported.Save(ctx, imported)
	if err != nil {
		return nil, fmt.Errorf("failed to save imported meal: %w", err)
	}
	imported.ID = id

	a.logger.Info("imported meal",
		zap.Int64("id", id),
		zap.String("name", imported.Candidate.Name),
		zap.String("slot", string(slot)),
		zap.String("bucket", string(bucket)))
	return &imported, nil
}

// NutritionFor resolves the nutrition facts of a food name.
func (a *App) NutritionFor(ctx context.Context, food string) (meal.NutritionInfo, nutrition.Source) {
	return a.resolver.Resolve(ctx, food)
}

func (a *App) Usage(ctx context.Context, days int) ([]metrics.DailyUsage, error) {
	return a.metricsStore.GetDailyUsage(ctx, days)
}

func (a *App) CleanupMetrics(ctx context.Context, days int) (int64, error) {
	return a.metricsStore.Cleanup(ctx, days)
}

func (a *App) Health() metrics.SysHealth {
	return metrics.GetSysHealth(a.dataPath)
}
