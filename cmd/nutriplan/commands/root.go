package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nutriplan/internal/app"
	"nutriplan/internal/catalog"
	"nutriplan/internal/clipper"
	"nutriplan/internal/config"
	"nutriplan/internal/database"
	"nutriplan/internal/logger"
	"nutriplan/internal/metrics"
	"nutriplan/internal/nutrition"
	"nutriplan/internal/planner"
	"nutriplan/internal/scoring"
	"nutriplan/internal/sharing"
	"nutriplan/internal/shopping"
	"nutriplan/internal/storage"
)

var (
	cfg    *config.Config
	log    *zap.Logger
	appCtx *app.App

	db    *database.DB
	cache *nutrition.CachedLookup
)

func Execute() error {
	root := &cobra.Command{
		Use:          "nutriplan",
		Short:        "Rule-based daily meal planner",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.NewFromEnv()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log, err = logger.New(cfg.LogLevel, cfg.LogDevelopment)
			if err != nil {
				return err
			}
			appCtx, err = buildApp(cfg, log)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return shutdown()
		},
	}

	root.AddCommand(
		generateCmd(),
		serveCmd(),
		plansCmd(),
		importMealCmd(),
		metricsCmd(),
		metricsCleanupCmd(),
	)
	return root.Execute()
}

// buildApp opens the database and assembles the application service.
func buildApp(cfg *config.Config, log *zap.Logger) (*app.App, error) {
	var err error
	db, err = database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scoringCfg, err := scoring.LoadConfig(cfg.ScoringConfigPath)
	if err != nil {
		return nil, err
	}

	var lookup nutrition.Lookup
	if usda := nutrition.NewUSDAClient(cfg); usda != nil {
		cache, err = nutrition.NewCachedLookup(usda, cfg.NutritionCachePath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize nutrition cache: %w", err)
		}
		lookup = cache
	}
	resolver := nutrition.NewResolver(lookup, log)

	imported := catalog.NewRepository(db.SQL)
	mealPlanner := planner.NewPlanner(
		catalog.NewStore(imported, log),
		scoring.NewScorer(scoringCfg),
		resolver,
		planner.NewRandomSource(cfg.RandomSeed),
		log,
	)

	archive, err := storage.NewPlanArchive(cfg.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize plan archive: %w", err)
	}

	var signer *sharing.Signer
	if cfg.SharingEnabled() {
		signer, err = sharing.NewSigner(cfg.ShareSecret, cfg.ShareTTL)
		if err != nil {
			return nil, err
		}
	}

	return app.NewApp(app.Deps{
		Planner:      mealPlanner,
		Plans:        planner.NewPlanRepository(db.SQL),
		Lists:        shopping.NewRepository(db.SQL),
		MetricsStore: metrics.NewStore(db.SQL),
		Imported:     imported,
		Resolver:     resolver,
		Archive:      archive,
		Signer:       signer,
		Clipper:      clipper.NewClipper(),
		DataPath:     filepath.Dir(cfg.DatabasePath),
		Logger:       log,
	}), nil
}

func shutdown() error {
	if cache != nil {
		if err := cache.SaveCache(); err != nil {
			log.Warn("failed to save nutrition cache", zap.Error(err))
		}
	}
	if log != nil {
		_ = log.Sync()
	}
	if db != nil {
		return db.Close()
	}
	return nil
}
