package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FACorreiaa/go-travel-recommendations/app/observability/metrics"
	database "github.com/FACorreiaa/go-travel-recommendations/app/db"
	"github.com/FACorreiaa/go-travel-recommendations/config"
	generativeAI "github.com/FACorreiaa/go-travel-recommendations/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/geocoding"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/image"
	llmInteraction "github.com/FACorreiaa/go-travel-recommendations/internal/api/llm_interaction"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/mapview"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/recommendation"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/records"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/travel"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *slog.Logger
	Pool          *pgxpool.Pool
	Store         records.RecordRepository
	Resolver      *geocoding.CachedResolver
	TravelService *travel.TravelServiceImpl
	TravelHandler *travel.HandlerImpl
	WebHandler    *travel.WebHandlerImpl
}

// NewContainer initializes and returns a new dependency container. The
// interaction log pool is only opened when repositories.postgres.enabled is set.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	storePath, err := records.DefaultPath(cfg.Storage.DataDir, cfg.Storage.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve travel data path: %w", err)
	}
	c.Store = records.NewJSONLRecordRepository(storePath, logger)
	logger.Info("Travel data store configured", slog.String("path", storePath))

	var recorder recommendation.InteractionRecorder
	if cfg.Repositories.Postgres.Enabled {
		pool, err := c.initInteractionLog(ctx)
		if err != nil {
			return nil, err
		}
		c.Pool = pool
		recorder = llmInteraction.NewPostgresLlmInteractionRepo(pool, logger)
	}

	var textGen recommendation.TextGenerator
	aiClient, err := generativeAI.NewAIClient(ctx, cfg.Providers.Gemini.Model)
	if err != nil {
		logger.Warn("Gemini client unavailable, recommendations will report the error", slog.Any("error", err))
		textGen = generativeAI.NewUnavailableClient(cfg.Providers.Gemini.Model, err)
	} else {
		textGen = aiClient
	}
	generator := recommendation.NewGenerator(textGen, recorder, cfg.Providers.Gemini.Temperature, logger)

	opencage := geocoding.NewOpenCageClientFromEnv(cfg.Providers.OpenCage.BaseURL, cfg.Providers.OpenCage.Timeout, logger)
	c.Resolver = geocoding.NewCachedResolver(opencage, cfg.Providers.OpenCage.CacheTTL, logger)

	unsplash := image.NewUnsplashClientFromEnv(cfg.Providers.Unsplash.BaseURL, cfg.Providers.Unsplash.Timeout, logger)

	renderer := mapview.NewRenderer(mapview.Options{
		Zoom:        cfg.Map.Zoom,
		TileURL:     cfg.Map.TileURL,
		Attribution: cfg.Map.Attribution,
		Width:       cfg.Map.Width,
		Height:      cfg.Map.Height,
	})

	c.TravelService = travel.NewTravelService(c.Resolver, generator, unsplash, renderer, c.Store, metrics.Get(), logger)
	c.TravelHandler = travel.NewHandlerImpl(c.TravelService, logger)
	c.WebHandler, err = travel.NewWebHandlerImpl(c.TravelService, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to parse web templates: %w", err)
	}

	return c, nil
}

func (c *Container) initInteractionLog(ctx context.Context) (*pgxpool.Pool, error) {
	dbConfig, err := database.NewDatabaseConfig(c.Config, c.Logger)
	if err != nil {
		return nil, err
	}

	if err = database.RunMigrations(dbConfig.ConnectionURL, c.Logger); err != nil {
		return nil, err
	}

	pool, err := database.Init(ctx, dbConfig.ConnectionURL, c.Logger)
	if err != nil {
		return nil, err
	}

	waitCtx := ctx
	if dbConfig.MaxConnWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, dbConfig.MaxConnWait)
		defer cancel()
	}
	if !database.WaitForDB(waitCtx, pool, c.Logger) {
		pool.Close()
		return nil, fmt.Errorf("interaction log database not ready")
	}
	return pool, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
