package di

import (
	"fmt"

	"character-crud-demo/backend/internal/api"
	"character-crud-demo/backend/internal/idgen"
	"character-crud-demo/backend/internal/repository"
	"character-crud-demo/backend/internal/service"
	"character-crud-demo/backend/pkg/config"
	"character-crud-demo/backend/pkg/health"
	"character-crud-demo/backend/pkg/logger"
	"character-crud-demo/backend/pkg/middleware"
	"character-crud-demo/backend/pkg/observability"

	"golang.org/x/time/rate"
)

// Container holds all the dependencies for the application
type Container struct {
	Config           *config.Config
	Logger           *logger.Logger
	Repository       repository.CharacterRepository
	CharacterService *service.CharacterService
	Metrics          *observability.Metrics
	Health           *health.Checker
	RateLimiter      *middleware.RateLimiter
}

// New creates a new dependency injection container. The repository starts
// empty; seeding is left to the caller.
func New(cfg *config.Config, log *logger.Logger) (*Container, error) {
	if cfg == nil {
		cfg = config.Load()
	}
	if log == nil {
		log = logger.GetGlobal()
	}

	repo := repository.NewMemoryCharacterRepository()

	metrics, err := observability.NewMetrics(cfg.Observability.ServiceName, repo.Len)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	characterService := service.NewCharacterService(repo, idgen.Generate, metrics)

	checker := health.NewChecker(log, cfg.Observability.HealthCheckPeriod)
	api.RegisterStoreCheck(checker, characterService)

	limiterOpts := middleware.DefaultRateLimiterOptions()
	limiterOpts.Limit = rate.Limit(cfg.Security.RateLimit)
	limiterOpts.Burst = cfg.Security.RateLimitBurst

	return &Container{
		Config:           cfg,
		Logger:           log,
		Repository:       repo,
		CharacterService: characterService,
		Metrics:          metrics,
		Health:           checker,
		RateLimiter:      middleware.NewRateLimiter(log, limiterOpts),
	}, nil
}
