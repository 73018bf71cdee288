package router

import (
	"net/http"

	"character-crud-demo/backend/internal/api"
	"character-crud-demo/backend/pkg/di"
	"character-crud-demo/backend/pkg/errors"
	"character-crud-demo/backend/pkg/logger"
	"character-crud-demo/backend/pkg/observability"

	"github.com/gin-gonic/gin"
)

// Greeting is served on the root path
const Greeting = "Hello, World!"

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Use the logger middleware first to capture all requests
	engine.Use(logger.Middleware(container.Logger))

	// Metrics and tracing read the final status, so they wrap the error handler
	engine.Use(container.Metrics.Middleware())
	engine.Use(observability.TracingMiddleware(container.Config.Observability.ServiceName))

	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())
	engine.Use(container.RateLimiter.Middleware())

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	r.Engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Greeting)
	})

	api.NewCharacterHandler(r.Container.CharacterService).RegisterRoutes(r.Engine)

	r.Engine.GET("/health", r.Container.Health.Handler())
	r.Engine.GET("/metrics", gin.WrapH(r.Container.Metrics.Handler()))

	r.Engine.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not found")
	})
}
