package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-planner/internal/app/domain/generator"
	"github.com/FACorreiaa/loci-planner/internal/app/domain/itinerary"
	"github.com/FACorreiaa/loci-planner/internal/app/domain/planner"
	"github.com/FACorreiaa/loci-planner/internal/app/handlers"
	"github.com/FACorreiaa/loci-planner/internal/app/observability/metrics"
	"github.com/FACorreiaa/loci-planner/internal/pkg/cache"
	"github.com/FACorreiaa/loci-planner/internal/pkg/config"
)

// Dependencies are the long lived collaborators the handlers are built from.
type Dependencies struct {
	Config  *config.Config
	Caches  *cache.CacheManager
	LLM     generator.LLMClient // nil when no API key is configured
	Metrics *metrics.AppMetrics
	Logger  *zap.Logger
}

type AppHandlers struct {
	Planner   *planner.Handler
	Generator *generator.Handler
}

func Setup(r *gin.Engine, deps Dependencies) {
	setupRouter(r, setupDependencies(deps))
}

func setupDependencies(deps Dependencies) *AppHandlers {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg := deps.Config

	generatorService := generator.NewService(deps.LLM, deps.Caches.Itineraries, cfg.LLM.Temperature, log, deps.Metrics)
	itineraryClient := itinerary.NewClient(cfg.Itinerary.APIURL, cfg.Itinerary.HTTPTimeout, log)

	baseHandler := handlers.NewBaseHandler(log)
	plannerController := planner.NewController(itineraryClient, log, deps.Metrics)
	sessionStore := planner.NewSessionStore(cfg.Session.TTL)

	return &AppHandlers{
		Planner:   planner.NewHandler(baseHandler, plannerController, sessionStore, log, deps.Metrics),
		Generator: generator.NewHandler(generatorService, log, deps.Metrics),
	}
}

func setupRouter(r *gin.Engine, h *AppHandlers) {
	// Planner page and its htmx fragments
	r.GET("/", h.Planner.ShowPlanner)
	plannerGroup := r.Group("/planner")
	{
		plannerGroup.POST("/interests", h.Planner.AddInterest)
		plannerGroup.DELETE("/interests", h.Planner.RemoveInterest)
		plannerGroup.POST("/submit", h.Planner.Submit)
		plannerGroup.POST("/new", h.Planner.NewPlan)
		plannerGroup.POST("/error/dismiss", h.Planner.DismissError)
	}

	// Itinerary generation API
	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/generate-itinerary", h.Generator.GenerateItinerary)
	}

	r.GET("/health", h.Generator.Health)
}
