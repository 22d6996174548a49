package handler

import (
	"asteroid-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer    trace.Tracer
	asteroids *service.AsteroidService
}

func New(tracer trace.Tracer, asteroids *service.AsteroidService) *Handler {
	return &Handler{
		tracer:    tracer,
		asteroids: asteroids,
	}
}

// RegisterRoutes mounts the API. Mutating routes require apiKey when it is set.
func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	asteroids := r.Group("/asteroids")
	asteroids.GET("", h.ListAsteroids)
	asteroids.GET("/:id", h.GetAsteroid)
	asteroids.GET("/filter/hazardous", h.ListHazardous)
	asteroids.GET("/filter/not_hazardous", h.ListNotHazardous)
	asteroids.GET("/fetch/runs", h.ListFetchRuns)

	protected := asteroids.Group("", APIKeyAuth(apiKey))
	protected.POST("", h.CreateAsteroid)
	protected.PUT("/:id", h.UpdateAsteroid)
	protected.DELETE("/:id", h.DeleteAsteroid)
	protected.POST("/fetch", h.FetchAsteroids)
}
