package api

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", h.HealthCheckHandler)
		apiGroup.GET("/assignments", h.ListAssignmentsHandler)
		apiGroup.POST("/assignments", h.CreateAssignmentHandler)
		apiGroup.DELETE("/assignments/:id", h.DeleteAssignmentHandler)
	}

	if h.Metrics != nil {
		h.Metrics.setStored(h.Tracker.Len())
		router.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	return router
}

// WithCORS lets the browser front end on the given origins call the API.
func WithCORS(next http.Handler, origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(next)
}
