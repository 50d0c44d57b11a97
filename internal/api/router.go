// Package api assembles the gin router for the content-service.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/petalhealth/content-service/internal/config"
	"github.com/petalhealth/content-service/internal/handlers"
	"github.com/petalhealth/content-service/internal/logger"
)

const corsMaxAgeHours = 12

// Handlers groups everything the router mounts.
type Handlers struct {
	Content *handlers.ContentHandler
	Admin   *handlers.AdminHandler
	Debug   *handlers.DebugHandler
}

func NewRouter(h Handlers, cfg *config.Config, log logger.Logger) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "accept", "origin", "Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.GET("/topics", h.Content.ListTopics)
	v1.GET("/questions", h.Content.ListQuestions)
	v1.GET("/pathways", h.Content.ListPathways)
	v1.GET("/infertility", h.Content.ListInfertilityInfo)
	v1.GET("/resources", h.Content.ListResources)
	v1.GET("/status", h.Content.GetStatus)
	v1.POST("/refresh", h.Content.TriggerRefresh)

	if h.Admin != nil {
		v1.GET("/resources/preview", h.Admin.PreviewResource)
		v1.POST("/admin/import", h.Admin.ImportWorkbook)
	}

	// Debug inspector is only mounted in debug mode.
	if cfg.Debug && h.Debug != nil {
		debug := router.Group("/debug")
		debug.GET("/content", h.Debug.Info)
		debug.POST("/remote", h.Debug.SetRemote)
		debug.POST("/cache/clear", h.Debug.ClearCache)
	}

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", time.Since(start)),
		)
	}
}
