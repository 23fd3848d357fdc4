package httpapi

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig configures authentication and CORS of the API.
type RouterConfig struct {
	BotToken       string
	InitDataTTL    time.Duration
	AllowedOrigins []string
}

// NewRouter wires the API routes.
func NewRouter(h *Handler, cfg RouterConfig, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	{
		api.GET("/level", h.Level)
		api.GET("/path", h.Path)

		protected := api.Group("/")
		protected.Use(InitDataAuth(cfg.BotToken, cfg.InitDataTTL, time.Now))
		{
			protected.GET("/me", h.Me)
		}
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", initDataHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
