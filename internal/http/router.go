package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/shroudhq/shroud/internal/config"
	"github.com/shroudhq/shroud/internal/http/handlers"
	"github.com/shroudhq/shroud/internal/http/middleware"
	"github.com/shroudhq/shroud/internal/service"

	_ "github.com/shroudhq/shroud/docs"
)

func Router(cfg config.Config, orch *service.Orchestrator, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Orchestrator: orch,
		Validator:    validator.New(),
		Logger:       logger,
		SilBase:      cfg.SilBase,
	}

	r.GET("/healthz", h.Healthz)
	r.POST("/integrations/webchat", h.Webchat)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
