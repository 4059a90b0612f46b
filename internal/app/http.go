package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"session-service/internal/clock"
	"session-service/internal/config"
	"session-service/internal/handler"
	"session-service/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	clk := clock.New()

	infra, err := setupInfra(ctx, cfg, clk)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	service := session.NewService(infra.Store, clk)
	sessionHandler := handler.NewHandler(service)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	sessionHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router, infra.cleanup, nil
}
