package httpserver

import (
	"context"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"parley/internal/inspect"
	"parley/internal/middleware"
	"parley/internal/model"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	mw := middleware.New(srv.l)
	srv.gin.Use(mw.RequestLogger(), mw.Recovery())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Server mode: production")
	} else {
		srv.l.Infof(ctx, "Server mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	// Telegram webhook
	if srv.telegramHandler != nil {
		srv.gin.POST("/webhooks/telegram", srv.telegramHandler.HandleWebhook)
		srv.l.Infof(ctx, "Telegram webhook route registered at POST /webhooks/telegram")
	} else {
		srv.l.Infof(ctx, "Telegram handler not configured, skipping webhook route")
	}

	// Google Chat webhook
	if srv.googleChatHandler != nil {
		srv.gin.POST("/webhooks/googlechat", srv.googleChatHandler.HandleWebhook)
		srv.l.Infof(ctx, "Google Chat webhook route registered at POST /webhooks/googlechat")
	} else {
		srv.l.Infof(ctx, "Google Chat handler not configured, skipping webhook route")
	}

	// Classification debug surface
	if srv.inspectHandler != nil {
		inspect.RegisterRoutes(srv.gin.Group("/v1/inspect"), srv.inspectHandler)
		srv.l.Infof(ctx, "Inspect routes registered under /v1/inspect")
	}

	return nil
}
