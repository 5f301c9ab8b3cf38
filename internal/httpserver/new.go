package httpserver

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	gcBackend "parley/internal/backend/googlechat"
	tgBackend "parley/internal/backend/telegram"
	"parley/internal/inspect"
	"parley/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Backend webhook deliveries; nil skips the route.
	telegramHandler   tgBackend.Handler
	googleChatHandler gcBackend.Handler

	// Debug surface
	inspectHandler inspect.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Backend webhook deliveries
	TelegramHandler   tgBackend.Handler
	GoogleChatHandler gcBackend.Handler

	// Debug surface
	InspectHandler inspect.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                 logger,
		gin:               gin.New(),
		port:              cfg.Port,
		mode:              cfg.Mode,
		environment:       cfg.Environment,
		telegramHandler:   cfg.TelegramHandler,
		googleChatHandler: cfg.GoogleChatHandler,
		inspectHandler:    cfg.InspectHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}

// Run maps the routes and serves until the listener stops.
func (srv HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return err
	}
	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}
