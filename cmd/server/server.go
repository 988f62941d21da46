package main

import (
	"fmt"

	apiws "codeberg.org/codelens/server/api/websocket"
	"codeberg.org/codelens/server/internal/auth"
	"codeberg.org/codelens/server/internal/config"
	"codeberg.org/codelens/server/internal/langdetect"
	"codeberg.org/codelens/server/internal/logger"
	"codeberg.org/codelens/server/internal/ratelimit"
	ws "codeberg.org/codelens/server/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config, services *Services) (*Server, error) {
	limiterConfig := ratelimit.DefaultConfig()
	limiterConfig.Rate = cfg.RateLimit

	limiter, err := ratelimit.New(limiterConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	logger.Info("rate limiter initialized",
		"enabled", limiterConfig.Enabled,
		"rate", limiterConfig.Rate,
		"exempt_paths", limiterConfig.ExemptPaths,
	)

	hub := ws.NewHub(0)

	// register websocket message handlers
	hub.RegisterHandler(ws.TypeDetect, ws.DetectHandler(langdetect.Detect))
	hub.RegisterHandler(ws.TypePing, ws.PingHandler())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		logger.RequestLogger(),
		AllowHeadersMiddleware(),
		CORSMiddleware(cfg.CORS),
	)

	server := &Server{
		config:   cfg,
		services: services,
		gate:     auth.NewGate(cfg.APIKey),
		limiter:  limiter,
		hub:      hub,
		router:   router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// origin policy for the detection socket mirrors the CORS allow-list
func (s *Server) upgrader() *websocket.Upgrader {
	return apiws.NewUpgrader(ws.OriginChecker(
		s.config.CORS.AllowedOrigins,
		s.config.CORS.AllowAll,
		s.config.IsProduction(),
	))
}
