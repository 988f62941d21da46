package main

import (
	"codeberg.org/codelens/server/api/rest/health"
	"codeberg.org/codelens/server/api/rest/suggestions"
	"codeberg.org/codelens/server/api/rest/syntax"
	"codeberg.org/codelens/server/internal/auth"
	"codeberg.org/codelens/server/internal/config"
	"codeberg.org/codelens/server/internal/ratelimit"
	ws "codeberg.org/codelens/server/internal/websocket"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	services *Services
	gate     *auth.Gate
	limiter  *ratelimit.Limiter
	hub      *ws.Hub
	router   *gin.Engine
}

// runs snippets through local toolchains and reports which ones exist
type SyntaxChecker interface {
	syntax.Checker
	health.CheckerInventory
}

// holds all external service clients (toolchains, completion provider)
type Services struct {
	Checker   SyntaxChecker
	Suggester suggestions.Suggester
}
