package main

import (
	"net/http"

	_ "codeberg.org/codelens/server/docs"

	"codeberg.org/codelens/server/api/rest/health"
	"codeberg.org/codelens/server/api/rest/language"
	"codeberg.org/codelens/server/api/rest/score"
	"codeberg.org/codelens/server/api/rest/suggestions"
	"codeberg.org/codelens/server/api/rest/syntax"
	"codeberg.org/codelens/server/api/websocket"
	"codeberg.org/codelens/server/internal/auth"
	"codeberg.org/codelens/server/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	health.RegisterRoutes(router, server.services.Checker)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/doc.json", SwaggerDocHandler)

	gate := auth.APIKeyMiddleware(server.gate)

	api := router.Group("/")
	api.Use(server.limiter.Middleware())

	{
		suggestions.RegisterRoutes(api, server.services.Suggester, gate)
		language.RegisterRoutes(api, gate)
		syntax.RegisterRoutes(api, server.services.Checker, gate)
		score.RegisterRoutes(api, gate)
	}

	websocket.RegisterRoutes(router, server.hub, server.upgrader(), auth.QueryKeyMiddleware(server.gate))
}

// serves the generated OpenAPI document
func SwaggerDocHandler(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		errors.InternalError(c, "failed to read API docs", err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
