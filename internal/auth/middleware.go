package auth

import (
	"codeberg.org/codelens/server/internal/errors"
	"codeberg.org/codelens/server/internal/logger"
	"codeberg.org/codelens/server/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// APIKeyMiddleware admits requests carrying the shared secret either as a bearer
// token or as the "api_key" field of the JSON body. Anything else is rejected
// with 401 before the handler runs.
//
// The body is read with ShouldBindBodyWith so handlers can bind it again.
func APIKeyMiddleware(gate *Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gate.Valid(BearerToken(c.GetHeader("Authorization"))) {
			admit(c)
			return
		}

		// malformed or missing bodies simply carry no credential
		var cred Credential
		_ = c.ShouldBindBodyWith(&cred, binding.JSON) //nolint:errcheck

		if gate.Valid(cred.APIKey) {
			admit(c)
			return
		}

		reject(c)
	}
}

// QueryKeyMiddleware is the variant for upgrade requests: bearer header or ?api_key=.
func QueryKeyMiddleware(gate *Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gate.Valid(BearerToken(c.GetHeader("Authorization"))) || gate.Valid(c.Query(QueryParamAPIKey)) {
			admit(c)
			return
		}

		reject(c)
	}
}

func admit(c *gin.Context) {
	c.Set(ContextKeyAuthorized, true)
	c.Next()
}

func reject(c *gin.Context) {
	metrics.ObserveUnauthorized()

	logger.FromContext(c.Request.Context()).Warn("rejected request with invalid api key",
		"path", c.FullPath(),
		"client_ip", c.ClientIP(),
	)

	errors.Unauthorized(c)
}
