package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"testhub/internal/domain/apikey"
	"testhub/internal/utils/platformerrors"
)

const apiKeyHeader = "X-API-Key"
const apiKeyContextKey = "api_key"

// APIKeyAuth guards upload endpoints with the X-API-Key header. The
// resolved key is stored in the gin context for handlers that want to
// attribute uploads.
func APIKeyAuth(keys *apikey.Service, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader(apiKeyHeader)
		key, err := keys.Authenticate(c.Request.Context(), secret)
		if err != nil {
			logger.Warn().
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("rejected upload request with invalid api key")
			platformerrors.WriteUnauthorized(c, "invalid api key")
			c.Abort()
			return
		}
		c.Set(apiKeyContextKey, key)
		c.Next()
	}
}

// APIKeyFromContext returns the authenticated key, if any.
func APIKeyFromContext(c *gin.Context) (*apikey.APIKey, bool) {
	val, ok := c.Get(apiKeyContextKey)
	if !ok {
		return nil, false
	}
	key, ok := val.(*apikey.APIKey)
	return key, ok
}
