package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/i18n"
)

const (
	// APIKeyHeader is checked first.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the fallback query parameter.
	APIKeyQuery = "api_key"
)

// APIKeyAuth accepts requests carrying one of validKeys. With no keys configured
// every request passes.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}
		if key == "" {
			abortUnauthorized(c, i18n.ErrKeyAPIKeyRequired)
			return
		}
		if !knownKey(validKeys, key) {
			abortUnauthorized(c, i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Next()
	}
}

func knownKey(validKeys map[string]bool, key string) bool {
	found := false
	for k, enabled := range validKeys {
		if enabled && subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			found = true
		}
	}
	return found
}
