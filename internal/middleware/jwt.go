package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/i18n"
	"github.com/guttosm/print-quote-service/internal/service"
)

// Context keys set by StaffJWTAuth.
const (
	StaffIDKey     ContextKey = "staff_id"
	StaffEmailKey  ContextKey = "staff_email"
	StaffClaimsKey ContextKey = "staff_claims"
)

const bearerPrefix = "Bearer "

// StaffJWTAuth requires a valid staff access token in the Authorization header.
func StaffJWTAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(string(StaffIDKey), claims.StaffID)
		c.Set(string(StaffEmailKey), claims.Email)
		c.Set(string(StaffClaimsKey), claims)
		c.Next()
	}
}

// GetStaff returns the authenticated staff claims, if any.
func GetStaff(c *gin.Context) (*dto.Claims, bool) {
	v, ok := c.Get(string(StaffClaimsKey))
	if !ok {
		return nil, false
	}
	claims, ok := v.(*dto.Claims)
	return claims, ok
}

// staffIdentity returns the hex staff id and email stored on the context.
func staffIdentity(c *gin.Context) (id, email string) {
	if v, ok := c.Get(string(StaffIDKey)); ok {
		if oid, ok := v.(primitive.ObjectID); ok && !oid.IsZero() {
			id = oid.Hex()
		}
	}
	email = c.GetString(string(StaffEmailKey))
	return id, email
}

func abortUnauthorized(c *gin.Context, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
}
