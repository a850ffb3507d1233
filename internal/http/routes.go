package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/service"
)

// PublicRouteGroup defines routes that don't require authentication.
type PublicRouteGroup interface {
	RegisterPublicRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// ProtectedRouteGroup defines routes registered behind the staff guard.
type ProtectedRouteGroup interface {
	RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// QuoteRoutes registers the /quotes routes.
type QuoteRoutes struct {
	handler *QuoteHandler
}

// NewQuoteRoutes creates a new QuoteRoutes instance.
func NewQuoteRoutes(handler *QuoteHandler) *QuoteRoutes {
	return &QuoteRoutes{handler: handler}
}

// RegisterPublicRoutes registers the routes the form hosts call.
func (r *QuoteRoutes) RegisterPublicRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	quotes := rg.Group("/quotes")
	quotes.POST("", middleware.Idempotency(cfg.Idempotency), r.handler.Create)
	quotes.GET("", r.handler.List)
	quotes.GET("/:id", r.handler.Get)
	quotes.GET("/:id/export", r.handler.Export)
}

// RegisterProtectedRoutes registers the staff routes.
func (r *QuoteRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	quotes := rg.Group("/quotes")
	quotes.PUT("/:id/status", middleware.Idempotency(cfg.Idempotency), r.handler.UpdateStatus)
	quotes.DELETE("/:id", r.handler.Delete)
	quotes.GET("/:id/history", r.handler.History)
}

// AuthRoutes registers the staff login route.
type AuthRoutes struct {
	handler *AuthHandler
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(authService service.AuthService) *AuthRoutes {
	return &AuthRoutes{handler: NewAuthHandler(authService)}
}

// RegisterPublicRoutes registers POST /auth/login.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", r.handler.Login)
}

var (
	_ PublicRouteGroup    = (*QuoteRoutes)(nil)
	_ ProtectedRouteGroup = (*QuoteRoutes)(nil)
)
