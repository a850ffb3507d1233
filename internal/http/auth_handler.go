package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/i18n"
	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/service"
)

// AuthHandler serves staff authentication routes.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Staff login
// @Description  Authenticates a staff member and returns an access token for the status, delete and history routes.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful login"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Staff store unavailable"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.LoginRequest](c)
	if err != nil {
		builder.ValidationFailed(err)
		return
	}

	audit := middleware.Audit{
		Action:  model.ActionStaffLogin,
		Message: "Staff login",
		Fields:  map[string]interface{}{"email": req.Email},
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCredentials):
		audit.Message = "Failed staff login"
		middleware.AuditLogError(c, audit, err)
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, err)
		return
	case errors.Is(err, service.ErrStoreUnavailable):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
		return
	default:
		middleware.AuditLogError(c, audit, err)
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	middleware.AuditLog(c, audit)
	builder.SuccessOK(resp)
}
