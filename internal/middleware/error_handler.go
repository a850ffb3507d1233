package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/i18n"
	"github.com/guttosm/print-quote-service/internal/logger"
)

// ErrorHandler logs errors attached with c.Error and answers 500 when the
// handler wrote nothing.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := GetRequestID(c)
		log := logger.ForRequest(requestID)
		log.Error().
			Err(c.Errors.Last().Err).
			Int("errors", len(c.Errors)).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Int("status_code", c.Writer.Status()).
			Msg("Request error")

		if !c.Writer.Written() {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
			c.JSON(http.StatusInternalServerError, dto.NewError(dto.ErrCodeInternal, message).WithRequestID(requestID))
		}
	}
}
