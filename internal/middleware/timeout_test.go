package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
)

func TestTimeout(t *testing.T) {
	router := gin.New()
	router.Use(Timeout(20 * time.Millisecond))
	router.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	router.GET("/fast", func(c *gin.Context) {
		_, hasDeadline := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"deadline": hasDeadline})
	})

	w := serve(router, httptest.NewRequest(http.MethodGet, "/slow", nil))
	require.Equal(t, http.StatusGatewayTimeout, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, dto.ErrCodeTimeout, body.Error)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/fast", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deadline":true}`, w.Body.String())
}

func TestTimeout_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(Timeout(0))
	router.GET("/", func(c *gin.Context) {
		_, hasDeadline := c.Request.Context().Deadline()
		assert.False(t, hasDeadline)
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(router, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}
