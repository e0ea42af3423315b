package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newIdentityRouter(captured *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/protected", CallerIdentity(), func(c *gin.Context) {
		if callerID, ok := GetCallerAccountID(c); ok {
			*captured = callerID
		}
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestCallerIdentity(t *testing.T) {
	t.Run("valid header passes through", func(t *testing.T) {
		var captured uuid.UUID
		router := newIdentityRouter(&captured)

		callerID := uuid.New()
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/protected", nil)
		req.Header.Set(CallerAccountHeader, callerID.String())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, callerID, captured)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		var captured uuid.UUID
		router := newIdentityRouter(&captured)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
		assert.Equal(t, uuid.Nil, captured, "handler never runs")
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		var captured uuid.UUID
		router := newIdentityRouter(&captured)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/protected", nil)
		req.Header.Set(CallerAccountHeader, "not-a-uuid")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, uuid.Nil, captured)
	})
}

func TestGetCallerAccountID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("absent", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		id, ok := GetCallerAccountID(c)
		assert.False(t, ok)
		assert.Equal(t, uuid.Nil, id)
	})

	t.Run("wrong type", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(CallerAccountKey, "string, not a uuid")
		id, ok := GetCallerAccountID(c)
		assert.False(t, ok)
		assert.Equal(t, uuid.Nil, id)
	})
}
