package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nihar360/admin/internal/shared/apperr"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEngine mirrors the chain NewRouter installs.
func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	l := testLogger()
	r := gin.New()
	r.Use(RequestID())
	r.Use(Logger(l))
	r.Use(ErrorHandler(l))
	r.Use(Recovery(l))
	return r
}

func TestPanicRendersInternalError(t *testing.T) {
	r := newTestEngine()
	r.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "unexpected error")
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestFailedRequestRendersQueuedError(t *testing.T) {
	r := newTestEngine()
	r.GET("/missing", func(c *gin.Context) {
		Fail(c, apperr.NotFoundErr("Order not found."))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Order not found.")
}

func TestAdminActorRequiresIdentity(t *testing.T) {
	r := newTestEngine()
	r.PATCH("/guarded", AdminActor(), func(c *gin.Context) {
		id, ok := ActorID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"actor": id})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/guarded", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/guarded", nil)
	req.Header.Set(HeaderAdminID, "42")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}
