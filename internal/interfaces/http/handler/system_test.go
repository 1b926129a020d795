package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping() error { return f.err }

func newSystemTestServer(db Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewSystemHandler(db, "1.0.0").RegisterRoutes(api)
	return engine
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy storage", func(t *testing.T) {
		engine := newSystemTestServer(fakePinger{})

		w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/system/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		data := resp.Data.(map[string]any)
		assert.Equal(t, "ok", data["status"])
		assert.Equal(t, "ok", data["storage"])
	})

	t.Run("storage failure is reported, not fatal", func(t *testing.T) {
		engine := newSystemTestServer(fakePinger{err: errors.New("connection refused")})

		w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/system/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		data := resp.Data.(map[string]any)
		assert.Equal(t, "unreachable", data["storage"])
	})
}

func TestSystemHandler_Info(t *testing.T) {
	engine := newSystemTestServer(fakePinger{})

	w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/system/info", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "1.0.0", data["version"])
	assert.NotEmpty(t, data["go_version"])
}
