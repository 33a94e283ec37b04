package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecker_States(t *testing.T) {
	c := NewChecker(nil)
	assert.Equal(t, "starting", c.State())
	assert.False(t, c.IsReady(context.Background()))

	c.SetReady()
	assert.Equal(t, "ready", c.State())
	assert.True(t, c.IsReady(context.Background()))

	c.SetDraining()
	assert.Equal(t, "draining", c.State())
	assert.False(t, c.IsReady(context.Background()))
}

func TestChecker_PingGatesReadiness(t *testing.T) {
	pingErr := error(nil)
	c := NewChecker(func(context.Context) error { return pingErr })
	c.SetReady()

	assert.True(t, c.IsReady(context.Background()))

	pingErr = errors.New("connection refused")
	assert.False(t, c.IsReady(context.Background()), "a failing store probe makes the service not ready")
}

func TestLivenessHandler(t *testing.T) {
	c := NewChecker(nil)

	rec := httptest.NewRecorder()
	c.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	c := NewChecker(nil)

	rec := httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"starting"}`, rec.Body.String())

	c.SetReady()
	rec = httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())

	c.SetDraining()
	rec = httptest.NewRecorder()
	c.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"draining"}`, rec.Body.String())
}
