package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{name: "mongo up", code: http.StatusOK, body: `{"status":"ok"}`},
		{name: "mongo down", err: errors.New("no reachable servers"), code: http.StatusServiceUnavailable, body: `{"status":"degraded","mongo":"down"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", HealthHandler(stubPinger{err: tc.err}))

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}
