package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"picdesc/internal/handler"
	"picdesc/mocks"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(new(mocks.MockDocumentConverter), new(mocks.MockConversionRepo))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", nil)

	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		repoErr    error
		backendErr error
		wantStatus int
	}{
		{"ready", nil, nil, http.StatusOK},
		{"store down", errors.New("connection refused"), nil, http.StatusServiceUnavailable},
		{"backend down", nil, errors.New("connection refused"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := new(mocks.MockDocumentConverter)
			repo := new(mocks.MockConversionRepo)
			repo.On("Ping", mock.Anything).Return(tt.repoErr)
			backend.On("Ping", mock.Anything).Return(tt.backendErr)
			h := handler.NewHealthHandler(backend, repo)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", nil)

			h.Readiness(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHealthHandler_Readiness_ChecksHaveDeadline(t *testing.T) {
	bounded := mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= 5*time.Second
	})
	backend := new(mocks.MockDocumentConverter)
	repo := new(mocks.MockConversionRepo)
	repo.On("Ping", bounded).Return(nil)
	backend.On("Ping", bounded).Return(nil)
	h := handler.NewHealthHandler(backend, repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", nil)

	h.Readiness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
	backend.AssertExpectations(t)
}

func TestHealthHandler_Readiness_HungBackend(t *testing.T) {
	backend := new(mocks.MockDocumentConverter)
	repo := new(mocks.MockConversionRepo)
	repo.On("Ping", mock.Anything).Return(nil)
	backend.On("Ping", mock.Anything).
		Run(func(args mock.Arguments) { <-args.Get(0).(context.Context).Done() }).
		Return(context.DeadlineExceeded)
	h := handler.NewHealthHandler(backend, repo)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequestWithContext(ctx, http.MethodGet, "/readyz", nil)

	h.Readiness(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
