package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"careops/config"
	"careops/infras/otel/mocks"
	"careops/shared/cache"
	cacheMocks "careops/shared/cache/mocks"
	"careops/transport/http/middleware"
)

const limiterKey = "limiter:203.0.113.9:unknown"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func limitedRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	return req
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enabled       bool
		setupMock     func(mockCache *cacheMocks.MockRedisCache)
		wantStatus     int
		wantRemaining  string
		wantRetryAfter string
	}{
		{
			name:       "disabled",
			setupMock:  func(*cacheMocks.MockRedisCache) {},
			wantStatus: http.StatusOK,
		},
		{
			name:    "first request in window",
			enabled: true,
			setupMock: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().Get(gomock.Any(), limiterKey, gomock.Any()).Return(cache.Nil)
				mockCache.EXPECT().Save(gomock.Any(), limiterKey, 1, 60).Return(nil)
			},
			wantStatus:    http.StatusOK,
			wantRemaining: "1",
		},
		{
			name:    "over the limit",
			enabled: true,
			setupMock: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().
					Get(gomock.Any(), limiterKey, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*int) = 2

						return nil
					})
			},
			wantStatus:     http.StatusTooManyRequests,
			wantRemaining:  "0",
			wantRetryAfter: "60",
		},
		{
			name:    "counter write failure still serves",
			enabled: true,
			setupMock: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().Get(gomock.Any(), limiterKey, gomock.Any()).Return(cache.Nil)
				mockCache.EXPECT().Save(gomock.Any(), limiterKey, 1, 60).Return(errors.New("redis down"))
			},
			wantStatus:    http.StatusOK,
			wantRemaining: "1",
		},
		{
			name:    "cache outage lets requests through",
			enabled: true,
			setupMock: func(mockCache *cacheMocks.MockRedisCache) {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
			tt.setupMock(mockCache)

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enabled
			cfg.App.RateLimiter.MaxRequests = 2
			cfg.App.RateLimiter.WindowSeconds = 60

			limiter := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, mockCache).RateLimit()

			rec := httptest.NewRecorder()
			chiMiddleware.RealIP(limiter(okHandler())).ServeHTTP(rec, limitedRequest())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get("X-RateLimit-Remaining"))
			assert.Equal(t, tt.wantRetryAfter, rec.Header().Get("Retry-After"))
		})
	}
}
