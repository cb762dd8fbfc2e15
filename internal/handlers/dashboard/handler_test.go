package dashboard_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"careops/infras/otel/mocks"
	"careops/internal/domains/dashboard/model/dto"
	serviceMocks "careops/internal/domains/dashboard/service/mocks"
	"careops/internal/handlers/dashboard"
)

func TestHandler_GetStats(t *testing.T) {
	tests := []struct {
		name       string
		stats      dto.StatsResponse
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "stats",
			stats:      dto.StatsResponse{TodayBookings: 1, Revenue: 15000},
			wantStatus: http.StatusOK,
			wantBody: `{"todayBookings":1,"upcomingBookings":0,"pendingForms":0,"lowStockItems":0,"unreadAlerts":0,` +
				`"revenue":15000,"totalContacts":0,"activeContacts":0,"totalBookings":0}`,
		},
		{
			name:       "store unavailable",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := serviceMocks.NewMockDashboard(gomock.NewController(t))
			mockService.EXPECT().GetStats(gomock.Any()).Return(tt.stats, tt.err)

			handler := dashboard.New(mockService, mocks.NewOtel())
			router := chi.NewRouter()
			handler.Router(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
