package booking_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"careops/infras/otel/mocks"
	"careops/internal/domains/booking/model/dto"
	serviceMocks "careops/internal/domains/booking/service/mocks"
	"careops/internal/handlers/booking"
)

func newRouter(t *testing.T) (*chi.Mux, *serviceMocks.MockBooking) {
	t.Helper()

	mockService := serviceMocks.NewMockBooking(gomock.NewController(t))
	handler := booking.New(mockService, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, mockService
}

func TestHandler_CreateBooking(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		expectCall bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "created",
			body:       `{"contactId":"c1","serviceId":"s1","startTime":"2026-05-04T09:00:00Z","endTime":"2026-05-04T11:00:00Z"}`,
			expectCall: true,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "end equals start",
			body:       `{"contactId":"c1","startTime":"2026-05-04T09:00:00Z","endTime":"2026-05-04T09:00:00Z"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "endTime must be after startTime",
		},
		{
			name:       "end before start",
			body:       `{"contactId":"c1","startTime":"2026-05-04T09:00:00Z","endTime":"2026-05-04T08:00:00Z"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing contact",
			body:       `{"startTime":"2026-05-04T09:00:00Z","endTime":"2026-05-04T11:00:00Z"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown status",
			body:       `{"contactId":"c1","startTime":"2026-05-04T09:00:00Z","endTime":"2026-05-04T11:00:00Z","status":"done"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newRouter(t)

			if tt.expectCall {
				mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{ID: "booking-id"}, nil)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandler_GetBookings(t *testing.T) {
	t.Run("date range", func(t *testing.T) {
		router, mockService := newRouter(t)

		startDate := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		endDate := time.Date(2026, 5, 31, 23, 59, 59, 0, time.UTC)

		mockService.EXPECT().
			GetAll(gomock.Any(), dto.BookingQuery{Status: "confirmed", StartDate: &startDate, EndDate: &endDate}).
			Return([]dto.BookingResponse{}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
			"/bookings?status=confirmed&startDate=2026-05-01T00:00:00Z&endDate=2026-05-31T23:59:59Z", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid date", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings?startDate=yesterday", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_UpdateBooking(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().
		Update(gomock.Any(), gomock.Any(), "booking-id").
		Return(dto.BookingResponse{ID: "booking-id", Status: "confirmed"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/bookings/booking-id", strings.NewReader(`{"status":"confirmed"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
}

func TestHandler_DeleteBooking(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().Delete(gomock.Any(), "booking-id").Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/bookings/booking-id", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
