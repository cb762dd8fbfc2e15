package form_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"careops/infras/otel/mocks"
	"careops/internal/domains/form/model/dto"
	serviceMocks "careops/internal/domains/form/service/mocks"
	"careops/internal/handlers/form"
)

func newRouter(t *testing.T) (*chi.Mux, *serviceMocks.MockForm) {
	t.Helper()

	mockService := serviceMocks.NewMockForm(gomock.NewController(t))
	handler := form.New(mockService, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, mockService
}

func TestHandler_CreateForm(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		expectCall bool
		wantStatus int
	}{
		{name: "created", body: `{"type":"intake","content":{"allergies":"none"}}`, expectCall: true, wantStatus: http.StatusCreated},
		{name: "unknown type", body: `{"type":"survey"}`, wantStatus: http.StatusBadRequest},
		{name: "missing type", body: `{"status":"pending"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newRouter(t)

			if tt.expectCall {
				mockService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, req dto.CreateFormRequest) (dto.FormResponse, error) {
						assert.JSONEq(t, `{"allergies":"none"}`, string(req.Content))

						return dto.FormResponse{ID: "form-id", Content: req.Content}, nil
					})
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/forms", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_GetForms(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().
		GetAll(gomock.Any(), dto.FormQuery{Status: "pending", Type: "intake"}).
		Return([]dto.FormResponse{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/forms?status=pending&type=intake", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_UpdateForm(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		router, mockService := newRouter(t)

		completedAt := "2026-03-01T10:00:00Z"

		mockService.EXPECT().
			Update(gomock.Any(), gomock.Any(), "form-id").
			DoAndReturn(func(_ any, req dto.UpdateFormRequest, _ string) (dto.FormResponse, error) {
				require.NotNil(t, req.Status)
				assert.Equal(t, "completed", *req.Status)

				return dto.FormResponse{ID: "form-id", Status: "completed", CompletedAt: &completedAt}, nil
			})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/forms/form-id", strings.NewReader(`{"status":"completed"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"completedAt":"2026-03-01T10:00:00Z"`)
	})

	t.Run("completedAt is not accepted from clients", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			Update(gomock.Any(), dto.UpdateFormRequest{}, "form-id").
			Return(dto.FormResponse{}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/forms/form-id", strings.NewReader(`{"completedAt":"2020-01-01T00:00:00Z"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
