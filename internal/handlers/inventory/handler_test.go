package inventory_test

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
	"careops/internal/domains/inventory/model/dto"
	serviceMocks "careops/internal/domains/inventory/service/mocks"
	"careops/internal/handlers/inventory"
)

func newRouter(t *testing.T) (*chi.Mux, *serviceMocks.MockInventory) {
	t.Helper()

	mockService := serviceMocks.NewMockInventory(gomock.NewController(t))
	handler := inventory.New(mockService, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, mockService
}

func TestHandler_CreateItem(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		expectCall bool
		wantStatus int
	}{
		{name: "created", body: `{"name":"Vacuum Bags","quantity":5,"lowStockThreshold":5}`, expectCall: true, wantStatus: http.StatusCreated},
		{name: "negative quantity", body: `{"name":"Vacuum Bags","quantity":-1}`, wantStatus: http.StatusBadRequest},
		{name: "negative threshold", body: `{"name":"Vacuum Bags","lowStockThreshold":-2}`, wantStatus: http.StatusBadRequest},
		{name: "missing name", body: `{"quantity":5}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newRouter(t)

			if tt.expectCall {
				mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.ItemResponse{ID: "item-id"}, nil)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/inventory", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_GetItems(t *testing.T) {
	router, mockService := newRouter(t)

	lowStock := true

	mockService.EXPECT().
		GetAll(gomock.Any(), dto.ItemQuery{Category: "equipment", LowStock: &lowStock}).
		Return([]dto.ItemResponse{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inventory?category=equipment&lowStock=true", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_UpdateItem(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().
		Update(gomock.Any(), gomock.Any(), "item-id").
		DoAndReturn(func(_ any, req dto.UpdateItemRequest, _ string) (dto.ItemResponse, error) {
			require.NotNil(t, req.Quantity)

			return dto.ItemResponse{ID: "item-id", Name: "Vacuum Bags", Quantity: *req.Quantity, LowStockThreshold: 5, IsLowStock: true}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/inventory/item-id", strings.NewReader(`{"quantity":3}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":3`)
}

func TestHandler_DeleteItem(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().Delete(gomock.Any(), "item-id").Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/inventory/item-id", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
