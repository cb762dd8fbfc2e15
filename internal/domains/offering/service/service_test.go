package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"careops/config"
	"careops/infras/otel/mocks"
	offeringMocks "careops/internal/domains/offering/mocks"
	"careops/internal/domains/offering/model"
	"careops/internal/domains/offering/model/dto"
	"careops/internal/domains/offering/service"
	"careops/shared/cache"
	cacheMocks "careops/shared/cache/mocks"
	gDto "careops/shared/dto"
	"careops/shared/failure"
	gModel "careops/shared/model"
	"careops/shared/timezone"
)

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }

func setup(t *testing.T) (service.Offering, *offeringMocks.MockOffering, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := offeringMocks.NewMockOffering(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestOfferingService_Create(t *testing.T) {
	tests := []struct {
		name         string
		req          dto.CreateOfferingRequest
		repoErr      error
		wantErr      bool
		wantIsActive bool
	}{
		{
			name:         "defaults to active",
			req:          dto.CreateOfferingRequest{Name: "Standard Cleaning", Duration: 120, Price: int64Ptr(15000)},
			wantIsActive: true,
		},
		{
			name:         "free and inactive",
			req:          dto.CreateOfferingRequest{Name: "Consultation", Duration: 30, Price: int64Ptr(0), IsActive: boolPtr(false)},
			wantIsActive: false,
		},
		{
			name:    "repository error",
			req:     dto.CreateOfferingRequest{Name: "Standard Cleaning", Duration: 120, Price: int64Ptr(15000)},
			repoErr: errors.New("database error"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := setup(t)

			mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(tt.repoErr)

			result, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, result.ID)
			assert.Equal(t, *tt.req.Price, result.Price)
			assert.Equal(t, tt.wantIsActive, result.IsActive)
		})
	}
}

func TestOfferingService_GetAll(t *testing.T) {
	svc, mockRepo, _ := setup(t)

	query := dto.OfferingQuery{Category: "cleaning", IsActive: boolPtr(true)}

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gDto.SortBy(model.FieldName, gDto.SortDirAsc), query.ToFilter()).
		Return([]model.Offering{{ID: "a", Name: "Deep Cleaning"}, {ID: "b", Name: "Standard Cleaning"}}, nil)

	result, err := svc.GetAll(context.Background(), query)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "Deep Cleaning", result[0].Name)
}

func TestOfferingService_Get(t *testing.T) {
	offering := model.Offering{ID: "service-id", Name: "Standard Cleaning", Duration: 120, Price: 15000, IsActive: true, Metadata: gModel.NewMetadata("system", timezone.Now())}

	t.Run("loads and caches", func(t *testing.T) {
		svc, mockRepo, mockCache := setup(t)

		mockCache.EXPECT().Get(gomock.Any(), "service:get:service-id", gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(offering, nil)
		mockCache.EXPECT().Save(gomock.Any(), "service:get:service-id", gomock.Any(), 3600).Return(nil)

		result, err := svc.Get(context.Background(), "service-id")

		assert.NoError(t, err)
		assert.Equal(t, int64(15000), result.Price)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := setup(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Offering{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestOfferingService_Update(t *testing.T) {
	t.Run("deactivates", func(t *testing.T) {
		svc, mockRepo, mockCache := setup(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, boolPtr(false), fields[model.FieldIsActive])

				return nil
			})
		mockCache.EXPECT().Delete(gomock.Any(), "service:get:service-id").Return(nil)
		mockCache.EXPECT().Clear(gomock.Any(), "booking:get:").Return(nil)
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Offering{ID: "service-id", IsActive: false}, nil)

		result, err := svc.Update(context.Background(), dto.UpdateOfferingRequest{IsActive: boolPtr(false)}, "service-id")

		assert.NoError(t, err)
		assert.False(t, result.IsActive)
	})

	t.Run("empty request", func(t *testing.T) {
		svc, _, _ := setup(t)

		_, err := svc.Update(context.Background(), dto.UpdateOfferingRequest{}, "service-id")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Update(context.Background(), dto.UpdateOfferingRequest{IsActive: boolPtr(false)}, "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestOfferingService_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, mockRepo, mockCache := setup(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		mockCache.EXPECT().Delete(gomock.Any(), "service:get:service-id").Return(errors.New("redis down"))
		mockCache.EXPECT().Clear(gomock.Any(), "booking:get:").Return(errors.New("redis down"))

		assert.NoError(t, svc.Delete(context.Background(), "service-id"))
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
