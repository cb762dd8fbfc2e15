package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"careops/config"
	"careops/infras/kafka"
	kafkaMocks "careops/infras/kafka/mocks"
	"careops/infras/otel/mocks"
	alertMocks "careops/internal/domains/alert/mocks"
	alertModel "careops/internal/domains/alert/model"
	inventoryMocks "careops/internal/domains/inventory/mocks"
	"careops/internal/domains/inventory/model"
	"careops/internal/domains/inventory/model/dto"
	"careops/internal/domains/inventory/service"
	"careops/shared/cache"
	cacheMocks "careops/shared/cache/mocks"
	gDto "careops/shared/dto"
	"careops/shared/failure"
	repoMocks "careops/shared/repository/mocks"
)

type fixture struct {
	svc        service.Inventory
	repo       *inventoryMocks.MockInventory
	alertRepo  *alertMocks.MockAlert
	transactor *repoMocks.MockTransactor
	kafka      *kafkaMocks.MockClient
	cache      *cacheMocks.MockRedisCache
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:       inventoryMocks.NewMockInventory(ctrl),
		alertRepo:  alertMocks.NewMockAlert(ctrl),
		transactor: repoMocks.NewMockTransactor(ctrl),
		kafka:      kafkaMocks.NewMockClient(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Kafka.AlertTopic = "careops.alerts"

	f.svc = service.New(f.repo, f.alertRepo, f.transactor, f.kafka, cfg, f.cache, mocks.NewOtel())

	return f
}

func (f fixture) runTx() {
	f.transactor.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
			return fn(ctx, nil)
		})
}

func intPtr(v int) *int { return &v }

func TestInventoryService_Create(t *testing.T) {
	t.Run("defaults the threshold", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		result, err := f.svc.Create(context.Background(), dto.CreateItemRequest{Name: "Vacuum Bags", Quantity: 5})

		require.NoError(t, err)
		assert.Equal(t, model.DefaultLowStockThreshold, result.LowStockThreshold)
		assert.True(t, result.IsLowStock)
	})

	t.Run("duplicate sku", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})

		_, err := f.svc.Create(context.Background(), dto.CreateItemRequest{Name: "Gloves"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestInventoryService_GetAll(t *testing.T) {
	f := setup(t)

	lowStock := true
	query := dto.ItemQuery{LowStock: &lowStock}

	f.repo.EXPECT().
		GetAll(gomock.Any(), gDto.SortBy(model.FieldName, gDto.SortDirAsc), query.ToFilter()).
		Return([]model.Item{{ID: "i1", Name: "Vacuum Bags", Quantity: 3, LowStockThreshold: 5}}, nil)

	result, err := f.svc.GetAll(context.Background(), query)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.True(t, result[0].IsLowStock)
}

func TestInventoryService_Get_NotFound(t *testing.T) {
	f := setup(t)

	f.cache.EXPECT().Get(gomock.Any(), "inventory:get:missing", gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Item{}, nil)

	_, err := f.svc.Get(context.Background(), "missing")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestInventoryService_Update_LowStockAlert(t *testing.T) {
	vacuumBags := model.Item{ID: "item-id", Name: "Vacuum Bags", Quantity: 3, LowStockThreshold: 5}

	tests := []struct {
		name       string
		updated    model.Item
		openAlert  bool
		publishErr error
		wantAlert  bool
	}{
		{name: "first breach raises an alert", updated: vacuumBags, wantAlert: true},
		{name: "open alert suppresses a duplicate", updated: vacuumBags, openAlert: true},
		{name: "publish failure keeps the update", updated: vacuumBags, publishErr: errors.New("broker down"), wantAlert: true},
		{name: "above threshold", updated: model.Item{ID: "item-id", Name: "Vacuum Bags", Quantity: 6, LowStockThreshold: 5}},
		{name: "exactly at threshold", updated: model.Item{ID: "item-id", Name: "Vacuum Bags", Quantity: 5, LowStockThreshold: 5}, wantAlert: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			f.runTx()
			f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.updated, nil)
			f.cache.EXPECT().Delete(gomock.Any(), "inventory:get:item-id").Return(nil)

			if tt.updated.IsLowStock() {
				f.alertRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.openAlert, nil)
			}

			if tt.wantAlert {
				f.alertRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, alert alertModel.Alert) error {
						assert.Equal(t, alertModel.TypeLowStock, alert.Type)
						assert.Contains(t, alert.Message, "Vacuum Bags")
						assert.Equal(t, "item-id", *alert.RelatedID)

						return nil
					})
				f.kafka.EXPECT().
					SendMessages(gomock.Any(), "careops.alerts", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
						assert.Equal(t, "item-id", messages[0].Key)

						return tt.publishErr
					})
			}

			result, err := f.svc.Update(context.Background(), dto.UpdateItemRequest{Quantity: intPtr(tt.updated.Quantity)}, "item-id")

			require.NoError(t, err)
			assert.Equal(t, tt.updated.Quantity, result.Quantity)
		})
	}
}

func TestInventoryService_Update_Errors(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.Update(context.Background(), dto.UpdateItemRequest{}, "item-id")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateItemRequest{Quantity: intPtr(1)}, "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("alert insert failure rolls back", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.runTx()
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Item{ID: "item-id", Quantity: 0, LowStockThreshold: 5}, nil)
		f.alertRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.alertRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

		_, err := f.svc.Update(context.Background(), dto.UpdateItemRequest{Quantity: intPtr(0)}, "item-id")

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestInventoryService_Delete(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	f.cache.EXPECT().Delete(gomock.Any(), "inventory:get:item-id").Return(nil)

	assert.NoError(t, f.svc.Delete(context.Background(), "item-id"))
}
