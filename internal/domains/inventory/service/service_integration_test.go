//go:build integration

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"careops/config"
	kafkaMocks "careops/infras/kafka/mocks"
	"careops/infras/otel/mocks"
	alertDto "careops/internal/domains/alert/model/dto"
	alertRepository "careops/internal/domains/alert/repository"
	alertService "careops/internal/domains/alert/service"
	"careops/internal/domains/inventory/model/dto"
	inventoryRepository "careops/internal/domains/inventory/repository"
	"careops/internal/domains/inventory/service"
	cacheMocks "careops/shared/cache/mocks"
	gRepo "careops/shared/repository"
	"careops/shared/testhelpers"
)

func TestInventoryService_Integration_LowStockAlert(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.Truncate(t, db, "alerts", "inventory")

	ctx := context.Background()
	otl := mocks.NewOtel()
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Kafka.AlertTopic = "careops.alerts"

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockKafka.EXPECT().SendMessages(gomock.Any(), "careops.alerts", gomock.Any()).Return(nil).Times(1)

	alertRepo := alertRepository.New(db, otl)
	alerts := alertService.New(alertRepo, mockKafka, cfg, otl)
	inventory := service.New(
		inventoryRepository.New(db, otl),
		alertRepo,
		gRepo.NewTransactor(db, otl),
		mockKafka,
		cfg,
		mockCache,
		otl,
	)

	threshold := 5
	item, err := inventory.Create(ctx, dto.CreateItemRequest{Name: "Vacuum Bags", Quantity: 5, LowStockThreshold: &threshold})
	require.NoError(t, err)

	quantity := 3
	updated, err := inventory.Update(ctx, dto.UpdateItemRequest{Quantity: &quantity}, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)

	// a second drop keeps the existing unread alert
	quantity = 2
	_, err = inventory.Update(ctx, dto.UpdateItemRequest{Quantity: &quantity}, item.ID)
	require.NoError(t, err)

	raised, err := alerts.GetAll(ctx, alertDto.AlertQuery{Type: "low_stock"})
	require.NoError(t, err)
	require.Len(t, raised, 1)

	assert.Contains(t, raised[0].Message, "Vacuum Bags")
	require.NotNil(t, raised[0].RelatedID)
	assert.Equal(t, item.ID, *raised[0].RelatedID)
	assert.False(t, raised[0].IsRead)
}
