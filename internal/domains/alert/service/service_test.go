package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"careops/config"
	"careops/infras/kafka"
	kafkaMocks "careops/infras/kafka/mocks"
	"careops/infras/otel/mocks"
	alertMocks "careops/internal/domains/alert/mocks"
	"careops/internal/domains/alert/model"
	"careops/internal/domains/alert/model/dto"
	"careops/internal/domains/alert/service"
	gDto "careops/shared/dto"
	"careops/shared/failure"
)

func strPtr(v string) *string { return &v }

func setup(t *testing.T) (service.Alert, *alertMocks.MockAlert, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := alertMocks.NewMockAlert(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.AlertTopic = "careops.alerts"

	return service.New(mockRepo, mockKafka, cfg, mocks.NewOtel()), mockRepo, mockKafka
}

func TestAlertService_Create(t *testing.T) {
	t.Run("stored and published", func(t *testing.T) {
		svc, mockRepo, mockKafka := setup(t)

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		mockKafka.EXPECT().
			SendMessages(gomock.Any(), "careops.alerts", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				assert.Equal(t, "booking-id", messages[0].Key)

				return nil
			})

		result, err := svc.Create(context.Background(), dto.CreateAlertRequest{
			Type:      model.TypeUnconfirmedBooking,
			Message:   " Booking not confirmed ",
			RelatedID: strPtr("booking-id"),
		})

		require.NoError(t, err)
		assert.False(t, result.IsRead)
		assert.Equal(t, "Booking not confirmed", result.Message)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		svc, mockRepo, mockKafka := setup(t)

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := svc.Create(context.Background(), dto.CreateAlertRequest{Type: model.TypeSystem, Message: "Backup finished"})

		assert.NoError(t, err)
	})
}

func TestAlertService_GetAll(t *testing.T) {
	svc, mockRepo, _ := setup(t)

	unread := false
	query := dto.AlertQuery{IsRead: &unread, Type: model.TypeLowStock}

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gDto.SortBy(model.FieldCreatedAt, gDto.SortDirDesc), query.ToFilter()).
		Return([]model.Alert{{ID: "a1", Type: model.TypeLowStock}}, nil)

	result, err := svc.GetAll(context.Background(), query)

	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestAlertService_MarkRead(t *testing.T) {
	t.Run("marked", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				isRead, ok := fields[model.FieldIsRead].(*bool)
				require.True(t, ok)
				assert.True(t, *isRead)

				return nil
			})
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Alert{ID: "a1", IsRead: true}, nil)

		result, err := svc.MarkRead(context.Background(), "a1")

		require.NoError(t, err)
		assert.True(t, result.IsRead)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.MarkRead(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestAlertService_Delete(t *testing.T) {
	svc, mockRepo, _ := setup(t)

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), "a1"))
}

func TestNewLowStockAlert(t *testing.T) {
	alert := model.NewLowStockAlert("alert-id", "item-id", "Vacuum Bags", 3, "system", time.Now())

	assert.Equal(t, model.TypeLowStock, alert.Type)
	assert.Equal(t, "Low stock warning: Vacuum Bags is down to 3", alert.Message)
	assert.Equal(t, "item-id", *alert.RelatedID)
	assert.False(t, alert.IsRead)
}
