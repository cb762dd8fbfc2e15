package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"careops/config"
	"careops/infras/kafka"
	"careops/infras/otel"
	"careops/internal/domains/alert/model"
	"careops/internal/domains/alert/model/dto"
	"careops/internal/domains/alert/repository"
	"careops/shared"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	"careops/shared/failure"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Alert interface {
	Create(ctx context.Context, req dto.CreateAlertRequest) (dto.AlertResponse, error)
	GetAll(ctx context.Context, query dto.AlertQuery) ([]dto.AlertResponse, error)
	MarkRead(ctx context.Context, id string) (dto.AlertResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Alert
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func New(repo repository.Alert, kafka kafka.Client, cfg *config.Config, otel otel.Otel) Alert {
	return &serviceImpl{
		repo:  repo,
		kafka: kafka,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAlertRequest) (res dto.AlertResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".alert.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	alert := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, alert); err != nil {
		log.Error().Err(err).Msg("failed to create alert")

		return res, fmt.Errorf("failed to create alert: %w", err)
	}

	res.FromModel(alert)

	if pubErr := s.kafka.SendMessages(ctx, s.cfg.Kafka.AlertTopic, res.ToMessage()); pubErr != nil {
		log.Warn().Err(pubErr).Str("alertId", alert.ID).Msg("failed to publish alert")
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, query dto.AlertQuery) (res []dto.AlertResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".alert.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	alerts, err := s.repo.GetAll(ctx, gDto.SortBy(model.FieldCreatedAt, gDto.SortDirDesc), query.ToFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get alerts")

		return nil, fmt.Errorf("failed to get alerts: %w", err)
	}

	return dto.FromModels(alerts), nil
}

// MarkRead acknowledges an alert. Marking a low stock alert read lets the next
// breach for the same item raise a new one.
func (s *serviceImpl) MarkRead(ctx context.Context, id string) (res dto.AlertResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".alert.MarkRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if alert exists")

		return res, fmt.Errorf("failed to check if alert exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("alert not found") // nolint:wrapcheck
	}

	read := true

	if err = s.repo.Update(ctx, shared.PatchFields(dto.UpdateAlertRequest{IsRead: &read}, shared.Actor(ctx)), filter); err != nil {
		log.Error().Err(err).Msg("failed to mark alert as read")

		return res, fmt.Errorf("failed to mark alert as read: %w", err)
	}

	alert, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload alert")

		return res, fmt.Errorf("failed to reload alert: %w", err)
	}

	res.FromModel(alert)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".alert.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if alert exists")

		return fmt.Errorf("failed to check if alert exists: %w", err)
	}

	if !exist {
		return failure.NotFound("alert not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete alert")

		return fmt.Errorf("failed to delete alert: %w", err)
	}

	return nil
}
