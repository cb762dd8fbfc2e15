package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"careops/config"
	"careops/infras/kafka"
	"careops/infras/otel"
	alertModel "careops/internal/domains/alert/model"
	alertDto "careops/internal/domains/alert/model/dto"
	alertRepo "careops/internal/domains/alert/repository"
	"careops/internal/domains/inventory/model"
	"careops/internal/domains/inventory/model/dto"
	"careops/internal/domains/inventory/repository"
	"careops/shared"
	"careops/shared/cache"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	"careops/shared/failure"
	gRepo "careops/shared/repository"
	"careops/shared/timezone"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetItem = "inventory:get"
)

var errDuplicateSKU = failure.Conflict("sku already exists")

type Inventory interface {
	Create(ctx context.Context, req dto.CreateItemRequest) (dto.ItemResponse, error)
	GetAll(ctx context.Context, query dto.ItemQuery) ([]dto.ItemResponse, error)
	Get(ctx context.Context, id string) (dto.ItemResponse, error)
	Update(ctx context.Context, req dto.UpdateItemRequest, id string) (dto.ItemResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Inventory
	alertRepo  alertRepo.Alert
	transactor gRepo.Transactor
	kafka      kafka.Client
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Inventory,
	alertRepo alertRepo.Alert,
	transactor gRepo.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Inventory {
	return &serviceImpl{
		repo:       repo,
		alertRepo:  alertRepo,
		transactor: transactor,
		kafka:      kafka,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateItemRequest) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	item := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, item); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, errDuplicateSKU
		}

		log.Error().Err(err).Msg("failed to create inventory item")

		return res, fmt.Errorf("failed to create inventory item: %w", err)
	}

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, query dto.ItemQuery) (res []dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	items, err := s.repo.GetAll(ctx, gDto.SortBy(model.FieldName, gDto.SortDirAsc), query.ToFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get inventory")

		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	return dto.FromModels(items), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetItem, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	item, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get inventory item")

		return res, fmt.Errorf("failed to get inventory item: %w", err)
	}

	if item.ID == constant.Empty {
		return res, failure.NotFound("inventory item not found") // nolint:wrapcheck
	}

	res.FromModel(item)

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Msg("failed to save inventory item to cache")
	}

	return res, nil
}

// Update applies the change and raises a low stock alert in the same
// transaction when the item ends up at or below its threshold. Only one unread
// low stock alert exists per item at a time.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateItemRequest, id string) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateItemRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if inventory item exists")

		return res, fmt.Errorf("failed to check if inventory item exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("inventory item not found") // nolint:wrapcheck
	}

	actor := shared.Actor(ctx)

	var (
		item   model.Item
		raised *alertModel.Alert
	)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		// The UPDATE holds the item's row lock until commit, so concurrent
		// updates of one item see each other's alerts.
		if txErr := s.repo.UpdateTx(ctx, sqltx, shared.PatchFields(req, actor), filter); txErr != nil {
			return txErr //nolint:wrapcheck
		}

		var txErr error

		item, txErr = s.repo.GetTx(ctx, sqltx, filter)
		if txErr != nil {
			return txErr //nolint:wrapcheck
		}

		if !item.IsLowStock() {
			return nil
		}

		open, txErr := s.alertRepo.ExistTx(ctx, sqltx, alertDto.OpenAlertFilter(alertModel.TypeLowStock, item.ID))
		if txErr != nil || open {
			return txErr //nolint:wrapcheck
		}

		alert := alertModel.NewLowStockAlert(uuid.NewString(), item.ID, item.Name, item.Quantity, actor, timezone.Now())
		if txErr = s.alertRepo.InsertTx(ctx, sqltx, alert); txErr != nil {
			return txErr //nolint:wrapcheck
		}

		raised = &alert

		return nil
	})
	if err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, errDuplicateSKU
		}

		log.Error().Err(err).Msg("failed to update inventory item")

		return res, fmt.Errorf("failed to update inventory item: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetItem, id))

	if raised != nil {
		s.publishAlert(ctx, *raised)
	}

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if inventory item exists")

		return fmt.Errorf("failed to check if inventory item exists: %w", err)
	}

	if !exist {
		return failure.NotFound("inventory item not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete inventory item")

		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetItem, id))

	return nil
}

func (s *serviceImpl) publishAlert(ctx context.Context, alert alertModel.Alert) {
	event := alertDto.AlertResponse{}
	event.FromModel(alert)

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.AlertTopic, event.ToMessage()); err != nil {
		log.Warn().Err(err).Str("alertId", alert.ID).Msg("failed to publish low stock alert")
	}
}
