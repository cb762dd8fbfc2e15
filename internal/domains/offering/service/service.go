package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"careops/config"
	"careops/infras/otel"
	"careops/internal/domains/offering/model"
	"careops/internal/domains/offering/model/dto"
	"careops/internal/domains/offering/repository"
	"careops/shared"
	"careops/shared/cache"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	"careops/shared/failure"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetOffering = "service:get"
)

type Offering interface {
	Create(ctx context.Context, req dto.CreateOfferingRequest) (dto.OfferingResponse, error)
	GetAll(ctx context.Context, query dto.OfferingQuery) ([]dto.OfferingResponse, error)
	Get(ctx context.Context, id string) (dto.OfferingResponse, error)
	Update(ctx context.Context, req dto.UpdateOfferingRequest, id string) (dto.OfferingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Offering
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Offering, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Offering {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOfferingRequest) (res dto.OfferingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offering.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	offering := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, offering); err != nil {
		log.Error().Err(err).Msg("failed to create service")

		return res, fmt.Errorf("failed to create service: %w", err)
	}

	res.FromModel(offering)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, query dto.OfferingQuery) (res []dto.OfferingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offering.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	offerings, err := s.repo.GetAll(ctx, gDto.SortBy(model.FieldName, gDto.SortDirAsc), query.ToFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return nil, fmt.Errorf("failed to get services: %w", err)
	}

	return dto.FromModels(offerings), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OfferingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offering.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetOffering, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	offering, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if offering.ID == constant.Empty {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	res.FromModel(offering)

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Msg("failed to save service to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOfferingRequest, id string) (res dto.OfferingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offering.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateOfferingRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return res, fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.PatchFields(req, shared.Actor(ctx)), filter); err != nil {
		log.Error().Err(err).Msg("failed to update service")

		return res, fmt.Errorf("failed to update service: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetOffering, id))
	shared.ClearCachePrefix(ctx, s.cache, constant.CachePrefixBookingDetail)

	offering, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload service")

		return res, fmt.Errorf("failed to reload service: %w", err)
	}

	res.FromModel(offering)

	return res, nil
}

// Delete removes the service. Bookings that referenced it keep their own
// price and lose the link.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offering.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete service")

		return fmt.Errorf("failed to delete service: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetOffering, id))
	shared.ClearCachePrefix(ctx, s.cache, constant.CachePrefixBookingDetail)

	return nil
}
