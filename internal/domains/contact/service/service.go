package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"careops/config"
	"careops/infras/otel"
	"careops/internal/domains/contact/model"
	"careops/internal/domains/contact/model/dto"
	"careops/internal/domains/contact/repository"
	"careops/shared"
	"careops/shared/cache"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	"careops/shared/failure"
	"careops/shared/validator"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetContact = "contact:get"
)

type Contact interface {
	Create(ctx context.Context, req dto.CreateContactRequest) (dto.ContactResponse, error)
	GetAll(ctx context.Context, query dto.ContactQuery) ([]dto.ContactResponse, error)
	Get(ctx context.Context, id string) (dto.ContactResponse, error)
	Update(ctx context.Context, req dto.UpdateContactRequest, id string) (dto.ContactResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Contact
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Contact, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Contact {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateContactRequest) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	contact := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, contact); err != nil {
		log.Error().Err(err).Msg("failed to create contact")

		return res, fmt.Errorf("failed to create contact: %w", err)
	}

	res.FromModel(contact)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, query dto.ContactQuery) (res []dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&query); err != nil {
		return nil, err //nolint:wrapcheck
	}

	contacts, err := s.repo.GetAll(ctx, gDto.SortBy(model.FieldCreatedAt, gDto.SortDirDesc), query.ToFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get contacts")

		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}

	return dto.FromModels(contacts), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetContact, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for contact")

		return res, nil
	}

	contact, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact")

		return res, fmt.Errorf("failed to get contact: %w", err)
	}

	if contact.ID == constant.Empty {
		return res, failure.NotFound("contact not found") // nolint:wrapcheck
	}

	res.FromModel(contact)

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Msg("failed to save contact to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateContactRequest, id string) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateContactRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if contact exists")

		return res, fmt.Errorf("failed to check if contact exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("contact not found") // nolint:wrapcheck
	}

	updatedFields := shared.PatchFields(req, shared.Actor(ctx))
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update contact")

		return res, fmt.Errorf("failed to update contact: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetContact, id))
	shared.ClearCachePrefix(ctx, s.cache, constant.CachePrefixBookingDetail)

	contact, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload contact")

		return res, fmt.Errorf("failed to reload contact: %w", err)
	}

	res.FromModel(contact)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if contact exists")

		return fmt.Errorf("failed to check if contact exists: %w", err)
	}

	if !exist {
		return failure.NotFound("contact not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("contact still has bookings and cannot be deleted") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete contact")

		return fmt.Errorf("failed to delete contact: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetContact, id))

	return nil
}
