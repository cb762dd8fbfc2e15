package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"careops/config"
	"careops/infras/otel"
	"careops/internal/domains/form/model"
	"careops/internal/domains/form/model/dto"
	"careops/internal/domains/form/repository"
	"careops/shared"
	"careops/shared/cache"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	"careops/shared/failure"
	"careops/shared/timezone"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetForm = "form:get"
)

type Form interface {
	Create(ctx context.Context, req dto.CreateFormRequest) (dto.FormResponse, error)
	GetAll(ctx context.Context, query dto.FormQuery) ([]dto.FormResponse, error)
	Get(ctx context.Context, id string) (dto.FormResponse, error)
	Update(ctx context.Context, req dto.UpdateFormRequest, id string) (dto.FormResponse, error)
}

type serviceImpl struct {
	repo  repository.Form
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Form, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Form {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFormRequest) (res dto.FormResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".form.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	form := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, form); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return res, failure.BadRequestFromString("booking or contact does not exist") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create form")

		return res, fmt.Errorf("failed to create form: %w", err)
	}

	res.FromModel(form)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, query dto.FormQuery) (res []dto.FormResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".form.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	forms, err := s.repo.GetAll(ctx, gDto.SortBy(model.FieldSentAt, gDto.SortDirDesc), query.ToFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get forms")

		return nil, fmt.Errorf("failed to get forms: %w", err)
	}

	return dto.FromModels(forms), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FormResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".form.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetForm, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	form, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get form")

		return res, fmt.Errorf("failed to get form: %w", err)
	}

	if form.ID == constant.Empty {
		return res, failure.NotFound("form not found") // nolint:wrapcheck
	}

	res.FromModel(form)

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Msg("failed to save form to cache")
	}

	return res, nil
}

// Update applies a partial update. Completing a form stamps completed_at and
// re-opening it clears the stamp.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateFormRequest, id string) (res dto.FormResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".form.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateFormRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get form")

		return res, fmt.Errorf("failed to get form: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound("form not found") // nolint:wrapcheck
	}

	fields := shared.PatchFields(req, shared.Actor(ctx))

	if req.Status != nil {
		switch {
		case *req.Status == model.StatusCompleted && current.Status != model.StatusCompleted:
			fields[model.FieldCompletedAt] = timezone.Now()
		case *req.Status == model.StatusPending:
			fields[model.FieldCompletedAt] = nil
		}
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return res, failure.BadRequestFromString("booking or contact does not exist") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update form")

		return res, fmt.Errorf("failed to update form: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetForm, id))

	form, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload form")

		return res, fmt.Errorf("failed to reload form: %w", err)
	}

	res.FromModel(form)

	return res, nil
}
