package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"careops/config"
	"careops/infras/otel"
	"careops/internal/domains/booking/model"
	"careops/internal/domains/booking/model/dto"
	"careops/internal/domains/booking/repository"
	contactModel "careops/internal/domains/contact/model"
	contactRepo "careops/internal/domains/contact/repository"
	formModel "careops/internal/domains/form/model"
	formRepo "careops/internal/domains/form/repository"
	offeringModel "careops/internal/domains/offering/model"
	offeringRepo "careops/internal/domains/offering/repository"
	"careops/shared"
	"careops/shared/cache"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	"careops/shared/failure"
	gRepo "careops/shared/repository"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking = constant.CachePrefixBookingDetail
)

var (
	errContactMissing = failure.BadRequestFromString("contact does not exist")
	errServiceMissing = failure.BadRequestFromString("service does not exist")
	errTimeWindow     = failure.BadRequestFromString("endTime must be after startTime")
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, query dto.BookingQuery) ([]dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	contactRepo  contactRepo.Contact
	offeringRepo offeringRepo.Offering
	formRepo     formRepo.Form
	transactor   gRepo.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	contactRepo contactRepo.Contact,
	offeringRepo offeringRepo.Offering,
	formRepo formRepo.Form,
	transactor gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		contactRepo:  contactRepo,
		offeringRepo: offeringRepo,
		formRepo:     formRepo,
		transactor:   transactor,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create stores the booking and, when a service is booked, a pending intake
// form for it. Both rows are written in one transaction.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureContact(ctx, req.ContactID); err != nil {
		return res, err
	}

	var price *int64

	if req.ServiceID != nil {
		offering, findErr := s.findService(ctx, *req.ServiceID)
		if findErr != nil {
			return res, findErr
		}

		price = &offering.Price
	}

	actor := shared.Actor(ctx)
	booking := req.ToModel(actor, price)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		if insertErr := s.repo.InsertTx(ctx, sqltx, booking); insertErr != nil {
			return insertErr //nolint:wrapcheck
		}

		if booking.ServiceID == nil {
			return nil
		}

		intake := formModel.NewIntakeForm(uuid.NewString(), booking.ID, booking.ContactID, actor, booking.CreatedAt)

		return s.formRepo.InsertTx(ctx, sqltx, intake) //nolint:wrapcheck
	})
	if err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return res, failure.BadRequestFromString("contact or service does not exist") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	return s.getDetail(ctx, booking.ID)
}

func (s *serviceImpl) GetAll(ctx context.Context, query dto.BookingQuery) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.SortBy(model.TableName+"."+model.FieldStartTime, gDto.SortDirDesc)

	bookings, err := s.repo.GetAllDetails(ctx, params, query.ToFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return dto.FromDetails(bookings), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	res, err = s.getDetail(ctx, id)
	if err != nil {
		return res, err
	}

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Msg("failed to save booking to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateBookingRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if start, end := req.Window(current); !end.After(start) {
		return res, errTimeWindow
	}

	if req.Status != nil && !model.CanTransition(current.Status, *req.Status) {
		return res, failure.BadRequestFromString(fmt.Sprintf("cannot change booking status from %s to %s", current.Status, *req.Status)) // nolint:wrapcheck
	}

	if req.ContactID != nil && *req.ContactID != current.ContactID {
		if err = s.ensureContact(ctx, *req.ContactID); err != nil {
			return res, err
		}
	}

	if req.ServiceID != nil && (current.ServiceID == nil || *req.ServiceID != *current.ServiceID) {
		if _, err = s.findService(ctx, *req.ServiceID); err != nil {
			return res, err
		}
	}

	if err = s.repo.Update(ctx, shared.PatchFields(req, shared.Actor(ctx)), filter); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return res, failure.BadRequestFromString("contact or service does not exist") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetBooking, id))

	return s.getDetail(ctx, id)
}

// Delete removes the booking. Forms sent for it stay and lose the link.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetBooking, id))

	return nil
}

func (s *serviceImpl) getDetail(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromDetail(detail)

	return res, nil
}

func (s *serviceImpl) ensureContact(ctx context.Context, id string) error {
	exist, err := s.contactRepo.Exist(ctx, shared.FilterByID(id, contactModel.FieldID, contactModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if contact exists")

		return fmt.Errorf("failed to check if contact exists: %w", err)
	}

	if !exist {
		return errContactMissing
	}

	return nil
}

func (s *serviceImpl) findService(ctx context.Context, id string) (offeringModel.Offering, error) {
	offering, err := s.offeringRepo.Get(ctx, shared.FilterByID(id, offeringModel.FieldID, offeringModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return offering, fmt.Errorf("failed to get service: %w", err)
	}

	if offering.ID == constant.Empty {
		return offering, errServiceMissing
	}

	return offering, nil
}
