//go:build integration

package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"careops/config"
	"careops/infras/otel/mocks"
	"careops/internal/domains/booking/model/dto"
	bookingRepository "careops/internal/domains/booking/repository"
	"careops/internal/domains/booking/service"
	contactDto "careops/internal/domains/contact/model/dto"
	contactRepository "careops/internal/domains/contact/repository"
	contactService "careops/internal/domains/contact/service"
	formDto "careops/internal/domains/form/model/dto"
	formRepository "careops/internal/domains/form/repository"
	formService "careops/internal/domains/form/service"
	offeringDto "careops/internal/domains/offering/model/dto"
	offeringRepository "careops/internal/domains/offering/repository"
	offeringService "careops/internal/domains/offering/service"
	cacheMocks "careops/shared/cache/mocks"
	"careops/shared/failure"
	gRepo "careops/shared/repository"
	"careops/shared/testhelpers"
)

func TestBookingService_Integration_EmbedsContactAndService(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.Truncate(t, db, "forms", "bookings", "contacts", "services")

	ctx := context.Background()
	otl := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	// list and create paths never touch the cache
	mockCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))

	contactRepo := contactRepository.New(db, otl)
	offeringRepo := offeringRepository.New(db, otl)
	formRepo := formRepository.New(db, otl)

	contacts := contactService.New(contactRepo, cfg, mockCache, otl)
	offerings := offeringService.New(offeringRepo, cfg, mockCache, otl)
	forms := formService.New(formRepo, cfg, mockCache, otl)
	bookings := service.New(
		bookingRepository.New(db, otl),
		contactRepo,
		offeringRepo,
		formRepo,
		gRepo.NewTransactor(db, otl),
		cfg,
		mockCache,
		otl,
	)

	alice, err := contacts.Create(ctx, contactDto.CreateContactRequest{Name: "Alice Johnson", Email: "alice@example.com"})
	require.NoError(t, err)

	price := int64(15000)
	cleaning, err := offerings.Create(ctx, offeringDto.CreateOfferingRequest{Name: "Standard Cleaning", Duration: 120, Price: &price})
	require.NoError(t, err)

	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)

	created, err := bookings.Create(ctx, dto.CreateBookingRequest{
		ContactID: alice.ID,
		ServiceID: &cleaning.ID,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)
	require.NotNil(t, created.Price)
	assert.Equal(t, int64(15000), *created.Price)

	listed, err := bookings.GetAll(ctx, dto.BookingQuery{})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NotNil(t, listed[0].Contact)
	assert.Equal(t, "Alice Johnson", listed[0].Contact.Name)
	require.NotNil(t, listed[0].Service)
	assert.Equal(t, int64(15000), listed[0].Service.Price)

	intakes, err := forms.GetAll(ctx, formDto.FormQuery{Type: "intake"})
	require.NoError(t, err)
	require.Len(t, intakes, 1)
	require.NotNil(t, intakes[0].BookingID)
	assert.Equal(t, created.ID, *intakes[0].BookingID)
	assert.Equal(t, "pending", intakes[0].Status)
}

func TestBookingService_Integration_UnknownContact(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	testhelpers.Truncate(t, db, "forms", "bookings", "contacts", "services")

	otl := mocks.NewOtel()
	cfg := &config.Config{}
	mockCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))

	bookings := service.New(
		bookingRepository.New(db, otl),
		contactRepository.New(db, otl),
		offeringRepository.New(db, otl),
		formRepository.New(db, otl),
		gRepo.NewTransactor(db, otl),
		cfg,
		mockCache,
		otl,
	)

	start := time.Now().Add(24 * time.Hour)

	_, err := bookings.Create(context.Background(), dto.CreateBookingRequest{
		ContactID: "00000000-0000-0000-0000-00000000dead",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
