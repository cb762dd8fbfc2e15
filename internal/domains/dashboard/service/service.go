package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"careops/infras/otel"
	alertModel "careops/internal/domains/alert/model"
	alertRepository "careops/internal/domains/alert/repository"
	bookingModel "careops/internal/domains/booking/model"
	bookingRepository "careops/internal/domains/booking/repository"
	contactModel "careops/internal/domains/contact/model"
	contactRepository "careops/internal/domains/contact/repository"
	"careops/internal/domains/dashboard/model/dto"
	formModel "careops/internal/domains/form/model"
	formRepository "careops/internal/domains/form/repository"
	inventoryModel "careops/internal/domains/inventory/model"
	inventoryRepository "careops/internal/domains/inventory/repository"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	"careops/shared/timezone"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// upcoming bookings start within this many days after today
const upcomingDays = 7

type Dashboard interface {
	GetStats(ctx context.Context) (dto.StatsResponse, error)
}

type serviceImpl struct {
	bookingRepo   bookingRepository.Booking
	contactRepo   contactRepository.Contact
	formRepo      formRepository.Form
	inventoryRepo inventoryRepository.Inventory
	alertRepo     alertRepository.Alert
	otel          otel.Otel
}

func New(
	bookingRepo bookingRepository.Booking,
	contactRepo contactRepository.Contact,
	formRepo formRepository.Form,
	inventoryRepo inventoryRepository.Inventory,
	alertRepo alertRepository.Alert,
	otel otel.Otel,
) Dashboard {
	return &serviceImpl{
		bookingRepo:   bookingRepo,
		contactRepo:   contactRepo,
		formRepo:      formRepo,
		inventoryRepo: inventoryRepo,
		alertRepo:     alertRepo,
		otel:          otel,
	}
}

type counter struct {
	name  string
	count func(ctx context.Context, filter gDto.FilterGroup) (int, error)
	where gDto.FilterGroup
	dest  *int
}

// GetStats recomputes every counter on each call. The counts are read one
// after another and are not a consistent snapshot.
func (s *serviceImpl) GetStats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.GetStats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	today, tomorrow := timezone.DayRange(timezone.Now(), 1)
	_, upcomingEnd := timezone.DayRange(tomorrow, upcomingDays)

	counters := []counter{
		{name: "today bookings", count: s.bookingRepo.Count, where: startTimeWindow(today, tomorrow), dest: &res.TodayBookings},
		{name: "upcoming bookings", count: s.bookingRepo.Count, where: startTimeWindow(tomorrow, upcomingEnd), dest: &res.UpcomingBookings},
		{name: "total bookings", count: s.bookingRepo.Count, dest: &res.TotalBookings},
		{name: "pending forms", count: s.formRepo.Count, where: equals(formModel.TableName, formModel.FieldStatus, formModel.StatusPending), dest: &res.PendingForms},
		{name: "low stock items", count: s.inventoryRepo.Count, where: lowStock(), dest: &res.LowStockItems},
		{name: "unread alerts", count: s.alertRepo.Count, where: equals(alertModel.TableName, alertModel.FieldIsRead, false), dest: &res.UnreadAlerts},
		{name: "total contacts", count: s.contactRepo.Count, dest: &res.TotalContacts},
		{name: "active contacts", count: s.contactRepo.Count, where: equals(contactModel.TableName, contactModel.FieldStatus, contactModel.StatusActive), dest: &res.ActiveContacts},
	}

	for _, c := range counters {
		if *c.dest, err = c.count(ctx, c.where); err != nil {
			log.Error().Err(err).Str("counter", c.name).Msg("failed to compute dashboard stats")

			return res, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
	}

	if res.Revenue, err = s.bookingRepo.Revenue(ctx); err != nil {
		log.Error().Err(err).Msg("failed to compute revenue")

		return res, fmt.Errorf("failed to compute revenue: %w", err)
	}

	return res, nil
}

// startTimeWindow matches bookings starting in [from, to).
func startTimeWindow(from, to time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "window_start",
				Field:    bookingModel.FieldStartTime,
				Value:    from,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				ArgName:  "window_end",
				Field:    bookingModel.FieldStartTime,
				Value:    to,
				Operator: gDto.FilterOperatorLess,
				Table:    bookingModel.TableName,
			},
		},
	}
}

func equals(table, field string, value any) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: table},
		},
	}
}

func lowStock() gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Value: inventoryModel.LowStockCondition, Operator: gDto.FilterPlainQuery},
		},
	}
}
