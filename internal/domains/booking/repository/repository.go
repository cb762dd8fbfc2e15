package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"careops/infras/otel"
	"careops/infras/postgres"
	"careops/internal/domains/booking/model"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	"careops/shared/logger"
	gRepo "careops/shared/repository"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const revenueQuery = `SELECT COALESCE(SUM(services.price), 0) FROM bookings ` +
	`INNER JOIN services ON services.id = bookings.service_id WHERE bookings.status = $1`

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.BookingDetail, error)
	GetAllDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error)
	Revenue(ctx context.Context) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	details gRepo.Repository[model.BookingDetail]
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:    gRepo.NewRepository[model.BookingDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.BookingDetail, error) {
	return r.details.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error) {
	return r.details.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// Revenue sums the current price of the service behind every completed
// booking. Bookings whose service was removed contribute nothing.
func (r *repositoryImpl) Revenue(ctx context.Context) (int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Revenue")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, revenueQuery)

	var total int64

	if err := r.db.Read.GetContext(ctx, &total, revenueQuery, model.StatusCompleted); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum revenue (%s): %w", model.EntityName, err)
	}

	return total, nil
}
