package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"careops/infras/otel"
	"careops/infras/postgres"
	"careops/internal/domains/alert/model"
	gDto "careops/shared/dto"
	gRepo "careops/shared/repository"
	"context"

	"github.com/jmoiron/sqlx"
)

type Alert interface {
	Insert(ctx context.Context, model model.Alert) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Alert) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Alert, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Alert, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Alert]
}

func New(db *postgres.Connection, otel otel.Otel) Alert {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Alert](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
