package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"careops/infras/otel"
	"careops/infras/postgres"
	"careops/internal/domains/form/model"
	gDto "careops/shared/dto"
	gRepo "careops/shared/repository"
	"context"

	"github.com/jmoiron/sqlx"
)

type Form interface {
	Insert(ctx context.Context, model model.Form) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Form) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Form, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Form, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Form]
}

func New(db *postgres.Connection, otel otel.Otel) Form {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Form](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
