package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"careops/infras/otel"
	"careops/infras/postgres"
	"careops/internal/domains/user/model"
	"careops/shared"
	gDto "careops/shared/dto"
	gRepo "careops/shared/repository"
	"context"
)

// User stores staff accounts. Lookups return the zero User when nothing matches.
type User interface {
	Insert(ctx context.Context, model model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
}

type repositoryImpl struct {
	users gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		users: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// Insert fails with a unique violation when the email is already taken.
func (r *repositoryImpl) Insert(ctx context.Context, user model.User) error {
	return r.users.Insert(ctx, user)
}

// GetByEmail matches the normalized form the email is stored in.
func (r *repositoryImpl) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.users.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    model.NormalizeEmail(email),
				Table:    model.TableName,
			},
		},
	})
}

func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.users.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}
