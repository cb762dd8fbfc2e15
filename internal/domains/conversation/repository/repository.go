package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"careops/infras/otel"
	"careops/infras/postgres"
	"careops/internal/domains/conversation/model"
	gDto "careops/shared/dto"
	gRepo "careops/shared/repository"
	"context"
)

type Conversation interface {
	Insert(ctx context.Context, model model.Conversation) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.ConversationDetail, error)
	GetAllDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.ConversationDetail, error)
}

type Message interface {
	Insert(ctx context.Context, model model.Message) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Message, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Conversation]
	details gRepo.Repository[model.ConversationDetail]
}

func New(db *postgres.Connection, otel otel.Otel) Conversation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Conversation](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:    gRepo.NewRepository[model.ConversationDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.ConversationDetail, error) {
	return r.details.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.ConversationDetail, error) {
	return r.details.GetAll(ctx, params, filter) //nolint:wrapcheck
}

type messageRepositoryImpl struct {
	gRepo.Repository[model.Message]
}

func NewMessage(db *postgres.Connection, otel otel.Otel) Message {
	return &messageRepositoryImpl{
		Repository: gRepo.NewRepository[model.Message](model.MessageEntityName, model.MessageTableName, model.MessageFieldID, db, otel),
	}
}
