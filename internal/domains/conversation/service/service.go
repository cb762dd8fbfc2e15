package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"careops/infras/otel"
	"careops/internal/domains/conversation/model"
	"careops/internal/domains/conversation/model/dto"
	"careops/internal/domains/conversation/repository"
	"careops/shared"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	"careops/shared/failure"
	"careops/transport/websocket"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Conversation interface {
	GetAll(ctx context.Context) ([]dto.ConversationResponse, error)
	Create(ctx context.Context, req dto.CreateConversationRequest) (dto.ConversationResponse, error)
	GetMessages(ctx context.Context, conversationID string) ([]dto.MessageResponse, error)
	CreateMessage(ctx context.Context, req dto.CreateMessageRequest, conversationID string) (dto.MessageResponse, error)
}

type serviceImpl struct {
	repo        repository.Conversation
	messageRepo repository.Message
	broadcaster websocket.Broadcaster
	otel        otel.Otel
}

func New(repo repository.Conversation, messageRepo repository.Message, broadcaster websocket.Broadcaster, otel otel.Otel) Conversation {
	return &serviceImpl{
		repo:        repo,
		messageRepo: messageRepo,
		broadcaster: broadcaster,
		otel:        otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.ConversationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conversation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.SortBy(model.TableName+"."+model.FieldCreatedAt, gDto.SortDirDesc)

	conversations, err := s.repo.GetAllDetails(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get conversations")

		return nil, fmt.Errorf("failed to get conversations: %w", err)
	}

	return dto.FromDetails(conversations), nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateConversationRequest) (res dto.ConversationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conversation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	conversation := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, conversation); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return res, failure.BadRequestFromString("contact does not exist") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create conversation")

		return res, fmt.Errorf("failed to create conversation: %w", err)
	}

	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(conversation.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to reload conversation")

		return res, fmt.Errorf("failed to reload conversation: %w", err)
	}

	res.FromDetail(detail)

	return res, nil
}

// GetMessages returns the conversation's messages, oldest first.
func (s *serviceImpl) GetMessages(ctx context.Context, conversationID string) (res []dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conversation.GetMessages")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureConversation(ctx, conversationID); err != nil {
		return nil, err
	}

	filter := shared.FilterByID(conversationID, model.MessageFieldConversationID, model.MessageTableName)

	messages, err := s.messageRepo.GetAll(ctx, gDto.SortBy(model.MessageFieldCreatedAt, gDto.SortDirAsc), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get messages")

		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	return dto.MessagesFromModels(messages), nil
}

// CreateMessage stores the message and pushes it to connected inbox clients.
func (s *serviceImpl) CreateMessage(ctx context.Context, req dto.CreateMessageRequest, conversationID string) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".conversation.CreateMessage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureConversation(ctx, conversationID); err != nil {
		return res, err
	}

	message := req.ToModel(conversationID, shared.Actor(ctx))

	if err = s.messageRepo.Insert(ctx, message); err != nil {
		log.Error().Err(err).Msg("failed to create message")

		return res, fmt.Errorf("failed to create message: %w", err)
	}

	res.FromModel(message)

	if pushErr := s.broadcaster.Broadcast(ctx, websocket.Event{Type: websocket.EventNewMessage, Data: res}); pushErr != nil {
		log.Warn().Err(pushErr).Str("messageId", message.ID).Msg("failed to broadcast message")
	}

	return res, nil
}

func (s *serviceImpl) ensureConversation(ctx context.Context, id string) error {
	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if conversation exists")

		return fmt.Errorf("failed to check if conversation exists: %w", err)
	}

	if !exist {
		return failure.NotFound("conversation not found") // nolint:wrapcheck
	}

	return nil
}
