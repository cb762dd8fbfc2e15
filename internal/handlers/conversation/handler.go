package conversation

import (
	"careops/infras/otel"
	"careops/internal/domains/conversation/model/dto"
	"careops/internal/domains/conversation/service"
	"careops/shared/constant"
	"careops/shared/validator"
	"careops/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Conversation
	otel    otel.Otel
}

func New(service service.Conversation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/conversations", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetConversations)
		routerGroup.Post("/", handler.CreateConversation)
		routerGroup.Get("/{id}/messages", handler.GetMessages)
		routerGroup.Post("/{id}/messages", handler.CreateMessage)
	})
}

// GetConversations lists conversations with their contact and latest message.
// @Summary Get all conversations
// @Tags Conversation
// @Produce json
// @Success 200 {array} dto.ConversationResponse
// @Failure 500 {object} response.Message
// @Router /api/conversations [get]
func (handler *Handler) GetConversations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConversations")
	defer scope.End()

	conversations, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get conversations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, conversations)
}

// @Summary Start a conversation
// @Tags Conversation
// @Accept json
// @Produce json
// @Param request body dto.CreateConversationRequest true "Create Conversation Request"
// @Success 201 {object} dto.ConversationResponse
// @Failure 400 {object} response.Message
// @Router /api/conversations [post]
func (handler *Handler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateConversation")
	defer scope.End()

	req := dto.CreateConversationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	conversation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create conversation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, conversation)
}

// @Summary Get the messages of a conversation
// @Tags Conversation
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {array} dto.MessageResponse
// @Failure 404 {object} response.Message
// @Router /api/conversations/{id}/messages [get]
func (handler *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMessages")
	defer scope.End()

	messages, err := handler.service.GetMessages(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get messages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, messages)
}

// CreateMessage posts a message and pushes it to connected inbox clients.
// @Summary Post a message
// @Tags Conversation
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body dto.CreateMessageRequest true "Create Message Request"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /api/conversations/{id}/messages [post]
func (handler *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMessage")
	defer scope.End()

	req := dto.CreateMessageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	message, err := handler.service.CreateMessage(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create message")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Message created " + message.ID)

	response.WithJSON(w, http.StatusCreated, message)
}
