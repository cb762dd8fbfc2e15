package dto

import (
	"careops/internal/domains/conversation/model"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	gModel "careops/shared/model"
	"careops/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	Title     string  `json:"title"     validate:"required,notblank,max=200"`
	ContactID *string `json:"contactId" validate:"omitempty,notblank"`
}

func (c *CreateConversationRequest) ToModel(user string) model.Conversation {
	return model.Conversation{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(c.Title),
		ContactID: c.ContactID,
		Metadata:  gModel.NewMetadata(user, timezone.Now()),
	}
}

type CreateMessageRequest struct {
	Role    string `json:"role"    validate:"required,oneof=user assistant agent"`
	Content string `json:"content" validate:"required,notblank,max=10000"`
}

func (c *CreateMessageRequest) ToModel(conversationID, user string) model.Message {
	return model.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           c.Role,
		Content:        c.Content,
		Metadata:       gModel.NewMetadata(user, timezone.Now()),
	}
}

type MessageResponse struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationId"`
	Role           string `json:"role"`
	Content        string `json:"content"`
	CreatedAt      string `json:"createdAt"`
}

func (r *MessageResponse) FromModel(model model.Message) {
	r.ID = model.ID
	r.ConversationID = model.ConversationID
	r.Role = model.Role
	r.Content = model.Content
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

func MessagesFromModels(models []model.Message) []MessageResponse {
	res := make([]MessageResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type ContactSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  *string `json:"phone"`
	Status string  `json:"status"`
}

type ConversationResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	ContactID   *string          `json:"contactId"`
	Contact     *ContactSummary  `json:"contact"`
	LastMessage *MessageResponse `json:"lastMessage"`
	gDto.Metadata
}

func (r *ConversationResponse) FromModel(model model.Conversation) {
	r.ID = model.ID
	r.Title = model.Title
	r.ContactID = model.ContactID
	r.Metadata.FromModel(model.Metadata)
}

func (r *ConversationResponse) FromDetail(detail model.ConversationDetail) {
	r.FromModel(detail.Conversation)
	r.Contact = nil
	r.LastMessage = nil

	if detail.ContactID != nil && detail.ContactName != nil {
		r.Contact = &ContactSummary{
			ID:     *detail.ContactID,
			Name:   *detail.ContactName,
			Email:  deref(detail.ContactEmail),
			Phone:  detail.ContactPhone,
			Status: deref(detail.ContactStatus),
		}
	}

	if detail.LastMessageID != nil {
		r.LastMessage = &MessageResponse{
			ID:             *detail.LastMessageID,
			ConversationID: detail.ID,
			Role:           deref(detail.LastMessageRole),
			Content:        deref(detail.LastMessageContent),
		}

		if detail.LastMessageCreatedAt != nil {
			r.LastMessage.CreatedAt = timezone.Format(*detail.LastMessageCreatedAt, constant.DateFormat)
		}
	}
}

func FromDetails(details []model.ConversationDetail) []ConversationResponse {
	res := make([]ConversationResponse, len(details))
	for i, detail := range details {
		res[i].FromDetail(detail)
	}

	return res
}

func deref[T any](value *T) T {
	var zero T
	if value == nil {
		return zero
	}

	return *value
}
