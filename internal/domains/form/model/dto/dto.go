package dto

import (
	"careops/internal/domains/form/model"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	gModel "careops/shared/model"
	"careops/shared/timezone"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

type CreateFormRequest struct {
	BookingID *string        `json:"bookingId" validate:"omitempty,notblank"`
	ContactID *string        `json:"contactId" validate:"omitempty,notblank"`
	Type      string         `json:"type"      validate:"required,oneof=intake agreement feedback"`
	Status    string         `json:"status"    validate:"omitempty,oneof=pending completed"`
	Content   types.JSONText `json:"content"   swaggertype:"object"`
}

func (c *CreateFormRequest) ToModel(user string) model.Form {
	now := timezone.Now()

	form := model.Form{
		ID:        uuid.NewString(),
		BookingID: c.BookingID,
		ContactID: c.ContactID,
		Type:      c.Type,
		Status:    model.StatusPending,
		Content:   c.Content,
		SentAt:    now,
		Metadata:  gModel.NewMetadata(user, now),
	}

	if len(form.Content) == 0 || string(form.Content) == "null" {
		form.Content = model.EmptyContent
	}

	if c.Status == model.StatusCompleted {
		form.Status = model.StatusCompleted
		form.CompletedAt = &now
	}

	return form
}

// UpdateFormRequest has no completedAt: it follows status.
type UpdateFormRequest struct {
	BookingID *string         `db:"booking_id" json:"bookingId" validate:"omitempty,notblank"`
	ContactID *string         `db:"contact_id" json:"contactId" validate:"omitempty,notblank"`
	Type      *string         `db:"type"       json:"type"      validate:"omitempty,oneof=intake agreement feedback"`
	Status    *string         `db:"status"     json:"status"    validate:"omitempty,oneof=pending completed"`
	Content   *types.JSONText `db:"content"    json:"content"   swaggertype:"object"`
}

type FormQuery struct {
	Status string
	Type   string
}

func (q *FormQuery) FromRequest(r *http.Request) {
	query := r.URL.Query()

	q.Status = query.Get(constant.RequestParamStatus)
	q.Type = query.Get(constant.RequestParamType)
}

func (q *FormQuery) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if q.Status != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    q.Status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if q.Type != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldType,
			Value:    q.Type,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return filter
}

type FormResponse struct {
	ID          string         `json:"id"`
	BookingID   *string        `json:"bookingId"`
	ContactID   *string        `json:"contactId"`
	Type        string         `json:"type"`
	Status      string         `json:"status"`
	Content     types.JSONText `json:"content" swaggertype:"object"`
	SentAt      string         `json:"sentAt"`
	CompletedAt *string        `json:"completedAt"`
	gDto.Metadata
}

func (r *FormResponse) FromModel(model model.Form) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.ContactID = model.ContactID
	r.Type = model.Type
	r.Status = model.Status
	r.Content = model.Content
	r.SentAt = timezone.Format(model.SentAt, constant.DateFormat)
	r.CompletedAt = nil

	if model.CompletedAt != nil {
		completedAt := timezone.Format(*model.CompletedAt, constant.DateFormat)
		r.CompletedAt = &completedAt
	}

	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Form) []FormResponse {
	res := make([]FormResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
