package dto

import (
	"careops/infras/kafka"
	"careops/internal/domains/alert/model"
	"careops/shared"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	gModel "careops/shared/model"
	"careops/shared/timezone"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type CreateAlertRequest struct {
	Type      string  `json:"type"      validate:"required,oneof=low_stock booking system contact unconfirmed_booking overdue_form new_message"`
	Message   string  `json:"message"   validate:"required,notblank,max=1000"`
	RelatedID *string `json:"relatedId" validate:"omitempty,notblank"`
}

func (c *CreateAlertRequest) ToModel(user string) model.Alert {
	return model.Alert{
		ID:        uuid.NewString(),
		Type:      c.Type,
		Message:   strings.TrimSpace(c.Message),
		RelatedID: c.RelatedID,
		Metadata:  gModel.NewMetadata(user, timezone.Now()),
	}
}

type AlertQuery struct {
	IsRead *bool
	Type   string
}

func (q *AlertQuery) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	isRead, err := shared.ParseBoolParam(query.Get(constant.RequestParamIsRead))
	if err != nil {
		return err
	}

	q.IsRead = isRead
	q.Type = query.Get(constant.RequestParamType)

	return nil
}

func (q *AlertQuery) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if q.IsRead != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldIsRead,
			Value:    *q.IsRead,
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

// OpenAlertFilter matches unread alerts of one type raised for one entity.
func OpenAlertFilter(alertType, relatedID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldType, Value: alertType, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldRelatedID, Value: relatedID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldIsRead, Value: false, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

type AlertResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Message   string  `json:"message"`
	RelatedID *string `json:"relatedId"`
	IsRead    bool    `json:"isRead"`
	gDto.Metadata
}

func (r *AlertResponse) FromModel(model model.Alert) {
	r.ID = model.ID
	r.Type = model.Type
	r.Message = model.Message
	r.RelatedID = model.RelatedID
	r.IsRead = model.IsRead
	r.Metadata.FromModel(model.Metadata)
}

// ToMessage keys the event by the related entity so alerts for one item stay
// ordered within a partition.
func (r *AlertResponse) ToMessage() kafka.Message {
	key := r.ID
	if r.RelatedID != nil {
		key = *r.RelatedID
	}

	return kafka.Message{Key: key, Value: r}
}

func FromModels(models []model.Alert) []AlertResponse {
	res := make([]AlertResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type UpdateAlertRequest struct {
	IsRead *bool `db:"is_read" json:"isRead"`
}
