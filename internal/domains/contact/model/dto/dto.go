package dto

import (
	"careops/internal/domains/contact/model"
	gDto "careops/shared/dto"
	gModel "careops/shared/model"
	"careops/shared/timezone"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name    string  `json:"name"    validate:"required,notblank,max=200"`
	Email   string  `json:"email"   validate:"required,email,max=254"`
	Phone   *string `json:"phone"   validate:"omitempty,max=50"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Status  string  `json:"status"  validate:"omitempty,oneof=new active inactive"`
}

func (c *CreateContactRequest) ToModel(user string) model.Contact {
	status := model.StatusNew
	if c.Status != "" {
		status = c.Status
	}

	return model.Contact{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(c.Name),
		Email:    strings.TrimSpace(c.Email),
		Phone:    c.Phone,
		Address:  c.Address,
		Status:   status,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateContactRequest struct {
	Name    *string `db:"name"    json:"name"    validate:"omitempty,notblank,max=200"`
	Email   *string `db:"email"   json:"email"   validate:"omitempty,email,max=254"`
	Phone   *string `db:"phone"   json:"phone"   validate:"omitempty,max=50"`
	Address *string `db:"address" json:"address" validate:"omitempty,max=500"`
	Status  *string `db:"status"  json:"status"  validate:"omitempty,oneof=new active inactive"`
}

// ContactQuery holds the list filters accepted by GET /contacts.
type ContactQuery struct {
	Search string `json:"search"`
	Status string `json:"status" validate:"omitempty,oneof=new active inactive"`
}

func (q *ContactQuery) FromRequest(r *http.Request) {
	query := r.URL.Query()

	q.Search = strings.TrimSpace(query.Get("search"))
	q.Status = query.Get("status")
}

func (q *ContactQuery) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if q.Status != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    q.Status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if q.Search != "" {
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "search_name",
					Field:    model.FieldName,
					Value:    q.Search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "search_email",
					Field:    model.FieldEmail,
					Value:    q.Search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
			},
		})
	}

	return filter
}

type ContactResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Status  string  `json:"status"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(model model.Contact) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Address = model.Address
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Contact) []ContactResponse {
	res := make([]ContactResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
