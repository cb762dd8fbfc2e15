package dto

import (
	"careops/internal/domains/offering/model"
	"careops/shared"
	gDto "careops/shared/dto"
	gModel "careops/shared/model"
	"careops/shared/timezone"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type CreateOfferingRequest struct {
	Name        string  `json:"name"        validate:"required,notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Category    *string `json:"category"    validate:"omitempty,max=100"`
	Duration    int     `json:"duration"    validate:"required,gt=0"`
	Price       *int64  `json:"price"       validate:"required,gte=0"`
	IsActive    *bool   `json:"isActive"`
}

func (c *CreateOfferingRequest) ToModel(user string) model.Offering {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	return model.Offering{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(c.Name),
		Description: c.Description,
		Category:    c.Category,
		Duration:    c.Duration,
		Price:       *c.Price,
		IsActive:    isActive,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateOfferingRequest struct {
	Name        *string `db:"name"        json:"name"        validate:"omitempty,notblank,max=200"`
	Description *string `db:"description" json:"description" validate:"omitempty,max=2000"`
	Category    *string `db:"category"    json:"category"    validate:"omitempty,max=100"`
	Duration    *int    `db:"duration"    json:"duration"    validate:"omitempty,gt=0"`
	Price       *int64  `db:"price"       json:"price"       validate:"omitempty,gte=0"`
	IsActive    *bool   `db:"is_active"   json:"isActive"`
}

type OfferingQuery struct {
	Category string
	IsActive *bool
}

func (q *OfferingQuery) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	isActive, err := shared.ParseBoolParam(query.Get("isActive"))
	if err != nil {
		return err
	}

	q.Category = strings.TrimSpace(query.Get("category"))
	q.IsActive = isActive

	return nil
}

func (q *OfferingQuery) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if q.Category != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Value:    q.Category,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if q.IsActive != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Value:    *q.IsActive,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return filter
}

type OfferingResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Duration    int     `json:"duration"`
	Price       int64   `json:"price"`
	IsActive    bool    `json:"isActive"`
	gDto.Metadata
}

func (r *OfferingResponse) FromModel(model model.Offering) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Category = model.Category
	r.Duration = model.Duration
	r.Price = model.Price
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Offering) []OfferingResponse {
	res := make([]OfferingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
