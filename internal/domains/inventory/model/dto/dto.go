package dto

import (
	"careops/internal/domains/inventory/model"
	"careops/shared"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	gModel "careops/shared/model"
	"careops/shared/timezone"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type CreateItemRequest struct {
	Name              string  `json:"name"              validate:"required,notblank,max=200"`
	Category          *string `json:"category"          validate:"omitempty,max=100"`
	SKU               *string `json:"sku"               validate:"omitempty,notblank,max=100"`
	Quantity          int     `json:"quantity"          validate:"gte=0"`
	LowStockThreshold *int    `json:"lowStockThreshold" validate:"omitempty,gte=0"`
	UnitPrice         int64   `json:"unitPrice"         validate:"gte=0"`
}

func (c *CreateItemRequest) ToModel(user string) model.Item {
	threshold := model.DefaultLowStockThreshold
	if c.LowStockThreshold != nil {
		threshold = *c.LowStockThreshold
	}

	return model.Item{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(c.Name),
		Category:          c.Category,
		SKU:               c.SKU,
		Quantity:          c.Quantity,
		LowStockThreshold: threshold,
		UnitPrice:         c.UnitPrice,
		Metadata:          gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateItemRequest struct {
	Name              *string `db:"name"                json:"name"              validate:"omitempty,notblank,max=200"`
	Category          *string `db:"category"            json:"category"          validate:"omitempty,max=100"`
	SKU               *string `db:"sku"                 json:"sku"               validate:"omitempty,notblank,max=100"`
	Quantity          *int    `db:"quantity"            json:"quantity"          validate:"omitempty,gte=0"`
	LowStockThreshold *int    `db:"low_stock_threshold" json:"lowStockThreshold" validate:"omitempty,gte=0"`
	UnitPrice         *int64  `db:"unit_price"          json:"unitPrice"         validate:"omitempty,gte=0"`
}

type ItemQuery struct {
	Category string
	LowStock *bool
}

func (q *ItemQuery) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	lowStock, err := shared.ParseBoolParam(query.Get(constant.RequestParamLowStock))
	if err != nil {
		return err
	}

	q.Category = strings.TrimSpace(query.Get(constant.RequestParamCategory))
	q.LowStock = lowStock

	return nil
}

func (q *ItemQuery) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if q.Category != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Value:    q.Category,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if q.LowStock != nil {
		condition := model.InStockCondition
		if *q.LowStock {
			condition = model.LowStockCondition
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Value:    condition,
			Operator: gDto.FilterPlainQuery,
		})
	}

	return filter
}

type ItemResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Category          *string `json:"category"`
	SKU               *string `json:"sku"`
	Quantity          int     `json:"quantity"`
	LowStockThreshold int     `json:"lowStockThreshold"`
	UnitPrice         int64   `json:"unitPrice"`
	IsLowStock        bool    `json:"isLowStock"`
	gDto.Metadata
}

func (r *ItemResponse) FromModel(model model.Item) {
	r.ID = model.ID
	r.Name = model.Name
	r.Category = model.Category
	r.SKU = model.SKU
	r.Quantity = model.Quantity
	r.LowStockThreshold = model.LowStockThreshold
	r.UnitPrice = model.UnitPrice
	r.IsLowStock = model.IsLowStock()
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Item) []ItemResponse {
	res := make([]ItemResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
