package model

import (
	"careops/shared/model"
)

const (
	TableName  = "inventory"
	EntityName = "inventory"

	FieldID                = "id"
	FieldName              = "name"
	FieldCategory          = "category"
	FieldSKU               = "sku"
	FieldQuantity          = "quantity"
	FieldLowStockThreshold = "low_stock_threshold"
	FieldUnitPrice         = "unit_price"
)

const DefaultLowStockThreshold = 5

// LowStockCondition and InStockCondition are SQL predicates over the inventory table.
const (
	LowStockCondition = TableName + "." + FieldQuantity + " <= " + TableName + "." + FieldLowStockThreshold
	InStockCondition  = TableName + "." + FieldQuantity + " > " + TableName + "." + FieldLowStockThreshold
)

type Item struct {
	ID                string  `db:"id"`
	Name              string  `db:"name"`
	Category          *string `db:"category"`
	SKU               *string `db:"sku"`
	Quantity          int     `db:"quantity"`
	LowStockThreshold int     `db:"low_stock_threshold"`
	UnitPrice         int64   `db:"unit_price"`
	model.Metadata
}

func (i Item) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}
