package model

import (
	"careops/shared/model"
)

const (
	TableName  = "services"
	EntityName = "service"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldDuration    = "duration"
	FieldPrice       = "price"
	FieldIsActive    = "is_active"
)

// Offering is a bookable service. It is stored in the services table.
type Offering struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Category    *string `db:"category"`
	Duration    int     `db:"duration"`
	Price       int64   `db:"price"`
	IsActive    bool    `db:"is_active"`
	model.Metadata
}
