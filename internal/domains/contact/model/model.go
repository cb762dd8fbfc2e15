package model

import (
	"careops/shared/model"
)

const (
	TableName  = "contacts"
	EntityName = "contact"

	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldAddress   = "address"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"
)

const (
	StatusNew      = "new"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Contact struct {
	ID      string  `db:"id"`
	Name    string  `db:"name"`
	Email   string  `db:"email"`
	Phone   *string `db:"phone"`
	Address *string `db:"address"`
	Status  string  `db:"status"`
	model.Metadata
}
