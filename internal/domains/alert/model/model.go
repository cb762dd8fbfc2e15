package model

import (
	"careops/shared/model"
	"fmt"
	"time"
)

const (
	TableName  = "alerts"
	EntityName = "alert"

	FieldID        = "id"
	FieldType      = "type"
	FieldMessage   = "message"
	FieldRelatedID = "related_id"
	FieldIsRead    = "is_read"
	FieldCreatedAt = "created_at"
)

const (
	TypeLowStock           = "low_stock"
	TypeBooking            = "booking"
	TypeSystem             = "system"
	TypeContact            = "contact"
	TypeUnconfirmedBooking = "unconfirmed_booking"
	TypeOverdueForm        = "overdue_form"
	TypeNewMessage         = "new_message"
)

type Alert struct {
	ID        string  `db:"id"`
	Type      string  `db:"type"`
	Message   string  `db:"message"`
	RelatedID *string `db:"related_id"`
	IsRead    bool    `db:"is_read"`
	model.Metadata
}

func NewLowStockAlert(id, itemID, itemName string, quantity int, actor string, now time.Time) Alert {
	return Alert{
		ID:        id,
		Type:      TypeLowStock,
		Message:   fmt.Sprintf("Low stock warning: %s is down to %d", itemName, quantity),
		RelatedID: &itemID,
		Metadata:  model.NewMetadata(actor, now),
	}
}
