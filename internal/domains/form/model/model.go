package model

import (
	"careops/shared/model"
	"time"

	"github.com/jmoiron/sqlx/types"
)

const (
	TableName  = "forms"
	EntityName = "form"

	FieldID          = "id"
	FieldBookingID   = "booking_id"
	FieldContactID   = "contact_id"
	FieldType        = "type"
	FieldStatus      = "status"
	FieldContent     = "content"
	FieldSentAt      = "sent_at"
	FieldCompletedAt = "completed_at"
)

const (
	TypeIntake    = "intake"
	TypeAgreement = "agreement"
	TypeFeedback  = "feedback"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// EmptyContent is stored when a form is created without a body.
var EmptyContent = types.JSONText("{}")

type Form struct {
	ID          string         `db:"id"`
	BookingID   *string        `db:"booking_id"`
	ContactID   *string        `db:"contact_id"`
	Type        string         `db:"type"`
	Status      string         `db:"status"`
	Content     types.JSONText `db:"content"`
	SentAt      time.Time      `db:"sent_at"`
	CompletedAt *time.Time     `db:"completed_at"`
	model.Metadata
}

// NewIntakeForm is the pending intake form sent out for a freshly booked service.
func NewIntakeForm(id, bookingID, contactID, actor string, now time.Time) Form {
	return Form{
		ID:        id,
		BookingID: &bookingID,
		ContactID: &contactID,
		Type:      TypeIntake,
		Status:    StatusPending,
		Content:   EmptyContent,
		SentAt:    now,
		Metadata:  model.NewMetadata(actor, now),
	}
}
