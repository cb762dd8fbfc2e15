package model

import (
	"careops/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldContactID = "contact_id"
	FieldServiceID = "service_id"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldStatus    = "status"
	FieldNotes     = "notes"
	FieldPrice     = "price"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

// transitions lists the statuses reachable from each status. Completed,
// cancelled and no-show are terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow, StatusPending},
}

// CanTransition reports whether a booking in status from may move to status to.
// Re-applying the current status is always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}

	return slices.Contains(transitions[from], to)
}

type Booking struct {
	ID        string    `db:"id"`
	ContactID string    `db:"contact_id"`
	ServiceID *string   `db:"service_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Status    string    `db:"status"`
	Notes     *string   `db:"notes"`
	Price     *int64    `db:"price"`
	model.Metadata
}

// BookingDetail is a booking read together with its contact and service.
// The joined columns are nil when the reference no longer resolves.
type BookingDetail struct {
	Booking
	ContactName     *string `db:"contact_name"     table:"contacts" column:"name"`
	ContactEmail    *string `db:"contact_email"    table:"contacts" column:"email"`
	ContactPhone    *string `db:"contact_phone"    table:"contacts" column:"phone"`
	ContactStatus   *string `db:"contact_status"   table:"contacts" column:"status"`
	ServiceName     *string `db:"service_name"     table:"services" column:"name"`
	ServiceCategory *string `db:"service_category" table:"services" column:"category"`
	ServiceDuration *int    `db:"service_duration" table:"services" column:"duration"`
	ServicePrice    *int64  `db:"service_price"    table:"services" column:"price"`
}

func (BookingDetail) GetJoinQuery() string {
	return "LEFT JOIN contacts ON contacts.id = bookings.contact_id " +
		"LEFT JOIN services ON services.id = bookings.service_id"
}
