package dto

import (
	"careops/internal/domains/booking/model"
	"careops/shared"
	"careops/shared/constant"
	gDto "careops/shared/dto"
	gModel "careops/shared/model"
	"careops/shared/timezone"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ContactID string    `json:"contactId" validate:"required,notblank"`
	ServiceID *string   `json:"serviceId" validate:"omitempty,notblank"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime"   validate:"required,gtfield=StartTime"`
	Status    string    `json:"status"    validate:"omitempty,oneof=pending confirmed completed cancelled no-show"`
	Notes     *string   `json:"notes"     validate:"omitempty,max=2000"`
	Price     *int64    `json:"price"     validate:"omitempty,gte=0"`
}

// ToModel builds the booking. price is used when the request carries none.
func (c *CreateBookingRequest) ToModel(user string, price *int64) model.Booking {
	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	if c.Price != nil {
		price = c.Price
	}

	return model.Booking{
		ID:        uuid.NewString(),
		ContactID: c.ContactID,
		ServiceID: c.ServiceID,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Status:    status,
		Notes:     c.Notes,
		Price:     price,
		Metadata:  gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateBookingRequest struct {
	ContactID *string    `db:"contact_id" json:"contactId" validate:"omitempty,notblank"`
	ServiceID *string    `db:"service_id" json:"serviceId" validate:"omitempty,notblank"`
	StartTime *time.Time `db:"start_time" json:"startTime"`
	EndTime   *time.Time `db:"end_time"   json:"endTime"`
	Status    *string    `db:"status"     json:"status"    validate:"omitempty,oneof=pending confirmed completed cancelled no-show"`
	Notes     *string    `db:"notes"      json:"notes"     validate:"omitempty,max=2000"`
	Price     *int64     `db:"price"      json:"price"     validate:"omitempty,gte=0"`
}

// Window returns the time window the booking would have after the update.
func (u *UpdateBookingRequest) Window(current model.Booking) (start, end time.Time) {
	start, end = current.StartTime, current.EndTime

	if u.StartTime != nil {
		start = *u.StartTime
	}

	if u.EndTime != nil {
		end = *u.EndTime
	}

	return start, end
}

type BookingQuery struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

func (q *BookingQuery) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	startDate, err := shared.ParseDateParam(query.Get(constant.RequestParamStartDate))
	if err != nil {
		return err
	}

	endDate, err := shared.ParseDateParam(query.Get(constant.RequestParamEndDate))
	if err != nil {
		return err
	}

	q.Status = query.Get(constant.RequestParamStatus)
	q.StartDate = startDate
	q.EndDate = endDate

	return nil
}

// ToFilter matches bookings starting inside [StartDate, EndDate]. Either bound
// may be omitted.
func (q *BookingQuery) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if q.Status != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    q.Status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if q.StartDate != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "start_date",
			Field:    model.FieldStartTime,
			Value:    *q.StartDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if q.EndDate != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "end_date",
			Field:    model.FieldStartTime,
			Value:    *q.EndDate,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	return filter
}

type ContactSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  *string `json:"phone"`
	Status string  `json:"status"`
}

type ServiceSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category *string `json:"category"`
	Duration int     `json:"duration"`
	Price    int64   `json:"price"`
}

type BookingResponse struct {
	ID        string          `json:"id"`
	ContactID string          `json:"contactId"`
	ServiceID *string         `json:"serviceId"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	Status    string          `json:"status"`
	Notes     *string         `json:"notes"`
	Price     *int64          `json:"price"`
	Contact   *ContactSummary `json:"contact"`
	Service   *ServiceSummary `json:"service"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ContactID = model.ContactID
	r.ServiceID = model.ServiceID
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.DateFormat)
	r.Status = model.Status
	r.Notes = model.Notes
	r.Price = model.Price
	r.Metadata.FromModel(model.Metadata)
}

func (r *BookingResponse) FromDetail(detail model.BookingDetail) {
	r.FromModel(detail.Booking)
	r.Contact = nil
	r.Service = nil

	if detail.ContactName != nil {
		r.Contact = &ContactSummary{
			ID:     detail.ContactID,
			Name:   *detail.ContactName,
			Email:  deref(detail.ContactEmail),
			Phone:  detail.ContactPhone,
			Status: deref(detail.ContactStatus),
		}
	}

	if detail.ServiceID != nil && detail.ServiceName != nil {
		r.Service = &ServiceSummary{
			ID:       *detail.ServiceID,
			Name:     *detail.ServiceName,
			Category: detail.ServiceCategory,
			Duration: deref(detail.ServiceDuration),
			Price:    deref(detail.ServicePrice),
		}
	}
}

func FromDetails(details []model.BookingDetail) []BookingResponse {
	res := make([]BookingResponse, len(details))
	for i, detail := range details {
		res[i].FromDetail(detail)
	}

	return res
}

func deref[T any](value *T) T {
	var zero T
	if value == nil {
		return zero
	}

	return *value
}
