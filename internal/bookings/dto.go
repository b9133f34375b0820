package bookings

import (
	"github.com/google/uuid"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
	"github.com/beemsaisuoy/my-salon-app/pkg/pagination"
)

// Actor is the authenticated caller.
type Actor struct {
	UserID uuid.UUID
	Name   string
	Role   enums.UserRole
}

// IsAdmin reports whether the actor has staff privileges.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.UserRoleAdmin
}

// CreateInput is the payload for booking a salon slot.
type CreateInput struct {
	ServiceID     uuid.UUID `json:"service_id" validate:"required"`
	Date          string    `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot      string    `json:"time_slot" validate:"required"`
	Note          *string   `json:"note,omitempty" validate:"omitempty,max=500"`
	CustomerPhone *string   `json:"customer_phone,omitempty" validate:"omitempty,max=20"`
}

// ListInput narrows a booking listing.
type ListInput struct {
	Date       *string
	Status     *string
	Pagination pagination.Params
}

// Page is a cursor-paginated booking listing.
type Page struct {
	Bookings   []models.Booking `json:"bookings"`
	NextCursor *string          `json:"next_cursor,omitempty"`
}

// Slot reports availability for one bookable time on a given date.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// StatusUpdateInput is the admin payload for moving a booking along.
type StatusUpdateInput struct {
	Status string `json:"status" validate:"required"`
}
