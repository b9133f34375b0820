package orders

import (
	"github.com/google/uuid"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
	"github.com/beemsaisuoy/my-salon-app/pkg/pagination"
)

// Actor is the authenticated caller. Admins see every order; customers only
// their own.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// IsAdmin reports whether the actor has staff privileges.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.UserRoleAdmin
}

// ListInput narrows an order listing.
type ListInput struct {
	Status     *string
	Pagination pagination.Params
}

// Page is a cursor-paginated order listing.
type Page struct {
	Orders     []models.Order `json:"orders"`
	NextCursor *string        `json:"next_cursor,omitempty"`
}

// StatusUpdateInput is the admin payload for moving an order through the
// kitchen flow.
type StatusUpdateInput struct {
	Status string `json:"status" validate:"required"`
}
