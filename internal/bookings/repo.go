package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
	"github.com/beemsaisuoy/my-salon-app/pkg/pagination"
)

// Repository exposes persistence helpers for bookings.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

type listBookingsParams struct {
	CustomerID *uuid.UUID
	Date       *string
	Status     *enums.BookingStatus
	Limit      int
	Cursor     *pagination.Cursor
}

// List returns a page of bookings ordered by newest first.
func (r *Repository) List(ctx context.Context, params listBookingsParams) ([]models.Booking, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Booking{})
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.Date != nil {
		query = query.Where("date = ?", *params.Date)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&bookings).Error; err != nil {
		return nil, nil, err
	}

	if len(bookings) > normalized {
		next := bookings[normalized]
		bookings = bookings[:normalized]
		return bookings, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return bookings, nil, nil
}

// FindByID loads a single booking row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// Create inserts a new booking row.
func (r *Repository) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// TakenSlots returns the time slots already held on the given date.
// Cancelled bookings free their slot.
func (r *Repository) TakenSlots(ctx context.Context, date string) ([]string, error) {
	var slots []string
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("date = ? AND status <> ?", date, enums.BookingStatusCancelled).
		Pluck("time_slot", &slots).
		Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// CountActiveAtSlot counts non-cancelled bookings holding the slot.
func (r *Repository) CountActiveAtSlot(ctx context.Context, date, timeSlot string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("date = ? AND time_slot = ? AND status <> ?", date, timeSlot, enums.BookingStatusCancelled).
		Count(&count).
		Error
	return count, err
}

// UpdateStatus writes the new status and lifecycle timestamps.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus, now time.Time) error {
	updates := map[string]any{"status": status, "updated_at": now}
	if status == enums.BookingStatusCancelled {
		updates["cancelled_at"] = now
	}
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

// ListActiveByDate returns every non-cancelled booking for the date, used by
// the daily reminder sweep.
func (r *Repository) ListActiveByDate(ctx context.Context, date string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("date = ? AND status <> ?", date, enums.BookingStatusCancelled).
		Order("time_slot ASC").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
