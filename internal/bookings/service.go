package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
	"github.com/beemsaisuoy/my-salon-app/pkg/pagination"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// OpenSlots are the bookable times of a salon day.
var OpenSlots = []string{
	"10:00", "11:00", "12:00", "13:00", "14:00",
	"15:00", "16:00", "17:00", "18:00",
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceCatalog loads the salon service being booked.
type ServiceCatalog interface {
	GetSalonService(ctx context.Context, id uuid.UUID) (*models.SalonService, error)
}

// Notifier receives post-commit booking events.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *models.Booking)
}

// Service manages salon bookings: one booking per date and time slot.
type Service interface {
	Availability(ctx context.Context, date string) ([]Slot, error)
	Create(ctx context.Context, actor Actor, input CreateInput) (*models.Booking, error)
	List(ctx context.Context, actor Actor, input ListInput) (*Page, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input StatusUpdateInput) (*models.Booking, error)
	Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*models.Booking, error)
}

type service struct {
	repo     *Repository
	tx       txRunner
	catalog  ServiceCatalog
	notifier Notifier
	now      func() time.Time
}

// NewService builds a booking service with the required dependencies.
func NewService(repo *Repository, tx txRunner, catalog ServiceCatalog, notifier Notifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("service catalog required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		catalog:  catalog,
		notifier: notifier,
		now:      time.Now,
	}, nil
}

func (s *service) Availability(ctx context.Context, date string) ([]Slot, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date, expected YYYY-MM-DD")
	}

	taken, err := s.repo.TakenSlots(ctx, date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load taken slots")
	}
	takenSet := make(map[string]struct{}, len(taken))
	for _, slot := range taken {
		takenSet[slot] = struct{}{}
	}

	slots := make([]Slot, 0, len(OpenSlots))
	for _, slot := range OpenSlots {
		_, held := takenSet[slot]
		slots = append(slots, Slot{Time: slot, Available: !held})
	}
	return slots, nil
}

func (s *service) Create(ctx context.Context, actor Actor, input CreateInput) (*models.Booking, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	date, err := time.ParseInLocation(DateLayout, input.Date, time.Local)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date, expected YYYY-MM-DD")
	}
	if date.Before(startOfDay(s.now())) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must not be in the past")
	}
	if !isOpenSlot(input.TimeSlot) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("time slot %q is not bookable", input.TimeSlot))
	}

	salonService, err := s.catalog.GetSalonService(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if !salonService.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "salon service not found")
	}

	var booking *models.Booking
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		held, err := repo.CountActiveAtSlot(ctx, input.Date, input.TimeSlot)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check slot")
		}
		if held > 0 {
			return pkgerrors.New(pkgerrors.CodeSlotTaken,
				fmt.Sprintf("slot %s on %s is already booked", input.TimeSlot, input.Date)).
				WithDetails(map[string]any{"date": input.Date, "time_slot": input.TimeSlot})
		}

		booking = &models.Booking{
			CustomerID:    actor.UserID,
			CustomerName:  actor.Name,
			CustomerPhone: input.CustomerPhone,
			ServiceID:     salonService.ID,
			ServiceName:   salonService.Name,
			PriceSatang:   salonService.PriceSatang,
			Date:          input.Date,
			TimeSlot:      input.TimeSlot,
			Status:        enums.BookingStatusPending,
			Note:          input.Note,
		}
		if _, err := repo.Create(ctx, booking); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.BookingCreated(ctx, booking)
	return booking, nil
}

func (s *service) List(ctx context.Context, actor Actor, input ListInput) (*Page, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	params := listBookingsParams{Limit: input.Pagination.Limit, Cursor: cursor, Date: input.Date}
	if !actor.IsAdmin() {
		customerID := actor.UserID
		params.CustomerID = &customerID
	}
	if input.Status != nil {
		status, err := enums.ParseBookingStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		params.Status = &status
	}

	bookings, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}

	page := &Page{Bookings: bookings}
	if next != nil {
		encoded := pagination.EncodeCursor(*next)
		page.NextCursor = &encoded
	}
	return page, nil
}

func (s *service) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.loadBooking(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && booking.CustomerID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	return booking, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input StatusUpdateInput) (*models.Booking, error) {
	target, err := enums.ParseBookingStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	var updated *models.Booking
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		booking, err := s.loadBooking(ctx, repo, id)
		if err != nil {
			return err
		}
		if !booking.Status.CanTransitionTo(target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move booking from %s to %s", booking.Status, target))
		}
		if err := repo.UpdateStatus(ctx, booking.ID, target, s.now()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking status")
		}
		updated, err = s.loadBooking(ctx, repo, booking.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*models.Booking, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var updated *models.Booking
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		booking, err := s.loadBooking(ctx, repo, id)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && booking.CustomerID != actor.UserID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		if !booking.Status.CanTransitionTo(enums.BookingStatusCancelled) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "booking can no longer be cancelled")
		}
		if err := repo.UpdateStatus(ctx, booking.ID, enums.BookingStatusCancelled, s.now()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel booking")
		}
		updated, err = s.loadBooking(ctx, repo, booking.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) loadBooking(ctx context.Context, repo *Repository, id uuid.UUID) (*models.Booking, error) {
	booking, err := repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	return booking, nil
}

func isOpenSlot(slot string) bool {
	for _, candidate := range OpenSlots {
		if candidate == slot {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
