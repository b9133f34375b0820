package cron

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/logger"
)

type fakeTodayReader struct {
	bookings []models.Booking
	date     string
}

func (f *fakeTodayReader) ListActiveByDate(ctx context.Context, date string) ([]models.Booking, error) {
	f.date = date
	return f.bookings, nil
}

type recordingTodayNotifier struct {
	bookings []uuid.UUID
}

func (n *recordingTodayNotifier) BookingToday(ctx context.Context, booking *models.Booking, today string) {
	n.bookings = append(n.bookings, booking.ID)
}

func TestBookingTodayJobNotifiesEachBooking(t *testing.T) {
	reader := &fakeTodayReader{bookings: []models.Booking{
		{ID: uuid.New(), TimeSlot: "10:00"},
		{ID: uuid.New(), TimeSlot: "13:00"},
	}}
	notifier := &recordingTodayNotifier{}
	job, err := NewBookingTodayJob(BookingTodayJobParams{
		Logger:   logger.New(logger.Options{ServiceName: "cron-test"}),
		Reader:   reader,
		Notifier: notifier,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	now := time.Date(2026, 8, 30, 7, 0, 0, 0, time.Local)
	job.(*bookingTodayJob).now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if reader.date != "2026-08-30" {
		t.Fatalf("queried date %s", reader.date)
	}
	if len(notifier.bookings) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifier.bookings))
	}
}
