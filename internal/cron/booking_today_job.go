package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/logger"
)

// BookingTodayJobParams configure the daily booking reminder sweep.
type BookingTodayJobParams struct {
	Logger   *logger.Logger
	Reader   todayBookingReader
	Notifier bookingTodayNotifier
}

type todayBookingReader interface {
	ListActiveByDate(ctx context.Context, date string) ([]models.Booking, error)
}

type bookingTodayNotifier interface {
	BookingToday(ctx context.Context, booking *models.Booking, today string)
}

// NewBookingTodayJob builds the sweep that reminds the shop owner about
// today's bookings. Dedupe keys keep each booking to one reminder per day.
func NewBookingTodayJob(params BookingTodayJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Reader == nil {
		return nil, fmt.Errorf("bookings reader required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &bookingTodayJob{
		logg:     params.Logger,
		reader:   params.Reader,
		notifier: params.Notifier,
		now:      time.Now,
	}, nil
}

type bookingTodayJob struct {
	logg     *logger.Logger
	reader   todayBookingReader
	notifier bookingTodayNotifier
	now      func() time.Time
}

func (j *bookingTodayJob) Name() string { return "booking-today-reminder" }

func (j *bookingTodayJob) Run(ctx context.Context) error {
	today := j.now().Format("2006-01-02")
	bookings, err := j.reader.ListActiveByDate(ctx, today)
	if err != nil {
		return fmt.Errorf("query today's bookings: %w", err)
	}

	for i := range bookings {
		j.notifier.BookingToday(ctx, &bookings[i], today)
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"date":  today,
		"count": len(bookings),
	})
	j.logg.Info(logCtx, "booking reminder sweep complete")
	return nil
}
