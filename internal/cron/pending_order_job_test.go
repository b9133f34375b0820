package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/logger"
)

type fakePendingReader struct {
	orders []models.Order
	err    error
	cutoff time.Time
}

func (f *fakePendingReader) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.Order, error) {
	f.cutoff = cutoff
	return f.orders, f.err
}

type recordingPendingNotifier struct {
	orders []uuid.UUID
	days   []string
}

func (n *recordingPendingNotifier) OrderPendingLong(ctx context.Context, order *models.Order, today string) {
	n.orders = append(n.orders, order.ID)
	n.days = append(n.days, today)
}

func TestPendingOrderJobNotifiesEachStaleOrder(t *testing.T) {
	stale := []models.Order{
		{ID: uuid.New(), CustomerName: "มะลิ"},
		{ID: uuid.New(), CustomerName: "สมชาย"},
	}
	reader := &fakePendingReader{orders: stale}
	notifier := &recordingPendingNotifier{}
	job, err := NewPendingOrderJob(PendingOrderJobParams{
		Logger:   logger.New(logger.Options{ServiceName: "cron-test"}),
		Reader:   reader,
		Notifier: notifier,
		MaxWait:  2 * time.Hour,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	job.(*pendingOrderJob).now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(notifier.orders) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifier.orders))
	}
	if notifier.orders[0] != stale[0].ID || notifier.orders[1] != stale[1].ID {
		t.Fatal("notifications out of order")
	}
	if notifier.days[0] != "2026-08-30" {
		t.Fatalf("unexpected day %s", notifier.days[0])
	}
	if want := now.Add(-2 * time.Hour); !reader.cutoff.Equal(want) {
		t.Fatalf("cutoff = %v, want %v", reader.cutoff, want)
	}
}

func TestPendingOrderJobPropagatesReaderError(t *testing.T) {
	job, err := NewPendingOrderJob(PendingOrderJobParams{
		Logger:   logger.New(logger.Options{ServiceName: "cron-test"}),
		Reader:   &fakePendingReader{err: errors.New("db down")},
		Notifier: &recordingPendingNotifier{},
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
