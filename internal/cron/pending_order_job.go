package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/logger"
)

const defaultPendingMaxWait = time.Hour

// PendingOrderJobParams configure the stale-order sweep.
type PendingOrderJobParams struct {
	Logger   *logger.Logger
	Reader   pendingOrderReader
	Notifier pendingOrderNotifier
	MaxWait  time.Duration
}

type pendingOrderReader interface {
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.Order, error)
}

type pendingOrderNotifier interface {
	OrderPendingLong(ctx context.Context, order *models.Order, today string)
}

// NewPendingOrderJob builds the sweep that flags orders sitting in pending
// past the configured wait. The notification layer dedupes per order per day,
// so re-running the sweep within a cycle is harmless.
func NewPendingOrderJob(params PendingOrderJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Reader == nil {
		return nil, fmt.Errorf("orders reader required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	maxWait := params.MaxWait
	if maxWait <= 0 {
		maxWait = defaultPendingMaxWait
	}
	return &pendingOrderJob{
		logg:     params.Logger,
		reader:   params.Reader,
		notifier: params.Notifier,
		maxWait:  maxWait,
		now:      time.Now,
	}, nil
}

type pendingOrderJob struct {
	logg     *logger.Logger
	reader   pendingOrderReader
	notifier pendingOrderNotifier
	maxWait  time.Duration
	now      func() time.Time
}

func (j *pendingOrderJob) Name() string { return "pending-order-sweep" }

func (j *pendingOrderJob) Run(ctx context.Context) error {
	now := j.now()
	cutoff := now.Add(-j.maxWait)
	orders, err := j.reader.ListPendingOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("query pending orders: %w", err)
	}

	today := now.Format("2006-01-02")
	for i := range orders {
		j.notifier.OrderPendingLong(ctx, &orders[i], today)
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff": cutoff,
		"count":  len(orders),
	})
	j.logg.Info(logCtx, "pending order sweep complete")
	return nil
}
