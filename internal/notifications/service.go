package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/beemsaisuoy/my-salon-app/internal/cart"
	"github.com/beemsaisuoy/my-salon-app/pkg/db/models"
	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
	"github.com/beemsaisuoy/my-salon-app/pkg/logger"
	"github.com/beemsaisuoy/my-salon-app/pkg/pagination"
)

// SettingsSource provides the current shop settings, which gate each
// notification type and hold the LINE token.
type SettingsSource interface {
	Get(ctx context.Context) (*models.ShopSettings, error)
}

// LinePusher forwards a message to the shop owner's LINE account.
type LinePusher interface {
	Notify(ctx context.Context, token, message string) error
}

// ListInput narrows the notification feed.
type ListInput struct {
	UnreadOnly bool
	Pagination pagination.Params
}

// Page is a cursor-paginated slice of the feed.
type Page struct {
	Notifications []models.Notification `json:"notifications"`
	NextCursor    *string               `json:"next_cursor,omitempty"`
}

// Service maintains the admin notification feed. Event methods are called
// after commits on the hot paths; they gate on settings, dedupe repeatable
// alerts per day, and mirror to LINE. They never return errors to callers.
type Service interface {
	List(ctx context.Context, input ListInput) (*Page, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)

	OrderCreated(ctx context.Context, order *models.Order)
	BookingCreated(ctx context.Context, booking *models.Booking)
	ProductLowStock(ctx context.Context, product *models.Product)
	BookingToday(ctx context.Context, booking *models.Booking, today string)
	OrderPendingLong(ctx context.Context, order *models.Order, today string)
}

type service struct {
	repo     Repository
	settings SettingsSource
	line     LinePusher
	logger   *logger.Logger
	now      func() time.Time
}

// NewService builds a notifications service with the required dependencies.
func NewService(repo Repository, settings SettingsSource, line LinePusher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings source required")
	}
	if line == nil {
		return nil, fmt.Errorf("line pusher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		settings: settings,
		line:     line,
		logger:   logg,
		now:      time.Now,
	}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*Page, error) {
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	notifications, next, err := s.repo.List(ctx, listNotificationsParams{
		Limit:      input.Pagination.Limit,
		Cursor:     cursor,
		UnreadOnly: input.UnreadOnly,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	page := &Page{Notifications: notifications}
	if next != nil {
		encoded := pagination.EncodeCursor(*next)
		page.NextCursor = &encoded
	}
	return page, nil
}

func (s *service) UnreadCount(ctx context.Context) (int64, error) {
	count, err := s.repo.UnreadCount(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}
	return count, nil
}

func (s *service) MarkRead(ctx context.Context, id uuid.UUID) error {
	mark, err := s.repo.MarkRead(ctx, id, s.now())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !mark.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, s.now())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark all notifications read")
	}
	return updated, nil
}

func (s *service) OrderCreated(ctx context.Context, order *models.Order) {
	if order == nil {
		return
	}
	s.emit(ctx, emitParams{
		enabled: func(settings *models.ShopSettings) bool { return settings.NotifyOrderNew },
		notification: models.Notification{
			Type:    enums.NotificationTypeOrderNew,
			Title:   "ออเดอร์ใหม่",
			Message: fmt.Sprintf("ออเดอร์ใหม่จากคุณ%s ยอดรวม %s บาท", order.CustomerName, cart.BahtString(order.TotalSatang)),
			Link:    linkTo(fmt.Sprintf("/admin/orders/%s", order.ID)),
		},
	})
}

func (s *service) BookingCreated(ctx context.Context, booking *models.Booking) {
	if booking == nil {
		return
	}
	s.emit(ctx, emitParams{
		enabled: func(settings *models.ShopSettings) bool { return settings.NotifyBookingNew },
		notification: models.Notification{
			Type:    enums.NotificationTypeBookingNew,
			Title:   "การจองใหม่",
			Message: fmt.Sprintf("คุณ%s จอง%s วันที่ %s เวลา %s", booking.CustomerName, booking.ServiceName, booking.Date, booking.TimeSlot),
			Link:    linkTo(fmt.Sprintf("/admin/bookings/%s", booking.ID)),
		},
	})
}

func (s *service) ProductLowStock(ctx context.Context, product *models.Product) {
	if product == nil {
		return
	}
	key := fmt.Sprintf("low_stock:%s:%s", product.ID, s.today())
	s.emit(ctx, emitParams{
		enabled: func(settings *models.ShopSettings) bool { return settings.NotifyLowStock },
		notification: models.Notification{
			Type:      enums.NotificationTypeProductLowStock,
			Title:     "สินค้าใกล้หมด",
			Message:   fmt.Sprintf("%s เหลือ %d ชิ้น", product.Name, product.Stock),
			Link:      linkTo(fmt.Sprintf("/admin/products/%s", product.ID)),
			DedupeKey: &key,
		},
	})
}

func (s *service) BookingToday(ctx context.Context, booking *models.Booking, today string) {
	if booking == nil {
		return
	}
	key := fmt.Sprintf("booking_today:%s:%s", booking.ID, today)
	s.emit(ctx, emitParams{
		enabled: func(settings *models.ShopSettings) bool { return settings.NotifyBookingToday },
		notification: models.Notification{
			Type:      enums.NotificationTypeBookingToday,
			Title:     "คิววันนี้",
			Message:   fmt.Sprintf("วันนี้ %s คุณ%s %s", booking.TimeSlot, booking.CustomerName, booking.ServiceName),
			Link:      linkTo(fmt.Sprintf("/admin/bookings/%s", booking.ID)),
			DedupeKey: &key,
		},
	})
}

func (s *service) OrderPendingLong(ctx context.Context, order *models.Order, today string) {
	if order == nil {
		return
	}
	key := fmt.Sprintf("order_pending_long:%s:%s", order.ID, today)
	s.emit(ctx, emitParams{
		enabled: func(settings *models.ShopSettings) bool { return settings.NotifyPendingLong },
		notification: models.Notification{
			Type:      enums.NotificationTypeOrderPendingLong,
			Title:     "ออเดอร์ค้างนาน",
			Message:   fmt.Sprintf("ออเดอร์ของคุณ%s ยังไม่ได้เตรียม", order.CustomerName),
			Link:      linkTo(fmt.Sprintf("/admin/orders/%s", order.ID)),
			DedupeKey: &key,
		},
	})
}

type emitParams struct {
	enabled      func(*models.ShopSettings) bool
	notification models.Notification
}

// emit gates on settings, writes the feed row (respecting dedupe), and
// mirrors to LINE. Failures are logged and swallowed so notification
// trouble never breaks the calling flow.
func (s *service) emit(ctx context.Context, params emitParams) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Warn(ctx, "loading settings for notification: "+err.Error())
		return
	}
	if !params.enabled(settings) {
		return
	}

	created, err := s.repo.Create(ctx, &params.notification)
	if err != nil {
		s.logger.Warn(ctx, "writing notification: "+err.Error())
		return
	}
	if !created {
		// Deduped: already alerted today.
		return
	}

	if settings.LineNotifyToken != nil {
		message := params.notification.Title + "\n" + params.notification.Message
		if err := s.line.Notify(ctx, *settings.LineNotifyToken, message); err != nil {
			s.logger.Warn(ctx, "pushing line notification: "+err.Error())
		}
	}
}

func (s *service) today() string {
	return s.now().Format("2006-01-02")
}

func linkTo(path string) *string {
	return &path
}
