package enums

import "fmt"

// NotificationType classifies entries in the admin notification feed.
type NotificationType string

const (
	NotificationTypeBookingNew       NotificationType = "booking_new"
	NotificationTypeOrderNew         NotificationType = "order_new"
	NotificationTypeProductLowStock  NotificationType = "product_low_stock"
	NotificationTypeBookingToday     NotificationType = "booking_today"
	NotificationTypeOrderPendingLong NotificationType = "order_pending_long"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeBookingNew,
	NotificationTypeOrderNew,
	NotificationTypeProductLowStock,
	NotificationTypeBookingToday,
	NotificationTypeOrderPendingLong,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
