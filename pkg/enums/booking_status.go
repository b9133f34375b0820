package enums

import "fmt"

// BookingStatus tracks the lifecycle of a salon booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

var validBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

var bookingStatusRank = map[BookingStatus]int{
	BookingStatusPending:   0,
	BookingStatusConfirmed: 1,
	BookingStatusCompleted: 2,
}

// String implements fmt.Stringer.
func (s BookingStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known BookingStatus.
func (s BookingStatus) IsValid() bool {
	for _, candidate := range validBookingStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransitionTo mirrors the order lifecycle rules for bookings.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if !target.IsValid() || s.IsTerminal() || s == target {
		return false
	}
	if target == BookingStatusCancelled {
		return true
	}
	return bookingStatusRank[target] > bookingStatusRank[s]
}

// ParseBookingStatus converts raw input into a BookingStatus.
func ParseBookingStatus(value string) (BookingStatus, error) {
	for _, candidate := range validBookingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking status %q", value)
}
