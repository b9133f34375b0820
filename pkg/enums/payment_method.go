package enums

import "fmt"

// PaymentMethod describes how the customer settles a bakery order.
type PaymentMethod string

const (
	PaymentMethodPayAtStore        PaymentMethod = "pay_at_store"
	PaymentMethodPromptPayTransfer PaymentMethod = "promptpay_transfer"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodPayAtStore,
	PaymentMethodPromptPayTransfer,
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
