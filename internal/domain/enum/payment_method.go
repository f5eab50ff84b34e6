package enum

import "strings"

// PaymentMethod represents how a sale was paid for
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodMpesa PaymentMethod = "mpesa"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// ParsePaymentMethod normalizes user input to a payment method. M-Pesa is
// commonly written with a hyphen, so both spellings are accepted.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PaymentMethodCash, true
	case "mpesa", "m-pesa":
		return PaymentMethodMpesa, true
	default:
		return "", false
	}
}
