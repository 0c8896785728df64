package stripe

import "strings"

// NormalizePaymentStatus maps Stripe checkout payment statuses onto the
// internal payment vocabulary used by billing.Payment.
func NormalizePaymentStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "paid", "no_payment_required":
		return "paid"
	case "unpaid":
		return "pending"
	default:
		return strings.TrimSpace(s)
	}
}
