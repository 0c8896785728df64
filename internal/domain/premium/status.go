package premium

import "time"

// Status is the resolved entitlement snapshot shared between the server
// handlers and the client SDK. A nil *Status means "no entitlement".
type Status struct {
	Plan        Plan      `json:"plan"`
	PurchasedAt time.Time `json:"purchasedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// IsActiveAt reports whether the entitlement is active at the given instant.
// Fails closed: nil status, unknown plan or missing expiry all read as
// inactive. Never consults the wall clock.
func (s *Status) IsActiveAt(now time.Time) bool {
	if s == nil || !s.Plan.Valid() {
		return false
	}
	if s.ExpiresAt.IsZero() {
		return false
	}
	return s.ExpiresAt.After(now)
}

// ResolveBadge decides which plan badge the user holds after purchasing
// newPlan at instant now.
//
// - No current entitlement, or a lapsed one: the badge is the new plan.
//   A fresh purchase never inherits a badge from an expired subscription.
// - Active current entitlement: the higher-precedence plan wins, so buying
//   a cheaper top-up while a bigger plan is running never downgrades the
//   badge. The expiry itself is accrued separately (see AccrueExpiry).
func ResolveBadge(current *Status, newPlan Plan, now time.Time) Plan {
	if !current.IsActiveAt(now) {
		return newPlan
	}
	if newPlan.Rank() > current.Plan.Rank() {
		return newPlan
	}
	return current.Plan
}

// AccrueExpiry computes the expiry after purchasing newPlan at instant now.
// Purchases stack: when the current entitlement is still running, the new
// duration extends from its expiry, otherwise from now.
func AccrueExpiry(current *Status, newPlan Plan, now time.Time) time.Time {
	base := now
	if current.IsActiveAt(now) && current.ExpiresAt.After(now) {
		base = current.ExpiresAt
	}
	return base.Add(newPlan.Duration())
}
