package access

import (
	"time"

	"finmate/internal/domain/premium"
)

type Policy struct {
	State        AccessState `json:"state"`
	Badge        string      `json:"badge,omitempty"`
	Capabilities []string    `json:"capabilities"`
}

// ComputePolicy maps the resolved entitlement to what the product lets the
// user do. Expired means a subscription existed but lapsed; free means there
// never was one (or it was cancelled).
func ComputePolicy(now time.Time, status *premium.Status) Policy {
	if status.IsActiveAt(now) {
		return Policy{
			State:        AccessPremium,
			Badge:        string(status.Plan),
			Capabilities: CapabilitiesFor(status.Plan),
		}
	}

	state := AccessFree
	if status != nil && !status.ExpiresAt.IsZero() {
		state = AccessExpired
	}
	return Policy{
		State:        state,
		Capabilities: CapabilitiesFor(premium.PlanNone),
	}
}
