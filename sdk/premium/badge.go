package premium

import "finmate/internal/domain/premium"

// Badge is what the UI renders for a resolved entitlement.
type Badge struct {
	Label string `json:"label"`
	Style string `json:"style"`
}

// BadgeFor maps a resolved entitlement to its display badge. A nil or
// unknown entitlement maps to the zero Badge.
func BadgeFor(status *premium.Status) Badge {
	if status == nil {
		return Badge{}
	}
	switch status.Plan {
	case premium.PlanOneMonth:
		return Badge{Label: status.Plan.DisplayName(), Style: "badge-bronze"}
	case premium.PlanSixMonth:
		return Badge{Label: status.Plan.DisplayName(), Style: "badge-silver"}
	case premium.PlanOneYear:
		return Badge{Label: status.Plan.DisplayName(), Style: "badge-gold"}
	}
	return Badge{}
}
