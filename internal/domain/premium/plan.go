package premium

import (
	"strings"
	"time"
)

// Plan identifiers (single source of truth)
type Plan string

const (
	PlanNone     Plan = ""
	PlanOneMonth Plan = "1-month"
	PlanSixMonth Plan = "6-month"
	PlanOneYear  Plan = "1-year"
)

// Rank orders plans by precedence: 1-month < 6-month < 1-year.
// Unknown plans rank 0 so they never win a badge comparison.
func (p Plan) Rank() int {
	switch p {
	case PlanOneMonth:
		return 1
	case PlanSixMonth:
		return 2
	case PlanOneYear:
		return 3
	default:
		return 0
	}
}

func (p Plan) Valid() bool {
	return p.Rank() > 0
}

// Duration is the entitlement length a single purchase of this plan buys.
func (p Plan) Duration() time.Duration {
	switch p {
	case PlanOneMonth:
		return 30 * 24 * time.Hour
	case PlanSixMonth:
		return 180 * 24 * time.Hour
	case PlanOneYear:
		return 365 * 24 * time.Hour
	default:
		return 0
	}
}

func (p Plan) DisplayName() string {
	switch p {
	case PlanOneMonth:
		return "Premium 1 Month"
	case PlanSixMonth:
		return "Premium 6 Months"
	case PlanOneYear:
		return "Premium 1 Year"
	default:
		return ""
	}
}

// ParsePlan normalizes raw input to a known plan. Anything unknown maps to
// PlanNone rather than an error so callers can fail closed.
func ParsePlan(raw string) Plan {
	p := Plan(strings.ToLower(strings.TrimSpace(raw)))
	if p.Valid() {
		return p
	}
	return PlanNone
}

// AllPlans in ascending precedence order.
func AllPlans() []Plan {
	return []Plan{PlanOneMonth, PlanSixMonth, PlanOneYear}
}
