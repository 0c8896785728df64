package access

import "finmate/internal/domain/premium"

func CapabilitiesFor(plan premium.Plan) []string {
	switch plan {
	case premium.PlanOneMonth:
		return []string{"unlimited_goals", "advanced_reports"}
	case premium.PlanSixMonth:
		return []string{"unlimited_goals", "advanced_reports", "export_csv"}
	case premium.PlanOneYear:
		return []string{"unlimited_goals", "advanced_reports", "export_csv", "priority_support"}
	default:
		return []string{}
	}
}
