package premium

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func activeStatus(p Plan, left time.Duration) *Status {
	return &Status{
		Plan:        p,
		PurchasedAt: testNow.Add(-24 * time.Hour),
		ExpiresAt:   testNow.Add(left),
	}
}

func TestIsActiveAt(t *testing.T) {
	tests := []struct {
		name   string
		status *Status
		want   bool
	}{
		{"nil status", nil, false},
		{"active", activeStatus(PlanSixMonth, 10*24*time.Hour), true},
		{"expired yesterday", activeStatus(PlanSixMonth, -24*time.Hour), false},
		{"expires exactly now", activeStatus(PlanSixMonth, 0), false},
		{"unknown plan", &Status{Plan: "lifetime", ExpiresAt: testNow.Add(time.Hour)}, false},
		{"missing expiry", &Status{Plan: PlanOneYear, PurchasedAt: testNow}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsActiveAt(testNow))
		})
	}
}

// Applying the evaluator twice must give the same verdict.
func TestIsActiveAtIdempotent(t *testing.T) {
	s := activeStatus(PlanOneMonth, 48*time.Hour)
	first := s.IsActiveAt(testNow)
	assert.Equal(t, first, s.IsActiveAt(testNow))

	expired := activeStatus(PlanOneMonth, -time.Hour)
	assert.Equal(t, expired.IsActiveAt(testNow), expired.IsActiveAt(testNow))
}

func TestResolveBadgeTotality(t *testing.T) {
	// For every pair (current, new) with an active current entitlement the
	// badge is the higher-ranked plan; with a lapsed one it is the new plan.
	for _, cur := range AllPlans() {
		for _, next := range AllPlans() {
			active := activeStatus(cur, 10*24*time.Hour)
			got := ResolveBadge(active, next, testNow)
			want := cur
			if next.Rank() > cur.Rank() {
				want = next
			}
			assert.Equalf(t, want, got, "active %s + buy %s", cur, next)

			lapsed := activeStatus(cur, -24*time.Hour)
			assert.Equalf(t, next, ResolveBadge(lapsed, next, testNow), "lapsed %s + buy %s", cur, next)
		}
	}
}

func TestResolveBadgeNoDowngradeWhileActive(t *testing.T) {
	current := activeStatus(PlanOneYear, 30*24*time.Hour)
	assert.Equal(t, PlanOneYear, ResolveBadge(current, PlanOneMonth, testNow))
}

func TestResolveBadgeFreshStartAfterExpiry(t *testing.T) {
	current := activeStatus(PlanOneYear, -time.Minute)
	assert.Equal(t, PlanOneMonth, ResolveBadge(current, PlanOneMonth, testNow))
}

func TestResolveBadgeNoCurrentEntitlement(t *testing.T) {
	assert.Equal(t, PlanOneYear, ResolveBadge(nil, PlanOneYear, testNow))
	assert.Equal(t, PlanOneMonth, ResolveBadge(&Status{}, PlanOneMonth, testNow))
}

func TestResolveBadgeEqualPlansIdempotent(t *testing.T) {
	current := activeStatus(PlanSixMonth, 10*24*time.Hour)
	assert.Equal(t, PlanSixMonth, ResolveBadge(current, PlanSixMonth, testNow))
}

// The documented scenario: 6-month with 10 days left, top up with 1-month,
// badge stays 6-month; same purchase after expiry starts over at 1-month.
func TestResolveBadgeScenario(t *testing.T) {
	running := activeStatus(PlanSixMonth, 10*24*time.Hour)
	assert.Equal(t, PlanSixMonth, ResolveBadge(running, PlanOneMonth, testNow))

	expired := activeStatus(PlanSixMonth, -24*time.Hour)
	assert.Equal(t, PlanOneMonth, ResolveBadge(expired, PlanOneMonth, testNow))
}

func TestResolveBadgeDeterministic(t *testing.T) {
	current := activeStatus(PlanSixMonth, 10*24*time.Hour)
	first := ResolveBadge(current, PlanOneMonth, testNow)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ResolveBadge(current, PlanOneMonth, testNow))
	}
}

func TestAccrueExpiry(t *testing.T) {
	t.Run("fresh purchase extends from now", func(t *testing.T) {
		got := AccrueExpiry(nil, PlanOneYear, testNow)
		assert.Equal(t, testNow.Add(365*24*time.Hour), got)
	})

	t.Run("active entitlement stacks from its expiry", func(t *testing.T) {
		current := activeStatus(PlanSixMonth, 10*24*time.Hour)
		got := AccrueExpiry(current, PlanOneMonth, testNow)
		assert.Equal(t, current.ExpiresAt.Add(30*24*time.Hour), got)
	})

	t.Run("lapsed entitlement extends from now", func(t *testing.T) {
		expired := activeStatus(PlanOneYear, -48*time.Hour)
		got := AccrueExpiry(expired, PlanOneMonth, testNow)
		assert.Equal(t, testNow.Add(30*24*time.Hour), got)
	})
}

func TestParsePlan(t *testing.T) {
	assert.Equal(t, PlanOneMonth, ParsePlan("1-month"))
	assert.Equal(t, PlanSixMonth, ParsePlan("  6-Month "))
	assert.Equal(t, PlanOneYear, ParsePlan("1-YEAR"))
	assert.Equal(t, PlanNone, ParsePlan("2-week"))
	assert.Equal(t, PlanNone, ParsePlan(""))
}

func TestPlanOrder(t *testing.T) {
	plans := AllPlans()
	require.Len(t, plans, 3)
	for i := 1; i < len(plans); i++ {
		assert.Greater(t, plans[i].Rank(), plans[i-1].Rank())
	}
}

func TestSubscriptionStatus(t *testing.T) {
	sub := &Subscription{
		Plan:        "6-month",
		PurchasedAt: testNow,
		ExpiresAt:   testNow.Add(180 * 24 * time.Hour),
		IsActive:    true,
	}
	st := sub.Status()
	require.NotNil(t, st)
	assert.Equal(t, PlanSixMonth, st.Plan)
	assert.True(t, st.IsActiveAt(testNow))

	sub.IsActive = false
	assert.Nil(t, sub.Status())

	var none *Subscription
	assert.Nil(t, none.Status())
}
