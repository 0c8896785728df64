package premium

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"finmate/internal/domain/premium"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return NewCache(filepath.Join(t.TempDir(), "finmate_cache.json"))
}

func writeSubscription(w http.ResponseWriter, status *premium.Status) {
	if status == nil {
		_ = json.NewEncoder(w).Encode(map[string]any{"subscription": nil})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"subscription": map[string]any{
			"plan":        string(status.Plan),
			"purchasedAt": status.PurchasedAt,
			"expiresAt":   status.ExpiresAt,
			"isActive":    true,
		},
	})
}

func activeStatus(plan premium.Plan, remaining time.Duration) *premium.Status {
	return &premium.Status{
		Plan:        plan,
		PurchasedAt: testNow.Add(-24 * time.Hour),
		ExpiresAt:   testNow.Add(remaining),
	}
}

func TestLoadRemoteResolves(t *testing.T) {
	remote := activeStatus(premium.PlanOneYear, 200*24*time.Hour)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeSubscription(w, remote)
	}))
	defer srv.Close()

	cache := newTestCache(t)
	r := NewReconciler(NewClient(srv.URL, "token"), cache, WithClock(fixedClock))
	r.SetAuthenticated(context.Background(), true)

	state, got := r.Current()
	assert.Equal(t, StateResolved, state)
	require.NotNil(t, got)
	assert.Equal(t, premium.PlanOneYear, got.Plan)

	// the fetched record is mirrored into the cache
	cached := cache.Status()
	require.NotNil(t, cached)
	assert.Equal(t, premium.PlanOneYear, cached.Plan)
}

func TestLoadFallsBackToCacheOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cache := newTestCache(t)
	require.NoError(t, cache.SaveStatus(activeStatus(premium.PlanSixMonth, 10*24*time.Hour)))

	r := NewReconciler(NewClient(srv.URL, "token"), cache, WithClock(fixedClock))
	r.SetAuthenticated(context.Background(), true)

	state, got := r.Current()
	assert.Equal(t, StateLoadFailed, state)
	require.NotNil(t, got)
	assert.Equal(t, premium.PlanSixMonth, got.Plan)
}

func TestLoadFallsBackToNothingWhenCacheEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	r := NewReconciler(NewClient(srv.URL, "token"), newTestCache(t), WithClock(fixedClock))
	r.SetAuthenticated(context.Background(), true)

	state, got := r.Current()
	assert.Equal(t, StateLoadFailed, state)
	assert.Nil(t, got)
}

func TestLoadUnauthenticatedReadsCache(t *testing.T) {
	cache := newTestCache(t)
	require.NoError(t, cache.SaveStatus(activeStatus(premium.PlanOneMonth, 5*24*time.Hour)))

	// no server at all: unauthenticated loads must never touch the network
	r := NewReconciler(NewClient("http://127.0.0.1:0", ""), cache, WithClock(fixedClock))
	got := r.Load(context.Background())

	require.NotNil(t, got)
	assert.Equal(t, premium.PlanOneMonth, got.Plan)
}

func TestLoadFiltersExpiredCache(t *testing.T) {
	cache := newTestCache(t)
	require.NoError(t, cache.SaveStatus(activeStatus(premium.PlanOneYear, -time.Hour)))

	r := NewReconciler(NewClient("http://127.0.0.1:0", ""), cache, WithClock(fixedClock))
	got := r.Load(context.Background())

	assert.Nil(t, got)
}

func TestLoadExpiredRemoteClearsCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeSubscription(w, activeStatus(premium.PlanOneYear, -time.Hour))
	}))
	defer srv.Close()

	cache := newTestCache(t)
	require.NoError(t, cache.SaveStatus(activeStatus(premium.PlanOneYear, -time.Hour)))

	r := NewReconciler(NewClient(srv.URL, "token"), cache, WithClock(fixedClock))
	r.SetAuthenticated(context.Background(), true)

	state, got := r.Current()
	assert.Equal(t, StateResolved, state)
	assert.Nil(t, got)
	assert.Nil(t, cache.Status())
}

func TestPurchaseAuthenticatedAdoptsServerResponse(t *testing.T) {
	// server keeps the higher badge and its own accrued expiry even
	// though the client asked for the cheaper top-up
	serverExpiry := testNow.Add(40 * 24 * time.Hour)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeSubscription(w, &premium.Status{
				Plan:        premium.PlanSixMonth,
				PurchasedAt: testNow,
				ExpiresAt:   serverExpiry,
			})
			return
		}
		writeSubscription(w, activeStatus(premium.PlanSixMonth, 10*24*time.Hour))
	}))
	defer srv.Close()

	cache := newTestCache(t)
	r := NewReconciler(NewClient(srv.URL, "token"), cache, WithClock(fixedClock))
	r.SetAuthenticated(context.Background(), true)

	got, err := r.Purchase(context.Background(), premium.PlanOneMonth, "simulated")
	require.NoError(t, err)
	assert.Equal(t, premium.PlanSixMonth, got.Plan)
	assert.True(t, got.ExpiresAt.Equal(serverExpiry))

	cached := cache.Status()
	require.NotNil(t, cached)
	assert.Equal(t, premium.PlanSixMonth, cached.Plan)
}

func TestPurchaseAuthenticatedSurfacesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			http.Error(w, `{"error":"payment failed"}`, http.StatusBadRequest)
			return
		}
		writeSubscription(w, nil)
	}))
	defer srv.Close()

	r := NewReconciler(NewClient(srv.URL, "token"), newTestCache(t), WithClock(fixedClock))
	r.SetAuthenticated(context.Background(), true)

	_, err := r.Purchase(context.Background(), premium.PlanOneMonth, "simulated")
	assert.Error(t, err)

	_, got := r.Current()
	assert.Nil(t, got)
}

func TestPurchaseOfflineFreshEstimate(t *testing.T) {
	cache := newTestCache(t)
	r := NewReconciler(NewClient("http://127.0.0.1:0", ""), cache, WithClock(fixedClock))
	r.Load(context.Background())

	got, err := r.Purchase(context.Background(), premium.PlanOneYear, "simulated")
	require.NoError(t, err)
	assert.Equal(t, premium.PlanOneYear, got.Plan)
	assert.True(t, got.PurchasedAt.Equal(testNow))
	assert.True(t, got.ExpiresAt.Equal(testNow.Add(365*24*time.Hour)))

	cached := cache.Status()
	require.NotNil(t, cached)
	assert.Equal(t, premium.PlanOneYear, cached.Plan)
}

func TestPurchaseOfflineKeepsHigherBadgeAndStacks(t *testing.T) {
	cache := newTestCache(t)
	currentExpiry := testNow.Add(10 * 24 * time.Hour)
	require.NoError(t, cache.SaveStatus(&premium.Status{
		Plan:        premium.PlanSixMonth,
		PurchasedAt: testNow.Add(-170 * 24 * time.Hour),
		ExpiresAt:   currentExpiry,
	}))

	r := NewReconciler(NewClient("http://127.0.0.1:0", ""), cache, WithClock(fixedClock))
	r.Load(context.Background())

	got, err := r.Purchase(context.Background(), premium.PlanOneMonth, "simulated")
	require.NoError(t, err)
	assert.Equal(t, premium.PlanSixMonth, got.Plan)
	assert.True(t, got.ExpiresAt.Equal(currentExpiry.Add(30*24*time.Hour)))
}

func TestStaleLoadDiscardedAfterLogout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
		writeSubscription(w, activeStatus(premium.PlanOneYear, 200*24*time.Hour))
	}))
	defer srv.Close()

	cache := newTestCache(t)
	r := NewReconciler(NewClient(srv.URL, "token"), cache, WithClock(fixedClock))

	r.mu.Lock()
	r.authenticated = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.Load(context.Background())
		close(done)
	}()

	// wait for the fetch to be in flight, then log out underneath it
	time.Sleep(20 * time.Millisecond)
	r.SetAuthenticated(context.Background(), false)

	close(block)
	<-done

	// the slow response must not resurrect the old identity's entitlement
	state, got := r.Current()
	assert.Equal(t, StateResolved, state)
	assert.Nil(t, got)
	assert.Nil(t, cache.Status())
}

func TestCorruptCacheReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finmate_cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	cache := NewCache(path)
	assert.Nil(t, cache.Status())

	// and the store recovers on the next write
	require.NoError(t, cache.SaveStatus(activeStatus(premium.PlanOneMonth, time.Hour)))
	require.NotNil(t, cache.Status())
}

func TestCancelOnlyClearsAfterRemoteConfirms(t *testing.T) {
	failDelete := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			if failDelete {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "cancelled"})
			return
		}
		writeSubscription(w, activeStatus(premium.PlanOneYear, 100*24*time.Hour))
	}))
	defer srv.Close()

	cache := newTestCache(t)
	r := NewReconciler(NewClient(srv.URL, "token"), cache, WithClock(fixedClock))
	r.SetAuthenticated(context.Background(), true)

	err := r.Cancel(context.Background())
	assert.Error(t, err)

	// remote refused, so nothing was thrown away
	_, got := r.Current()
	require.NotNil(t, got)
	require.NotNil(t, cache.Status())

	failDelete = false
	require.NoError(t, r.Cancel(context.Background()))

	_, got = r.Current()
	assert.Nil(t, got)
	assert.Nil(t, cache.Status())
}

func TestCancelWithoutEntitlement(t *testing.T) {
	r := NewReconciler(NewClient("http://127.0.0.1:0", ""), newTestCache(t), WithClock(fixedClock))
	r.Load(context.Background())

	err := r.Cancel(context.Background())
	assert.ErrorIs(t, err, ErrNothingToCancel)
}

func TestBadgeFor(t *testing.T) {
	assert.Equal(t, Badge{}, BadgeFor(nil))

	badge := BadgeFor(activeStatus(premium.PlanOneYear, time.Hour))
	assert.Equal(t, "badge-gold", badge.Style)
	assert.NotEmpty(t, badge.Label)
}
