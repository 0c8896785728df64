package premium

import (
	"context"
	"errors"
	"sync"
	"time"

	"finmate/internal/domain/premium"
)

// State is where the reconciler sits in its load lifecycle.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateResolved
	// StateLoadFailed means the last remote fetch errored; the snapshot
	// held alongside it is the expiry-filtered local cache.
	StateLoadFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateResolved:
		return "resolved"
	case StateLoadFailed:
		return "load_failed"
	}
	return "unknown"
}

// ErrNothingToCancel is returned by Cancel when no entitlement is held.
var ErrNothingToCancel = errors.New("no active entitlement to cancel")

// Reconciler owns the resolved entitlement snapshot for one user session.
// It loads from the backend when authenticated, falls back to the local
// cache when the backend is unreachable, and applies purchases through
// the shared precedence and accrual rules.
//
// Loads never fail hard: a remote error degrades to the cached snapshot.
// Purchase and Cancel surface their errors so the caller can alert the
// user.
type Reconciler struct {
	client *Client
	cache  *Cache

	mu            sync.Mutex
	authenticated bool
	state         State
	current       *premium.Status

	// generation invalidates in-flight loads superseded by a newer
	// trigger (e.g. a logout while a slow fetch is pending)
	generation uint64

	now func() time.Time
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithClock injects the time source. Tests pin it.
func WithClock(now func() time.Time) ReconcilerOption {
	return func(r *Reconciler) {
		r.now = now
	}
}

// NewReconciler wires a client and cache into a fresh, unloaded reconciler.
func NewReconciler(client *Client, cache *Cache, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		client: client,
		cache:  cache,
		state:  StateUnloaded,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Current returns the lifecycle state and the resolved entitlement, nil
// when none is held.
func (r *Reconciler) Current() (State, *premium.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.current
}

// SetAuthenticated records an auth transition and reloads. Logging out
// also clears the cached entitlement, which belongs to the old identity.
func (r *Reconciler) SetAuthenticated(ctx context.Context, authenticated bool) {
	r.mu.Lock()
	if r.authenticated == authenticated && r.state != StateUnloaded {
		r.mu.Unlock()
		return
	}
	r.authenticated = authenticated
	r.generation++
	if !authenticated {
		_ = r.cache.ClearStatus()
	}
	r.mu.Unlock()

	r.Load(ctx)
}

// Load resolves the entitlement: remote when authenticated, local cache
// otherwise. Remote failures degrade to the cache and are never returned;
// the resolved snapshot (possibly nil) is.
func (r *Reconciler) Load(ctx context.Context) *premium.Status {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	r.state = StateLoading
	authenticated := r.authenticated
	r.mu.Unlock()

	if !authenticated {
		status := r.filterExpiry(r.cache.Status())
		r.commit(gen, StateResolved, status)
		return status
	}

	status, err := r.client.FetchSubscription(ctx)
	if err != nil {
		// degrade to whatever the cache holds
		cached := r.filterExpiry(r.cache.Status())
		r.commit(gen, StateLoadFailed, cached)
		return cached
	}

	status = r.filterExpiry(status)
	if !r.commit(gen, StateResolved, status) {
		// superseded mid-flight: leave the cache to the newer owner
		return status
	}
	if status == nil {
		_ = r.cache.ClearStatus()
	} else {
		_ = r.cache.SaveStatus(status)
	}
	return status
}

// Purchase applies a plan purchase. Authenticated: the backend is
// authoritative and its returned plan and expiry are adopted. Otherwise
// the badge and expiry are estimated locally with the shared rules and
// written to the cache only; the estimate is reconciled away on the next
// authenticated load.
func (r *Reconciler) Purchase(ctx context.Context, plan premium.Plan, paymentMethod string) (*premium.Status, error) {
	if !plan.Valid() {
		return nil, errors.New("unknown plan: " + string(plan))
	}

	r.mu.Lock()
	pre := r.filterExpiry(r.current)
	authenticated := r.authenticated
	gen := r.generation
	now := r.now()
	r.mu.Unlock()

	if authenticated {
		status, err := r.client.Purchase(ctx, PurchaseRequest{
			Plan:          string(plan),
			PaymentMethod: paymentMethod,
		})
		if err != nil {
			return nil, err
		}
		if r.commit(gen, StateResolved, status) {
			_ = r.cache.SaveStatus(status)
		}
		return status, nil
	}

	status := &premium.Status{
		Plan:        premium.ResolveBadge(pre, plan, now),
		PurchasedAt: now,
		ExpiresAt:   premium.AccrueExpiry(pre, plan, now),
	}
	if err := r.cache.SaveStatus(status); err != nil {
		return nil, err
	}
	r.commit(gen, StateResolved, status)
	return status, nil
}

// Cancel marks the entitlement inactive. When authenticated the backend
// must confirm first; the local cache is only cleared after it does.
func (r *Reconciler) Cancel(ctx context.Context) error {
	r.mu.Lock()
	held := r.current != nil
	authenticated := r.authenticated
	gen := r.generation
	r.mu.Unlock()

	if !held {
		return ErrNothingToCancel
	}

	if authenticated {
		if err := r.client.Cancel(ctx); err != nil {
			return err
		}
	}

	_ = r.cache.ClearStatus()
	r.commit(gen, StateResolved, nil)
	return nil
}

// filterExpiry applies the expiry verdict at the injected clock.
func (r *Reconciler) filterExpiry(status *premium.Status) *premium.Status {
	if !status.IsActiveAt(r.now()) {
		return nil
	}
	return status
}

// commit installs a result unless a newer trigger superseded it. Reports
// whether the result was actually installed.
func (r *Reconciler) commit(gen uint64, state State, status *premium.Status) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		return false
	}
	r.state = state
	r.current = status
	return true
}
