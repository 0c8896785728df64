package premium

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientUnparseableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	_, err := c.FetchSubscription(context.Background())
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestClientUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.FetchSubscription(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeSubscription(w, nil)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token")
	status, err := c.FetchSubscription(context.Background())
	require.NoError(t, err)
	assert.Nil(t, status)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestCacheContributionsMirror(t *testing.T) {
	cache := newTestCache(t)
	assert.Empty(t, cache.Contributions())

	require.NoError(t, cache.AppendContribution(Contribution{GoalID: 1, Amount: 500000, At: "2026-03-15"}))
	require.NoError(t, cache.AppendContribution(Contribution{GoalID: 1, Amount: 250000, At: "2026-03-16"}))

	list := cache.Contributions()
	require.Len(t, list, 2)
	assert.Equal(t, 500000.0, list[0].Amount)
}
