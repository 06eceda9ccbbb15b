package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-riskboard/pkg/scoring"
	"github.com/goliatone/go-riskboard/pkg/session"
)

func TestStore_IdleExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(30*time.Minute, func() *session.Session { return session.New(nil) })
	store.now = func() time.Time { return now }

	id, created := store.Create()
	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Same(t, created, got)

	now = now.Add(20 * time.Minute)
	_, ok = store.Get(id)
	require.True(t, ok, "access refreshes the idle timer")

	now = now.Add(29 * time.Minute)
	assert.Equal(t, 0, store.Sweep())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, store.Sweep())
	_, ok = store.Get(id)
	assert.False(t, ok)

	_, ok = store.Get("")
	assert.False(t, ok)
}

func TestStore_RunStopsWithContext(t *testing.T) {
	store := NewStore(time.Minute, func() *session.Session { return session.New(nil) })
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Run(ctx, 10*time.Millisecond) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestServer_ActiveSessionOutlivesTTL(t *testing.T) {
	srv, err := New(scoring.NewClient(), WithSessionTTL(30*time.Minute))
	require.NoError(t, err)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	srv.store.now = func() time.Time { return now }

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Empty(t, rec.Result().Cookies(), "health checks do not start sessions")

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, SessionCookie, cookie.Name)
	assert.Zero(t, cookie.MaxAge, "cookie should last for the browser session")
	assert.True(t, cookie.Expires.IsZero())

	sess, ok := srv.store.Get(cookie.Value)
	require.True(t, ok)
	sess.History().Record(0.342)

	for i := 0; i < 4; i++ {
		now = now.Add(20 * time.Minute)
		req := httptest.NewRequest(http.MethodGet, "/history.csv", nil)
		req.AddCookie(cookie)
		rec = httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Empty(t, rec.Result().Cookies(), "round %d: session should not be replaced", i)
		assert.Equal(t, "Prediction History\n1,0.342", rec.Body.String(), "round %d", i)
	}

	now = now.Add(31 * time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/history.csv", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Len(t, rec.Result().Cookies(), 1, "idle session is replaced")
	assert.Equal(t, "Prediction History", rec.Body.String())
}
