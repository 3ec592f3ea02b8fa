package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, h http.HandlerFunc) *Verifier {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "anon-key", Timeout: time.Second})
	require.NoError(t, err)
	return NewVerifier(c)
}

func TestVerify_OK(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-1","email":"ana@example.com"}`))
	})

	c, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UserID)
	assert.Equal(t, "ana@example.com", c.Email)
}

func TestVerify_Unauthorized(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerify_Upstream(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestVerify_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)

	_, err = NewVerifier(c).Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewVerifier(c).Verify(context.Background(), " ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}
