package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "v", r.Header.Get("X-Extra"))
			_, _ = w.Write([]byte(`{"id":"42"}`))
		default:
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte(" nope "))
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", time.Second)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, c.BaseURL)

	var out struct {
		ID string `json:"id"`
	}
	h := http.Header{}
	h.Set("X-Extra", "v")
	require.NoError(t, c.GetJSON(context.Background(), "ok", h, &out))
	assert.Equal(t, "42", out.ID)

	err = c.GetJSON(context.Background(), "/broken", nil, &out)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTeapot, se.StatusCode)
	assert.Equal(t, "nope", se.Body)
}

func TestGetJSON_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, time.Second)
	require.NoError(t, err)

	var out map[string]any
	assert.Error(t, c.GetJSON(context.Background(), "/x", nil, &out))
}

func TestNew(t *testing.T) {
	c, err := New("", 0)
	require.NoError(t, err)
	assert.Empty(t, c.BaseURL)
	assert.Equal(t, DefaultTimeout, c.HTTP.Timeout)

	var out map[string]any
	assert.Error(t, c.GetJSON(context.Background(), "/x", nil, &out))

	_, err = New("::bad", time.Second)
	assert.Error(t, err)
}
