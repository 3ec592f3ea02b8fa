package settings

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connection refused")

type downRepo struct{}

func (downRepo) Get(context.Context, Category) (Setting, error) { return Setting{}, errConnRefused }
func (downRepo) Upsert(context.Context, Setting) error          { return errConnRefused }

func TestHandlers_StoreFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	RegisterAdminRoutes(r, NewService(downRepo{}), logger)

	reqs := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/settings/notifications", nil),
		httptest.NewRequest(http.MethodPut, "/settings/payment_methods",
			strings.NewReader(`{"pix":true,"cash":true,"credit":false,"debit":false}`)),
	}
	for _, req := range reqs {
		buf.Reset()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code, req.URL.Path)
		assert.Contains(t, buf.String(), "connection refused", req.URL.Path)
		assert.Contains(t, buf.String(), "request_id=", req.URL.Path)
	}
}

func TestHandlers_UnknownCategoryNotLogged(t *testing.T) {
	var buf bytes.Buffer
	r := chi.NewRouter()
	RegisterAdminRoutes(r, NewService(downRepo{}), slog.New(slog.NewTextHandler(&buf, nil)))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, buf.String())
}
