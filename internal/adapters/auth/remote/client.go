// Package remote verifica tokens contra el endpoint de usuario del proveedor de identidad.
package remote

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/platform/httpclient"
	"pet-grooming-agenda/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("identity provider not configured")
	ErrUnauthorized  = errors.New("identity provider unauthorized")
	ErrUpstream      = errors.New("identity provider upstream error")
)

const userPath = "/auth/v1/user"

type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío se usa "apikey".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "apikey"
	}
	hc, err := httpclient.New(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, apiKey: strings.TrimSpace(cfg.APIKey), apiKeyHeader: h}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// User pide al proveedor el usuario dueño del token.
func (c *Client) User(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}

	var out struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	h := http.Header{}
	h.Set(c.apiKeyHeader, c.apiKey)
	h.Set("Authorization", "Bearer "+token)
	if err := c.http.GetJSON(ctx, userPath, h, &out); err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) && (se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, errors.Wrap(ErrUpstream, err.Error())
	}

	id := strings.TrimSpace(out.ID)
	if id == "" {
		return auth.Claims{}, errors.Wrap(ErrUpstream, "response missing id")
	}
	return auth.Claims{UserID: id, Email: strings.TrimSpace(out.Email)}, nil
}
