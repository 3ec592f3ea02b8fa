// Package httpclient es el cliente saliente de los adapters: solo GET con
// respuesta JSON contra una base fija.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBody = 1 << 20
)

type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New arma el cliente con transport instrumentado. baseURL vacío deja el
// cliente sin configurar (BaseURL == "").
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errors.Wrap(err, "httpclient: invalid base url")
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// StatusError es una respuesta fuera de 2xx; Body va recortado.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("httpclient: status %d", e.StatusCode)
	}
	return fmt.Sprintf("httpclient: status %d: %s", e.StatusCode, e.Body)
}

// GetJSON pide BaseURL+path y decodifica la respuesta en out.
func (c *Client) GetJSON(ctx context.Context, path string, header http.Header, out any) error {
	if c == nil || c.BaseURL == "" {
		return errors.New("httpclient: base url not set")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "httpclient: new request")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrap(err, "httpclient: get")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return errors.Wrap(err, "httpclient: read body")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "httpclient: decode json")
	}
	return nil
}
