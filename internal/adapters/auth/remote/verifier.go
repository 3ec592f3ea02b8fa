package remote

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier delegando en el proveedor.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.User(ctx, token)
	if err != nil {
		return auth.Claims{}, errors.Wrap(err, "remote verify failed")
	}
	return claims, nil
}
