// Package jwtverifier valida localmente los access tokens HS256 del proveedor de identidad.
package jwtverifier

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier sin ir a la red.
type Verifier struct {
	secret   []byte
	audience string
}

func New(secret, audience string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}
	return &Verifier{secret: []byte(secret), audience: strings.TrimSpace(audience)}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	var c tokenClaims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, errors.Wrap(ErrInvalidToken, err.Error())
	}

	sub := strings.TrimSpace(c.Subject)
	if sub == "" {
		return auth.Claims{}, errors.Wrap(ErrInvalidToken, "missing sub")
	}
	return auth.Claims{UserID: sub, Email: strings.TrimSpace(c.Email)}, nil
}
