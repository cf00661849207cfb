// Package auth supplies bearer credentials for calls to the remote
// assistant service. A pre-provisioned token, the hosting platform's
// managed-identity endpoint, and an ordered chain of the two are supported.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// ErrNoToken is returned when a provider has no credential to offer.
var ErrNoToken = errors.New("no bearer token available")

// TokenProvider supplies a bearer token for an outbound call.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticProvider returns a fixed pre-provisioned bearer token.
type StaticProvider struct {
	token string
}

// Static creates a provider around a fixed token value. An empty value is
// allowed; the provider then reports ErrNoToken, which lets it sit first in
// a chain and defer to the next provider.
func Static(token string) *StaticProvider {
	return &StaticProvider{token: token}
}

// Token returns the configured value. When the value parses as a JWT an
// already-expired credential is refused up front rather than sent to the
// remote service.
func (p *StaticProvider) Token(ctx context.Context) (string, error) {
	if p.token == "" {
		return "", ErrNoToken
	}
	if tok, err := jwt.Parse([]byte(p.token), jwt.WithVerify(false), jwt.WithValidate(false)); err == nil {
		if exp := tok.Expiration(); !exp.IsZero() && time.Now().After(exp) {
			return "", fmt.Errorf("static token expired at %s", exp.UTC().Format(time.RFC3339))
		}
	}
	return p.token, nil
}

// ChainProvider tries each provider in order and returns the first token
// obtained. This models the usual deployment setup: an explicitly
// provisioned token overrides the platform identity exchange.
type ChainProvider struct {
	providers []TokenProvider
}

// Chain creates a provider that consults the given providers in order.
func Chain(providers ...TokenProvider) *ChainProvider {
	return &ChainProvider{providers: providers}
}

// Token returns the first token any provider yields, or the joined errors
// when all of them fail.
func (p *ChainProvider) Token(ctx context.Context) (string, error) {
	var errs []error
	for _, provider := range p.providers {
		token, err := provider.Token(ctx)
		if err == nil && token != "" {
			return token, nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return "", ErrNoToken
	}
	return "", fmt.Errorf("all token providers failed: %w", errors.Join(errs...))
}
