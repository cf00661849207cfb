package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const (
	defaultMetadataEndpoint = "http://169.254.169.254"
	metadataAPIVersion      = "2018-02-01"

	// refreshSkew renews a cached token slightly before it expires so
	// in-flight calls never carry a token at the edge of its lifetime.
	refreshSkew = 2 * time.Minute
)

// ManagedIdentityProvider exchanges the hosting platform's identity for a
// bearer token via the instance metadata endpoint, caching the token until
// shortly before it expires.
type ManagedIdentityProvider struct {
	resource   string
	endpoint   string
	httpClient *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

// ManagedIdentityOption configures a ManagedIdentityProvider.
type ManagedIdentityOption func(*ManagedIdentityProvider)

// WithEndpoint overrides the metadata endpoint, used by tests.
func WithEndpoint(endpoint string) ManagedIdentityOption {
	return func(p *ManagedIdentityProvider) {
		p.endpoint = endpoint
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ManagedIdentityOption {
	return func(p *ManagedIdentityProvider) {
		p.httpClient = c
	}
}

// ManagedIdentity creates a provider that requests tokens for the given
// resource, e.g. "https://ai.azure.com".
func ManagedIdentity(resource string, opts ...ManagedIdentityOption) *ManagedIdentityProvider {
	p := &ManagedIdentityProvider{
		resource:   resource,
		endpoint:   defaultMetadataEndpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type metadataTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresOn   string `json:"expires_on"` // epoch seconds, as a string
}

// Token returns a cached token when one is still fresh, otherwise fetches a
// new one from the metadata endpoint.
func (p *ManagedIdentityProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.expires.Add(-refreshSkew)) {
		return p.token, nil
	}

	token, expires, err := p.fetch(ctx)
	if err != nil {
		return "", err
	}
	p.token = token
	p.expires = expires
	return token, nil
}

func (p *ManagedIdentityProvider) fetch(ctx context.Context) (string, time.Time, error) {
	u := fmt.Sprintf("%s/metadata/identity/oauth2/token?api-version=%s&resource=%s",
		p.endpoint, metadataAPIVersion, url.QueryEscape(p.resource))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Metadata", "true")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", time.Time{}, fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, body)
	}

	var tr metadataTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", time.Time{}, fmt.Errorf("parse token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", time.Time{}, ErrNoToken
	}

	expires := time.Now().Add(time.Hour)
	if secs, err := strconv.ParseInt(tr.ExpiresOn, 10, 64); err == nil {
		expires = time.Unix(secs, 0)
	}

	return tr.AccessToken, expires, nil
}
