package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tunjipaul/folio/pkg/domain"
)

// defaultTokenTTL applies when neither the login response nor the token
// says when it expires. Matches the backend's token lifetime.
const defaultTokenTTL = 24 * time.Hour

// Login exchanges admin credentials for a token and records the session.
// It is the one call that does not require an existing session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	creds := domain.LoginRequest{Email: email, Password: password}
	if err := domain.Validate(creds); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("client.Login: marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("client.Login: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", c.newID())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client.Login: do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("client.Login: %w", errorFromResponse(resp, "Login"))
	}

	var grant domain.LoginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&grant); err != nil {
		return nil, fmt.Errorf("client.Login: decode response: %w", err)
	}
	if grant.AccessToken == "" {
		return nil, errors.New("client.Login: response carried no access_token")
	}

	ttl, subject := tokenLifetime(grant, c.store.Now())
	if ttl <= 0 {
		return nil, errors.New("client.Login: token already expired")
	}
	identity := grant.Email
	if identity == "" {
		identity = subject
	}
	if identity == "" {
		identity = email
	}
	grant.Email = identity

	if err := c.store.Set(grant.AccessToken, ttl, identity); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	c.logger.Info().Str("email", identity).Dur("ttl", ttl).Msg("logged in")
	return &grant, nil
}

// tokenLifetime prefers expires_in, then the token's own exp claim, then
// the default. The token's sub claim is returned for identity fallback.
// The signature is not checked; the backend remains the authority.
func tokenLifetime(grant domain.LoginResponse, now time.Time) (time.Duration, string) {
	var (
		fromClaims time.Duration
		hasExp     bool
		subject    string
	)
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(grant.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			fromClaims, hasExp = exp.Sub(now), true
		}
		if sub, err := claims.GetSubject(); err == nil {
			subject = sub
		}
	}

	switch {
	case grant.ExpiresIn > 0:
		return time.Duration(grant.ExpiresIn) * time.Second, subject
	case hasExp:
		return fromClaims, subject
	default:
		return defaultTokenTTL, subject
	}
}
