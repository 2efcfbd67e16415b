package db

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// defaultExpirySkew renews the credential a day before it actually expires
// so in-flight connections never race the cutoff.
const defaultExpirySkew = 24 * time.Hour

// FetchFunc obtains a fresh store credential and its time-to-live.
type FetchFunc func(ctx context.Context) (token string, ttl time.Duration, err error)

// CredentialCache holds a lazily refreshed {token, expiry} pair for the
// backing store. It is handed to the Postgres factory explicitly rather
// than living as package state, so the refresh policy is testable with an
// injected clock.
type CredentialCache struct {
	mu    sync.Mutex
	fetch FetchFunc
	now   func() time.Time
	skew  time.Duration

	token  string
	expiry time.Time
}

// NewCredentialCache creates a cache around the given fetch function.
func NewCredentialCache(fetch FetchFunc) *CredentialCache {
	return &CredentialCache{
		fetch: fetch,
		now:   time.Now,
		skew:  defaultExpirySkew,
	}
}

// Token returns the cached credential, refreshing it once the expiry
// (minus skew) has passed.
func (c *CredentialCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiry.Add(-c.skew)) {
		return c.token, nil
	}

	token, ttl, err := c.fetch(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch store credential: %w", err)
	}
	c.token = token
	c.expiry = c.now().Add(ttl)
	return c.token, nil
}

// HTTPFetch builds a FetchFunc that exchanges a long-lived service token
// for a short-lived store credential at the given endpoint. The endpoint
// responds with {"jwt": "...", "expires_in": seconds}.
func HTTPFetch(endpoint, serviceToken string) FetchFunc {
	client := &http.Client{Timeout: 10 * time.Second}
	return func(ctx context.Context) (string, time.Duration, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return "", 0, err
		}
		req.Header.Set("Authorization", "Bearer "+serviceToken)

		resp, err := client.Do(req)
		if err != nil {
			return "", 0, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return "", 0, fmt.Errorf("credential endpoint returned %d: %s", resp.StatusCode, body)
		}

		var payload struct {
			JWT       string `json:"jwt"`
			ExpiresIn int64  `json:"expires_in"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return "", 0, fmt.Errorf("decode credential response: %w", err)
		}
		if payload.JWT == "" {
			return "", 0, fmt.Errorf("credential endpoint returned empty token")
		}
		return payload.JWT, time.Duration(payload.ExpiresIn) * time.Second, nil
	}
}
