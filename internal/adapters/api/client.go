package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sony/gobreaker"

	"github.com/messmate/mess-client/internal/config"
	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/ports"
)

// Client wraps all outbound calls to the backend REST API. It injects the
// default bearer credential, reacts to any 401 by clearing the stored
// tokens and firing the OnUnauthorized hook, and shields the backend with
// a circuit breaker. The session service is the only component that sets
// or clears the bearer.
type Client struct {
	base string
	http *http.Client
	cb   *gobreaker.CircuitBreaker

	tokens ports.TokenStore

	mu             sync.RWMutex
	bearer         string
	onUnauthorized func()
}

var _ ports.AccountGateway = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration, tokens ports.TokenStore) *Client {
	return &Client{
		base:   baseURL,
		http:   &http.Client{Timeout: timeout},
		cb:     config.NewCircuitBreaker("MessAPI"),
		tokens: tokens,
	}
}

// SetOnUnauthorized registers the hook fired whenever any response comes
// back 401, independent of which caller issued the request.
func (c *Client) SetOnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// SetBearer installs the default outbound credential.
func (c *Client) SetBearer(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bearer = token
}

// ClearBearer removes the default outbound credential. Requests already
// in flight keep the header they captured.
func (c *Client) ClearBearer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bearer = ""
}

// Bearer returns the current default credential, empty when logged out.
func (c *Client) Bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearer
}

// Ping checks backend reachability for health probes. Any HTTP response
// counts as up; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// TokenExpiry reports the exp claim of a stored access token without
// verifying its signature. Verification is the backend's job; the client
// only needs to know whether a request is worth issuing at all.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, payload)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer := c.Bearer(); bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	endpoint := endpointLabel(path)
	start := time.Now()
	result, err := c.cb.Execute(func() (any, error) {
		return c.http.Do(req)
	})
	if err != nil {
		requestsTotal.WithLabelValues(method, endpoint, "transport_error").Inc()
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	resp := result.(*http.Response)
	defer resp.Body.Close()

	requestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(ctx)
	}
	if resp.StatusCode >= 400 {
		return &domain.RequestError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

// handleUnauthorized is the cross-cutting 401 interceptor: clear the
// stored credential, detach the bearer, notify whoever registered the
// hook. Everything here is idempotent with the session service's own
// Logout, so the two paths can overlap without conflict.
func (c *Client) handleUnauthorized(ctx context.Context) {
	unauthorizedTotal.Inc()
	if c.tokens != nil {
		if err := c.tokens.Clear(ctx); err != nil {
			// Nothing to do beyond logging; the bearer detach below
			// already makes subsequent requests unauthenticated.
			log.Printf("api: failed to clear tokens after 401: %v", err)
		}
	}
	c.ClearBearer()

	c.mu.RLock()
	hook := c.onUnauthorized
	c.mu.RUnlock()
	if hook != nil {
		hook()
	}
}

func readDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}
