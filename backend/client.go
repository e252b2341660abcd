// Package backend is the HTTP client for the Property Sync REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/shuzaifak/Property-Sync-Owner/internal/config"
	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/metrics"
)

// maxErrorBody bounds how much of an error response is read for its message
const maxErrorBody = 64 << 10

// Client calls the backend on behalf of one browser session
type Client struct {
	baseURL string
	timeout time.Duration
	base    http.RoundTripper
	http    *http.Client
}

// New builds a client without credentials. Use WithTokenSource per session.
func New(cfg config.BackendConfig) *Client {
	c := &Client{
		baseURL: cfg.GetBackendURL(),
		timeout: cfg.GetBackendTimeout(),
		base:    http.DefaultTransport,
	}
	c.http = &http.Client{Timeout: c.timeout, Transport: c.base}
	return c
}

// WithTransport swaps the underlying round tripper
func (c *Client) WithTransport(rt http.RoundTripper) *Client {
	cp := *c
	cp.base = rt
	cp.http = &http.Client{Timeout: c.timeout, Transport: rt}
	return &cp
}

// WithTokenSource returns a copy that sends the token as a bearer credential
// whenever ts holds a valid one
func (c *Client) WithTokenSource(ts oauth2.TokenSource) *Client {
	cp := *c
	cp.http = &http.Client{
		Timeout:   c.timeout,
		Transport: &bearerTransport{source: ts, base: c.base},
	}
	return &cp
}

// bearerTransport attaches the session token through oauth2.Transport and
// passes requests through untouched while signed out
type bearerTransport struct {
	source oauth2.TokenSource
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, err := t.source.Token()
	if err != nil || !tok.Valid() {
		return t.base.RoundTrip(req)
	}
	return (&oauth2.Transport{Source: oauth2.StaticTokenSource(tok), Base: t.base}).RoundTrip(req)
}

type request struct {
	op          string
	method      string
	path        string
	body        io.Reader
	contentType string
	fallback    string
}

func jsonRequest(op, method, path string, v any, fallback string) (request, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return request{}, apperrors.Wrapf(err, "[%s] encode", op)
	}
	return request{
		op:          op,
		method:      method,
		path:        path,
		body:        bytes.NewReader(raw),
		contentType: "application/json",
		fallback:    fallback,
	}, nil
}

// do sends r and returns the raw 2xx body
func (c *Client) do(ctx context.Context, r request) (body []byte, err error) {
	start := time.Now()
	outcome := "ok"
	defer func() {
		metrics.BackendRequestsTotal.WithLabelValues(r.op, outcome).Inc()
		metrics.BackendRequestDuration.WithLabelValues(r.op).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		outcome = "transport_error"
		return nil, &Error{Op: r.op, Message: r.fallback, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		outcome = "transport_error"
		log.Err(err).Str("op", r.op).Msg("Backend unreachable")
		return nil, &Error{Op: r.op, Message: r.fallback, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "http_error"
		return nil, &Error{
			Op:      r.op,
			Status:  resp.StatusCode,
			Message: serverMessage(resp.Body, r.fallback),
		}
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		outcome = "transport_error"
		return nil, &Error{Op: r.op, Status: resp.StatusCode, Message: r.fallback, Err: err}
	}
	return body, nil
}

// decode unmarshals a 2xx body into v
func decode(op string, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(op, "bad_shape").Inc()
		return fmt.Errorf("[%s] %w: %v", op, apperrors.ErrDataShape, err)
	}
	return nil
}

// serverMessage extracts {"message": "..."} from an error body
func serverMessage(r io.Reader, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return fallback
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fallback
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	return fallback
}

// IsStatus reports whether err is a backend response with the given status
func IsStatus(err error, status int) bool {
	var be *Error
	return errors.As(err, &be) && be.Status == status
}
