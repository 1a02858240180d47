// Package client talks to the entity endpoints over HTTP. One Resource is
// bound to one entity route; it does not retry, deduplicate or time out
// requests unless the supplied http.Client does.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

type options struct {
	url        string
	httpClient *http.Client
}

// Option configures a Resource.
type Option func(*options)

// WithURL replaces the base+entity URL, e.g. for the legacy
// /server.php?module= endpoint.
func WithURL(rawURL string) Option {
	return func(o *options) { o.url = rawURL }
}

// WithHTTPClient sets the client used for every call.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// LegacyURL returns the dispatcher URL for entity on the legacy front
// controller at base.
func LegacyURL(base, entity string) string {
	return strings.TrimRight(base, "/") + "/server.php?module=" + url.QueryEscape(entity)
}

// Resource is a typed client for one entity route.
type Resource[T any] struct {
	url  string
	http *http.Client
}

// New builds a Resource for baseURL/entity.
func New[T any](baseURL, entity string, opts ...Option) *Resource[T] {
	o := options{
		url:        strings.TrimRight(baseURL, "/") + "/" + strings.Trim(entity, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Resource[T]{url: o.url, http: o.httpClient}
}

// URL reports the endpoint the resource calls.
func (r *Resource[T]) URL() string { return r.url }

// FetchAll lists every record.
func (r *Resource[T]) FetchAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.do(ctx, http.MethodGet, r.url, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Get fetches a single record by sending {"id"} in the GET body, which both
// the legacy endpoint and the REST routes read. A missing record is (nil, nil).
func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var out *T
	if err := r.do(ctx, http.MethodGet, r.url, map[string]int64{"id": id}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts payload and returns the server message.
func (r *Resource[T]) Create(ctx context.Context, payload interface{}) (string, error) {
	return r.write(ctx, http.MethodPost, payload)
}

// Update puts payload, which must carry the id, and returns the server message.
func (r *Resource[T]) Update(ctx context.Context, payload interface{}) (string, error) {
	return r.write(ctx, http.MethodPut, payload)
}

// Remove deletes the record with id.
func (r *Resource[T]) Remove(ctx context.Context, id int64) (string, error) {
	return r.write(ctx, http.MethodDelete, map[string]int64{"id": id})
}

type messageBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (r *Resource[T]) write(ctx context.Context, method string, payload interface{}) (string, error) {
	var out messageBody
	if err := r.do(ctx, method, r.url, payload, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (r *Resource[T]) do(ctx context.Context, method, target string, payload, dest interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure messageBody
		_ = json.Unmarshal(raw, &failure)
		return &StatusError{StatusCode: resp.StatusCode, Message: failure.Error}
	}
	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
