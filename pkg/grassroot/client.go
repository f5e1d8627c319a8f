// Package grassroot is a typed client for the Grassroot REST API.
package grassroot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/grassroot-hq/grassroot-apiclient/pkg/httpclient"
)

const defaultTimeout = 15 * time.Second

// Client issues calls against a single Grassroot base URL.
type Client struct {
	baseURL string
	http    httpclient.Client
	token   string
	log     Logger
	metrics *Metrics
}

// Option configures a Client in New.
type Option func(*Client) error

// WithHTTPClient replaces the default resty transport.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithTransport builds the default resty transport from opts.
func WithTransport(opts httpclient.Options) Option {
	return func(c *Client) error {
		rc, err := httpclient.NewRestyClient(opts)
		if err != nil {
			return fmt.Errorf("build transport: %w", err)
		}
		c.http = rc
		return nil
	}
}

// WithBearerToken sets the token sent by JSON-body endpoints.
func WithBearerToken(token string) Option {
	return func(c *Client) error {
		c.token = strings.TrimSpace(token)
		return nil
	}
}

// WithLogger attaches a request logger.
func WithLogger(log Logger) Option {
	return func(c *Client) error {
		if log != nil {
			c.log = log
		}
		return nil
	}
}

// WithMetrics attaches prometheus collectors.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) error {
		c.metrics = m
		return nil
	}
}

// New validates baseURL and builds a Client.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		log:     noopLogger{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.http == nil {
		rc, err := httpclient.NewRestyClient(httpclient.Options{Timeout: defaultTimeout})
		if err != nil {
			return nil, err
		}
		c.http = rc
	}
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("base url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base url %q must use http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base url %q has no host", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("base url %q must not carry a query or fragment", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// Call invokes a catalog endpoint by name. Raw endpoints yield *RawResponse,
// all others the decoded JSON value.
func (c *Client) Call(ctx context.Context, name string, args ...any) (any, error) {
	ep, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if ep.Raw {
		return c.raw(ctx, ep, nil, args...)
	}
	return c.invoke(ctx, ep, args...)
}

// CallWithBody invokes a JSON-body endpoint by name.
func (c *Client) CallWithBody(ctx context.Context, name string, body any, args ...any) (any, error) {
	ep, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if !ep.JSONBody {
		return nil, fmt.Errorf("endpoint %s does not take a body", ep.Name)
	}
	return c.raw(ctx, ep, body, args...)
}

type exchange struct {
	path   string
	status int
	header http.Header
	body   []byte
}

func (c *Client) send(ctx context.Context, ep Endpoint, body any, args []any) (*exchange, error) {
	path, err := ep.Path(args...)
	if err != nil {
		return nil, err
	}
	wirePath, err := ep.EscapedPath(args...)
	if err != nil {
		return nil, err
	}

	req := httpclient.Request{Method: ep.Method, URL: c.baseURL + wirePath}
	if ep.JSONBody {
		req.Headers = map[string]string{"Accept": "application/json"}
		if c.token != "" {
			req.Headers["Authorization"] = bearer(c.token)
		}
		req.Body = body
	}

	start := time.Now()
	resp, err := c.http.Do(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.observe(ep.Name, 0, elapsed)
		c.log.WarnObj("grassroot request failed", "request", map[string]any{
			"endpoint": ep.Name,
			"method":   ep.Method,
			"path":     path,
			"error":    err.Error(),
		})
		return nil, &TransportError{Method: ep.Method, Path: path, Err: err}
	}

	c.metrics.observe(ep.Name, resp.StatusCode(), elapsed)
	c.log.DebugObj("grassroot request", "request", map[string]any{
		"endpoint":   ep.Name,
		"method":     ep.Method,
		"path":       path,
		"status":     resp.StatusCode(),
		"elapsed_ms": elapsed.Milliseconds(),
	})
	return &exchange{path: path, status: resp.StatusCode(), header: resp.Header(), body: resp.Body()}, nil
}

func bearer(token string) string {
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return token
	}
	return "Bearer " + token
}

func (x *exchange) ok() bool { return x.status >= 200 && x.status < 300 }

func (c *Client) invoke(ctx context.Context, ep Endpoint, args ...any) (any, error) {
	x, err := c.send(ctx, ep, nil, args)
	if err != nil {
		return nil, err
	}
	if !x.ok() {
		return nil, newHTTPError(ep.Method, x.path, x.status, x.header.Get("Content-Type"), x.body)
	}
	val, err := decodeJSON(x.body)
	if err != nil {
		return nil, &DecodeError{Path: x.path, Body: x.body, Err: err}
	}
	return val, nil
}

func (c *Client) raw(ctx context.Context, ep Endpoint, body any, args ...any) (*RawResponse, error) {
	x, err := c.send(ctx, ep, body, args)
	if err != nil {
		return nil, err
	}
	out := &RawResponse{StatusCode: x.status, Body: x.body, Header: x.header.Clone()}
	if !x.ok() {
		return out, newHTTPError(ep.Method, x.path, x.status, x.header.Get("Content-Type"), x.body)
	}
	return out, nil
}

func (c *Client) object(ctx context.Context, ep Endpoint, args ...any) (Entity, error) {
	val, err := c.invoke(ctx, ep, args...)
	if err != nil {
		return nil, err
	}
	switch v := val.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return Entity(v), nil
	default:
		path, _ := ep.Path(args...)
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("expected JSON object, got %s", jsonKind(val))}
	}
}

func (c *Client) list(ctx context.Context, ep Endpoint, args ...any) ([]Entity, error) {
	val, err := c.invoke(ctx, ep, args...)
	if err != nil {
		return nil, err
	}
	path, _ := ep.Path(args...)
	switch v := val.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]Entity, 0, len(v))
		for i, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, &DecodeError{Path: path, Err: fmt.Errorf("element %d: expected JSON object, got %s", i, jsonKind(item))}
			}
			out = append(out, Entity(obj))
		}
		return out, nil
	default:
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("expected JSON array, got %s", jsonKind(val))}
	}
}

// decodeJSON decodes a single JSON value keeping numbers as json.Number.
// An empty body yields nil.
func decodeJSON(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var val any
	if err := dec.Decode(&val); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return val, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
