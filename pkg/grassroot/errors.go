package grassroot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrArgCount is returned when an endpoint is called with the wrong number of path arguments.
	ErrArgCount = errors.New("wrong number of path arguments")
	// ErrInvalidSegment is returned for path segments the server cannot route.
	ErrInvalidSegment = errors.New("invalid path segment")
	// ErrUnknownEndpoint is returned by Lookup for names outside the catalog.
	ErrUnknownEndpoint = errors.New("unknown endpoint")
	// ErrMissingID is returned when an entity carries no usable id field.
	ErrMissingID = errors.New("entity has no id")
)

const maxSummaryLen = 512

// HTTPError reports a non-2xx response.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	// Summary is a short human readable reason extracted from Body.
	Summary string
}

func (e *HTTPError) Error() string {
	if e.Summary == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Summary)
}

// DecodeError reports a 2xx response whose body is not the JSON the caller expected.
type DecodeError struct {
	Path string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError wraps network and TLS failures.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

func newHTTPError(method, path string, status int, contentType string, body []byte) *HTTPError {
	return &HTTPError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Body:       body,
		Summary:    summarizeBody(contentType, body),
	}
}

// summarizeBody picks the most useful line out of an error body. Spring error
// pages come back as HTML, API errors as JSON.
func summarizeBody(contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "html") || bytes.HasPrefix(trimmed, []byte("<")):
		if s := htmlSummary(trimmed); s != "" {
			return clip(s)
		}
	case strings.Contains(ct, "json") || trimmed[0] == '{':
		if s := jsonSummary(trimmed); s != "" {
			return clip(s)
		}
	}
	return clip(string(trimmed))
}

func htmlSummary(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	if title := collapseSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if h1 := collapseSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return collapseSpace(doc.Find("body").Text())
}

func jsonSummary(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error", "description"} {
		if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// clip cuts s to at most maxSummaryLen bytes on a rune boundary.
func clip(s string) string {
	if len(s) <= maxSummaryLen {
		return s
	}
	cut := maxSummaryLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
