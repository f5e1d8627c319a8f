package grassroot

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// Entity is a server object exactly as decoded. Numbers are json.Number.
type Entity map[string]any

// ID returns the numeric id field.
func (e Entity) ID() (int64, error) {
	raw, ok := e["id"]
	if !ok || raw == nil {
		return 0, ErrMissingID
	}
	switch v := raw.(type) {
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMissingID, v.String())
		}
		return id, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: %v", ErrMissingID, v)
		}
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMissingID, v)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrMissingID, raw)
	}
}

// RawResponse is returned by the print-only endpoints.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Text returns the body as a string.
func (r *RawResponse) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}
