package httpclient

import (
	"context"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, opts Options) *RestyClient {
	t.Helper()
	client, err := NewRestyClient(opts)
	if err != nil {
		t.Fatalf("NewRestyClient: %v", err)
	}
	return client
}

func TestRestyClientSendsJSONBody(t *testing.T) {
	var gotBody map[string]any
	var gotType, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("X-Reply", "ok")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7}`))
	}))
	defer srv.Close()

	client := newTestClient(t, Options{Timeout: 2 * time.Second})
	resp, err := client.Do(context.Background(), Request{
		Method:  http.MethodPost,
		URL:     srv.URL + "/api/event/create/",
		Headers: map[string]string{"Authorization": "Bearer t0k"},
		Body:    map[string]string{"name": "bulls game"},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode())
	}
	if string(resp.Body()) != `{"id":7}` {
		t.Fatalf("body = %s", resp.Body())
	}
	if resp.Header().Get("X-Reply") != "ok" {
		t.Fatalf("missing response header")
	}
	if gotType != "application/json" {
		t.Fatalf("content type = %q", gotType)
	}
	if gotAuth != "Bearer t0k" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if gotBody["name"] != "bulls game" {
		t.Fatalf("unexpected body %#v", gotBody)
	}
}

func TestRestyClientNoBodyOmitsContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			t.Errorf("unexpected content type %q", ct)
		}
		if r.ContentLength > 0 {
			t.Errorf("unexpected body of %d bytes", r.ContentLength)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(t, Options{Timeout: time.Second})
	if _, err := client.Do(context.Background(), Request{Method: "post", URL: srv.URL + "/api/event/cancel/1"}); err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestRestyClientVerifiesTLSByDefault(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	strict := newTestClient(t, Options{Timeout: 2 * time.Second})
	if _, err := strict.Do(context.Background(), Request{URL: srv.URL}); err == nil {
		t.Fatalf("expected certificate error against self-signed server")
	}

	insecure := newTestClient(t, Options{Timeout: 2 * time.Second, InsecureSkipVerify: true})
	resp, err := insecure.Do(context.Background(), Request{URL: srv.URL})
	if err != nil {
		t.Fatalf("insecure Do: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode())
	}
}

func TestRestyClientTrustsCAFile(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	caFile := filepath.Join(t.TempDir(), "ca.pem")
	block := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	if err := os.WriteFile(caFile, block, 0o600); err != nil {
		t.Fatalf("write ca: %v", err)
	}

	client := newTestClient(t, Options{Timeout: 2 * time.Second, CAFile: caFile})
	resp, err := client.Do(context.Background(), Request{URL: srv.URL})
	if err != nil {
		t.Fatalf("Do with ca file: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode())
	}
}

func TestRestyClientRejectsBadCAFile(t *testing.T) {
	dir := t.TempDir()
	notPEM := filepath.Join(dir, "ca.txt")
	if err := os.WriteFile(notPEM, []byte("not a certificate"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cases := map[string]struct {
		path string
		want string
	}{
		"missing": {path: filepath.Join(dir, "nope.pem"), want: "read ca file"},
		"not pem": {path: notPEM, want: "no PEM certificate"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			client, err := NewRestyClient(Options{CAFile: tc.path})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q error, got %v", tc.want, err)
			}
			if client != nil {
				t.Fatalf("client should be nil on error")
			}
		})
	}
}
