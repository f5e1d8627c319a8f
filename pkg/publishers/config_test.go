package publishers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSinksEnabledFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sinks.yaml")
	raw := `
sinks:
  - id: hook1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: hook2
    type: HTTP
    http:
      url: " https://example.com/2 "
  - id: queue
    type: sqs
    sqs:
      region: eu-west-1
      endpoint: http://localhost:4566
      queue_url: https://sqs.eu-west-1.amazonaws.com/1/smoke
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	sinks, err := LoadSinks(path)
	if err != nil {
		t.Fatalf("LoadSinks: %v", err)
	}
	if len(sinks.All()) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(sinks.All()))
	}
	enabled := sinks.Enabled()
	if len(enabled) != 2 || enabled[0].ID != "hook2" || enabled[1].ID != "queue" {
		t.Fatalf("unexpected enabled sinks %#v", enabled)
	}
	hook := enabled[0]
	if hook.Type != TypeHTTP || hook.HTTP.URL != "https://example.com/2" {
		t.Fatalf("entry not normalized: %#v", hook.HTTP)
	}
	if hook.HTTP.Method != "POST" || hook.HTTP.TimeoutSeconds != 5 {
		t.Fatalf("http defaults not applied: %#v", hook.HTTP)
	}
	if q := enabled[1].SQS; q.Region != "eu-west-1" || q.Endpoint != "http://localhost:4566" {
		t.Fatalf("inline aws settings not decoded: %#v", q)
	}
}

func TestParseSinksJSON(t *testing.T) {
	raw := `{"sinks":[{"id":"t","type":"pubsub","pubsub":{"project_id":"p","topic":"steps"}}]}`
	sinks, err := ParseSinks([]byte(raw), ".json")
	if err != nil {
		t.Fatalf("ParseSinks: %v", err)
	}
	if got := sinks.Enabled(); len(got) != 1 || got[0].PubSub.Topic != "steps" {
		t.Fatalf("unexpected sinks %#v", got)
	}
}

func TestParseSinksRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"missing id":       "sinks:\n  - type: http\n    http:\n      url: x\n",
		"missing http":     "sinks:\n  - id: a\n    type: http\n",
		"sqs no region":    "sinks:\n  - id: a\n    type: sqs\n    sqs:\n      queue_url: q\n",
		"half credentials": "sinks:\n  - id: a\n    type: sns\n    sns:\n      region: r\n      topic_arn: t\n      access_key_id: k\n",
		"pubsub no topic":  "sinks:\n  - id: a\n    type: pubsub\n    pubsub:\n      project_id: p\n",
		"duplicate id":     "sinks:\n  - id: a\n    type: http\n    http:\n      url: x\n  - id: a\n    type: http\n    http:\n      url: y\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseSinks([]byte(raw), ".yaml"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseSinksRejectsUnknownFormat(t *testing.T) {
	_, err := ParseSinks([]byte("sinks: []"), ".toml")
	if err == nil || !strings.Contains(err.Error(), "not recognized") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestLoadSinksEmptyPath(t *testing.T) {
	if _, err := LoadSinks(" "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
