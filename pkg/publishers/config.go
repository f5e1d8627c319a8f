package publishers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sink types.
const (
	TypeHTTP   = "http"
	TypeSQS    = "sqs"
	TypeSNS    = "sns"
	TypePubSub = "pubsub"

	defaultHTTPMethod  = "POST"
	defaultHTTPTimeout = 5
)

type sinksFile struct {
	Sinks []SinkConfig `json:"sinks" yaml:"sinks"`
}

// SinkConfig is one entry of the sinks file.
type SinkConfig struct {
	ID      string        `json:"id" yaml:"id"`
	Type    string        `json:"type" yaml:"type"`
	Enabled *bool         `json:"enabled" yaml:"enabled"`
	HTTP    *HTTPConfig   `json:"http" yaml:"http"`
	SQS     *SQSConfig    `json:"sqs" yaml:"sqs"`
	SNS     *SNSConfig    `json:"sns" yaml:"sns"`
	PubSub  *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

// HTTPConfig posts each event as JSON to a webhook.
type HTTPConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// AWSConfig carries the settings shared by the SQS and SNS sinks. Static keys
// are optional; the default credential chain is used without them.
type AWSConfig struct {
	Region          string `json:"region" yaml:"region"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

// SQSConfig targets one queue.
type SQSConfig struct {
	AWSConfig `yaml:",inline"`
	QueueURL  string `json:"queue_url" yaml:"queue_url"`
}

// SNSConfig targets one topic.
type SNSConfig struct {
	AWSConfig `yaml:",inline"`
	TopicARN  string `json:"topic_arn" yaml:"topic_arn"`
}

// PubSubConfig targets one Google Cloud Pub/Sub topic.
type PubSubConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
}

// IsEnabled defaults to true when the entry leaves it unset.
func (c SinkConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Sinks is the validated content of a sinks file.
type Sinks struct {
	entries []SinkConfig
}

// LoadSinks reads a YAML or JSON sinks file.
func LoadSinks(path string) (*Sinks, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sinks file path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sinks file: %w", err)
	}
	return ParseSinks(raw, filepath.Ext(path))
}

// ParseSinks decodes and validates sinks file content. ext picks the format;
// an empty ext tries YAML, which also accepts JSON.
func ParseSinks(data []byte, ext string) (*Sinks, error) {
	var file sinksFile
	switch strings.ToLower(strings.TrimSpace(ext)) {
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("decode json sinks: %w", err)
		}
	case "", ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("decode yaml sinks: %w", err)
		}
	default:
		return nil, fmt.Errorf("sinks file format %q not recognized (expected YAML or JSON)", ext)
	}

	seen := make(map[string]struct{}, len(file.Sinks))
	out := &Sinks{entries: make([]SinkConfig, 0, len(file.Sinks))}
	for i, entry := range file.Sinks {
		entry = normalize(entry)
		if err := validate(entry); err != nil {
			return nil, fmt.Errorf("sinks[%d]: %w", i, err)
		}
		if _, dup := seen[entry.ID]; dup {
			return nil, fmt.Errorf("duplicate sink id %q", entry.ID)
		}
		seen[entry.ID] = struct{}{}
		out.entries = append(out.entries, entry)
	}
	return out, nil
}

// All returns every entry in file order.
func (s *Sinks) All() []SinkConfig {
	if s == nil {
		return nil
	}
	return append([]SinkConfig(nil), s.entries...)
}

// Enabled returns the entries that should be built.
func (s *Sinks) Enabled() []SinkConfig {
	var out []SinkConfig
	for _, c := range s.All() {
		if c.IsEnabled() {
			out = append(out, c)
		}
	}
	return out
}

func normalize(c SinkConfig) SinkConfig {
	c.ID = strings.TrimSpace(c.ID)
	c.Type = strings.ToLower(strings.TrimSpace(c.Type))

	if c.HTTP != nil {
		h := *c.HTTP
		h.URL = strings.TrimSpace(h.URL)
		h.Method = strings.ToUpper(strings.TrimSpace(h.Method))
		if h.Method == "" {
			h.Method = defaultHTTPMethod
		}
		if h.TimeoutSeconds <= 0 {
			h.TimeoutSeconds = defaultHTTPTimeout
		}
		headers := make(map[string]string, len(h.Headers))
		for k, v := range h.Headers {
			if k, v = strings.TrimSpace(k), strings.TrimSpace(v); k != "" && v != "" {
				headers[k] = v
			}
		}
		h.Headers = headers
		c.HTTP = &h
	}
	if c.SQS != nil {
		q := *c.SQS
		q.AWSConfig = trimAWS(q.AWSConfig)
		q.QueueURL = strings.TrimSpace(q.QueueURL)
		c.SQS = &q
	}
	if c.SNS != nil {
		n := *c.SNS
		n.AWSConfig = trimAWS(n.AWSConfig)
		n.TopicARN = strings.TrimSpace(n.TopicARN)
		c.SNS = &n
	}
	if c.PubSub != nil {
		p := *c.PubSub
		p.ProjectID = strings.TrimSpace(p.ProjectID)
		p.Topic = strings.TrimSpace(p.Topic)
		p.CredentialsFile = strings.TrimSpace(p.CredentialsFile)
		c.PubSub = &p
	}
	return c
}

func trimAWS(a AWSConfig) AWSConfig {
	a.Region = strings.TrimSpace(a.Region)
	a.Endpoint = strings.TrimSpace(a.Endpoint)
	a.AccessKeyID = strings.TrimSpace(a.AccessKeyID)
	a.SecretAccessKey = strings.TrimSpace(a.SecretAccessKey)
	return a
}

func validate(c SinkConfig) error {
	if c.ID == "" {
		return errors.New("id is required")
	}
	switch c.Type {
	case "":
		return fmt.Errorf("type is required for sink %q", c.ID)
	case TypeHTTP:
		if c.HTTP == nil || c.HTTP.URL == "" {
			return fmt.Errorf("http.url is required for sink %q", c.ID)
		}
	case TypeSQS:
		if c.SQS == nil || c.SQS.QueueURL == "" {
			return fmt.Errorf("sqs.queue_url is required for sink %q", c.ID)
		}
		return validateAWS(c.ID, "sqs", c.SQS.AWSConfig)
	case TypeSNS:
		if c.SNS == nil || c.SNS.TopicARN == "" {
			return fmt.Errorf("sns.topic_arn is required for sink %q", c.ID)
		}
		return validateAWS(c.ID, "sns", c.SNS.AWSConfig)
	case TypePubSub:
		if c.PubSub == nil || c.PubSub.ProjectID == "" || c.PubSub.Topic == "" {
			return fmt.Errorf("pubsub.project_id and pubsub.topic are required for sink %q", c.ID)
		}
	}
	return nil
}

func validateAWS(id, prefix string, a AWSConfig) error {
	if a.Region == "" {
		return fmt.Errorf("%s.region is required for sink %q", prefix, id)
	}
	if (a.AccessKeyID == "") != (a.SecretAccessKey == "") {
		return fmt.Errorf("%s.access_key_id and %s.secret_access_key must be set together for sink %q", prefix, prefix, id)
	}
	return nil
}
