package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/grassroot-hq/grassroot-apiclient/internal/config"
	"github.com/grassroot-hq/grassroot-apiclient/internal/domain"
	"github.com/grassroot-hq/grassroot-apiclient/internal/logger"
	"github.com/grassroot-hq/grassroot-apiclient/internal/scenario"
	"github.com/grassroot-hq/grassroot-apiclient/pkg/grassroot"
	"github.com/grassroot-hq/grassroot-apiclient/pkg/httpclient"
	"github.com/grassroot-hq/grassroot-apiclient/pkg/publishers"
)

const userAgent = "grassroot-smoke/1"

// Smoke wires the API client, report sinks and the scenario for one run.
type Smoke struct {
	cfg      *config.Config
	client   *grassroot.Client
	registry *prometheus.Registry
	fanout   *publishers.Fanout
	log      logger.Logger
}

// NewClient builds an API client from config. metrics may be nil.
func NewClient(cfg *config.Config, log logger.Logger, metrics *grassroot.Metrics) (*grassroot.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	opts := []grassroot.Option{
		grassroot.WithTransport(httpclient.Options{
			Timeout:            cfg.RequestTimeout,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			CAFile:             cfg.CAFile,
			UserAgent:          userAgent,
		}),
		grassroot.WithBearerToken(cfg.APIToken),
		grassroot.WithMetrics(metrics),
	}
	if log != nil {
		opts = append(opts, grassroot.WithLogger(log))
	}
	client, err := grassroot.New(cfg.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}
	return client, nil
}

// NewSmoke builds the runtime. Sinks are only loaded when a sinks file is
// configured.
func NewSmoke(ctx context.Context, cfg *config.Config, log logger.Logger) (*Smoke, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	registry := prometheus.NewRegistry()
	metrics, err := grassroot.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	client, err := NewClient(cfg, log, metrics)
	if err != nil {
		return nil, err
	}

	fanout, err := buildSinks(ctx, cfg.ReportsFile, log)
	if err != nil {
		return nil, err
	}

	if cfg.InsecureSkipVerify {
		log.WarnObj("tls certificate verification disabled", "tls", map[string]any{
			"base_url": client.BaseURL(),
		})
	}

	return &Smoke{
		cfg:      cfg,
		client:   client,
		registry: registry,
		fanout:   fanout,
		log:      log,
	}, nil
}

func buildSinks(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(path) == "" {
		return publishers.NewFanout(nil), nil
	}
	sinks, err := publishers.LoadSinks(path)
	if err != nil {
		return nil, fmt.Errorf("load report sinks: %w", err)
	}
	enabled := sinks.Enabled()
	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build report sinks: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, s := range enabled {
		summaries = append(summaries, map[string]string{"id": s.ID, "type": s.Type})
	}
	log.InfoObj("report sinks loaded", "sinks_meta", map[string]any{
		"count": len(summaries),
		"sinks": summaries,
	})
	return publishers.NewFanout(pubs), nil
}

// Run executes the scenario once. The report is returned even when a step
// fails.
func (s *Smoke) Run(ctx context.Context) (*domain.Report, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("smoke runtime is not initialized")
	}

	runID := uuid.NewString()
	fx := scenario.DefaultFixture()
	fx.RootPhone = s.cfg.RootPhone

	s.log.InfoObj("smoke run starting", "smoke_run", map[string]any{
		"run_id":       runID,
		"base_url":     s.client.BaseURL(),
		"sinks":        s.fanout.Size(),
		"settle_delay": s.cfg.SettleDelay.String(),
	})

	svc := scenario.NewService(s.client, s.log, scenario.Options{
		RunID:       runID,
		Fixture:     &fx,
		SettleDelay: s.cfg.SettleDelay,
		Observer:    &reporter{runID: runID, fanout: s.fanout, log: s.log},
	})
	report, err := svc.Run(ctx)

	s.log.InfoObj("smoke run requests", "smoke_requests", s.RequestTotals())
	return report, err
}

// Client exposes the API client for one-off calls.
func (s *Smoke) Client() *grassroot.Client {
	if s == nil {
		return nil
	}
	return s.client
}

// RequestTotals sums the request counter keyed by "endpoint code".
func (s *Smoke) RequestTotals() map[string]float64 {
	out := map[string]float64{}
	if s == nil || s.registry == nil {
		return out
	}
	families, err := s.registry.Gather()
	if err != nil {
		s.log.WarnObj("metrics gather failed", "error", err.Error())
		return out
	}
	for _, mf := range families {
		if mf.GetName() != "grassroot_client_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			out[labels["endpoint"]+" "+labels["code"]] += m.GetCounter().GetValue()
		}
	}
	return out
}

// Close releases sink connections.
func (s *Smoke) Close() error {
	if s == nil {
		return nil
	}
	return s.fanout.Close()
}

// reporter forwards finished steps to the report sinks. Sink errors are
// logged and never fail the run.
type reporter struct {
	runID  string
	fanout *publishers.Fanout
	log    logger.Logger
}

func (r *reporter) ObserveStep(ctx context.Context, step domain.StepResult) {
	if r.fanout.Size() == 0 {
		return
	}
	evt := publishers.NewEvent(r.runID, scenario.Name, step)
	delivered, err := r.fanout.Publish(ctx, evt)
	if err != nil {
		r.log.WarnObj("report sink publish failed", "sink_error", map[string]any{
			"run_id":    r.runID,
			"step":      step.Name,
			"delivered": delivered,
			"error":     err.Error(),
		})
	}
}
