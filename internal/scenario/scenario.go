// Package scenario runs the scripted smoke walk-through against a live
// Grassroot server: a group hierarchy, an event over it, RSVPs and changes.
package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/grassroot-hq/grassroot-apiclient/internal/domain"
	"github.com/grassroot-hq/grassroot-apiclient/internal/logger"
	"github.com/grassroot-hq/grassroot-apiclient/pkg/grassroot"
)

// Name identifies the walk-through in reports.
const Name = "hierarchy-rsvp"

// Options tune a Service. The zero value runs DefaultFixture without waits.
type Options struct {
	RunID       string
	Fixture     *Fixture
	SettleDelay time.Duration
	Observer    StepObserver
}

// Service drives the smoke walk-through step by step.
type Service struct {
	api      API
	log      logger.Logger
	fixture  Fixture
	settle   time.Duration
	observer StepObserver
	runID    string
}

// NewService wires a scenario runner around the API client.
func NewService(api API, log logger.Logger, opts Options) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	fx := DefaultFixture()
	if opts.Fixture != nil {
		fx = *opts.Fixture
	}
	return &Service{
		api:      api,
		log:      log,
		fixture:  fx,
		settle:   opts.SettleDelay,
		observer: opts.Observer,
		runID:    opts.RunID,
	}
}

// Run executes every step in order and stops at the first failure. The
// report is returned in both cases and holds the steps that ran.
func (s *Service) Run(ctx context.Context) (*domain.Report, error) {
	if s == nil || s.api == nil {
		return nil, fmt.Errorf("scenario service is not initialized")
	}
	if err := s.fixture.validate(); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}

	r := &run{svc: s, report: &domain.Report{
		RunID:     s.runID,
		Scenario:  Name,
		StartedAt: time.Now().UTC(),
	}}
	err := r.walk(ctx)
	r.report.FinishedAt = time.Now().UTC()

	if err != nil {
		s.log.ErrorObj("scenario failed", "scenario_error", map[string]any{
			"run_id": s.runID,
			"steps":  len(r.report.Steps),
			"error":  err.Error(),
		})
		return r.report, err
	}
	s.log.InfoObj("scenario completed", "scenario_result", map[string]any{
		"run_id": s.runID,
		"steps":  len(r.report.Steps),
	})
	return r.report, nil
}

type run struct {
	svc    *Service
	report *domain.Report
	last   string
}

func (r *run) walk(ctx context.Context) error {
	api := r.svc.api
	fx := r.svc.fixture

	organiser, err := r.addUser(ctx, "add organiser", fx.RootPhone)
	if err != nil {
		return err
	}

	level1, err := r.entity(ctx, "add level 1 group", grassroot.GroupAdd, func(ctx context.Context) (grassroot.Entity, error) {
		return api.AddGroup(ctx, organiser, fx.Level1Phones...)
	})
	if err != nil {
		return err
	}
	level2, err := r.entity(ctx, "add level 2 subgroup", grassroot.GroupAddSubgroup, func(ctx context.Context) (grassroot.Entity, error) {
		return api.AddSubGroup(ctx, organiser, level1, fx.Level2Name)
	})
	if err != nil {
		return err
	}
	level3, err := r.entity(ctx, "add level 3 subgroup", grassroot.GroupAddSubgroup, func(ctx context.Context) (grassroot.Entity, error) {
		return api.AddSubGroup(ctx, organiser, level2, fx.Level3Name)
	})
	if err != nil {
		return err
	}

	members := []struct {
		label string
		phone string
		group int64
	}{
		{"level 2 member 1", fx.Level2Phones[0], level2},
		{"level 2 member 2", fx.Level2Phones[1], level2},
		{"level 3 member 1", fx.Level3Phones[0], level3},
		{"level 3 member 2", fx.Level3Phones[1], level3},
	}
	ids := make([]int64, len(members))
	for i, m := range members {
		if ids[i], err = r.addUser(ctx, "add "+m.label, m.phone); err != nil {
			return err
		}
	}
	for i, m := range members {
		if err := r.join(ctx, "join "+m.label, ids[i], m.group); err != nil {
			return err
		}
	}
	l2a, l2b, l3a, l3b := ids[0], ids[1], ids[2], ids[3]

	event, err := r.entity(ctx, "add event", grassroot.EventAddSubgroups, func(ctx context.Context) (grassroot.Entity, error) {
		return api.AddEventWithSubgroups(ctx, organiser, level1, fx.EventName, true)
	})
	if err != nil {
		return err
	}
	if err := r.locate(ctx, "set first location", event, fx.Locations[0]); err != nil {
		return err
	}
	if err := r.schedule(ctx, "set first time", event, fx.Times[0]); err != nil {
		return err
	}

	rsvps := []struct {
		label  string
		user   int64
		answer string
	}{
		{"organiser", organiser, "yes"},
		{"level 2 member 1", l2a, "yes"},
		{"level 2 member 2", l2b, "no"},
		{"level 3 member 1", l3a, fx.OddAnswer},
	}
	for _, v := range rsvps {
		if err := r.rsvp(ctx, "rsvp "+v.label, event, v.user, v.answer); err != nil {
			return err
		}
	}
	if err := r.wait(ctx); err != nil {
		return err
	}

	if err := r.locate(ctx, "change location", event, fx.Locations[1]); err != nil {
		return err
	}
	if err := r.schedule(ctx, "change time", event, fx.Times[1]); err != nil {
		return err
	}
	if err := r.wait(ctx); err != nil {
		return err
	}

	if _, err := step(ctx, r, "rsvp totals", grassroot.EventRSVPTotals, func(ctx context.Context) (grassroot.Entity, error) {
		return api.RSVPTotals(ctx, event)
	}); err != nil {
		return err
	}

	late1, err := r.addUser(ctx, "add late level 1 member", fx.LateLevel1Phone)
	if err != nil {
		return err
	}
	if err := r.join(ctx, "join late level 1 member", late1, level1); err != nil {
		return err
	}
	late2, err := r.addUser(ctx, "add late level 2 member", fx.LateLevel2Phone)
	if err != nil {
		return err
	}
	if err := r.join(ctx, "join late level 2 member", late2, level2); err != nil {
		return err
	}
	if err := r.join(ctx, "join organiser to level 2", organiser, level2); err != nil {
		return err
	}

	for _, q := range []struct {
		label string
		user  int64
	}{
		{"rsvp required for organiser", organiser},
		{"rsvp required for level 3 member 2", l3b},
	} {
		if _, err := step(ctx, r, q.label, grassroot.EventRSVPRequired, func(ctx context.Context) ([]grassroot.Entity, error) {
			return api.RSVPRequired(ctx, q.user)
		}); err != nil {
			return err
		}
	}
	if err := r.wait(ctx); err != nil {
		return err
	}

	// user.add loads an existing user, so this returns the level 1 member
	// created implicitly by group.add.
	returning, err := r.addUser(ctx, "load level 1 member", fx.ReturningPhone)
	if err != nil {
		return err
	}
	if err := r.rsvp(ctx, "rsvp level 1 member", event, returning, "no"); err != nil {
		return err
	}
	if err := r.schedule(ctx, "change time again", event, fx.Times[2]); err != nil {
		return err
	}
	if err := r.wait(ctx); err != nil {
		return err
	}

	_, err = step(ctx, r, "list group and subgroups", grassroot.GroupListGroupAndSubgroups, func(ctx context.Context) ([]grassroot.Entity, error) {
		return api.ListGroupAndSubgroups(ctx, level1)
	})
	return err
}

func (r *run) addUser(ctx context.Context, name, phone string) (int64, error) {
	return r.entity(ctx, name, grassroot.UserAdd, func(ctx context.Context) (grassroot.Entity, error) {
		return r.svc.api.AddUser(ctx, phone)
	})
}

func (r *run) join(ctx context.Context, name string, userID, groupID int64) error {
	_, err := step(ctx, r, name, grassroot.GroupAddUserToGroup, func(ctx context.Context) (grassroot.Entity, error) {
		return r.svc.api.AddUserToGroup(ctx, userID, groupID)
	})
	return err
}

func (r *run) locate(ctx context.Context, name string, eventID int64, location string) error {
	_, err := step(ctx, r, name, grassroot.EventSetLocation, func(ctx context.Context) (grassroot.Entity, error) {
		return r.svc.api.SetEventLocation(ctx, eventID, location)
	})
	return err
}

func (r *run) schedule(ctx context.Context, name string, eventID int64, when string) error {
	_, err := step(ctx, r, name, grassroot.EventSetTime, func(ctx context.Context) (grassroot.Entity, error) {
		return r.svc.api.SetEventTime(ctx, eventID, when)
	})
	return err
}

func (r *run) rsvp(ctx context.Context, name string, eventID, userID int64, answer string) error {
	_, err := step(ctx, r, name, grassroot.EventRSVP, func(ctx context.Context) (grassroot.Entity, error) {
		return r.svc.api.RSVP(ctx, eventID, userID, answer)
	})
	return err
}

// entity runs a step whose response must carry an id and returns that id.
func (r *run) entity(ctx context.Context, name string, ep grassroot.Endpoint, fn func(context.Context) (grassroot.Entity, error)) (int64, error) {
	var id int64
	_, err := step(ctx, r, name, ep, func(ctx context.Context) (grassroot.Entity, error) {
		e, err := fn(ctx)
		if err != nil {
			return e, err
		}
		if id, err = e.ID(); err != nil {
			return e, err
		}
		return e, nil
	})
	return id, err
}

func step[T any](ctx context.Context, r *run, name string, ep grassroot.Endpoint, fn func(context.Context) (T, error)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, fmt.Errorf("step %q: %w", name, err)
	}

	start := time.Now()
	out, err := fn(ctx)
	res := domain.StepResult{
		Name:     name,
		Endpoint: ep.Name,
		Status:   domain.StatusOK,
		Elapsed:  time.Since(start),
		Response: out,
	}
	if err != nil {
		res.Status = domain.StatusFailed
		res.Error = err.Error()
		res.Response = nil
	}
	r.record(ctx, res)

	if err != nil {
		return out, fmt.Errorf("step %q: %w", name, err)
	}
	return out, nil
}

func (r *run) record(ctx context.Context, res domain.StepResult) {
	r.report.Steps = append(r.report.Steps, res)
	r.last = res.Name

	fields := map[string]any{
		"run_id":     r.svc.runID,
		"step":       res.Name,
		"endpoint":   res.Endpoint,
		"elapsed_ms": res.Elapsed.Milliseconds(),
	}
	if res.Status == domain.StatusFailed {
		fields["error"] = res.Error
		r.svc.log.WarnObj("scenario step failed", "scenario_step", fields)
	} else {
		r.svc.log.InfoObj("scenario step completed", "scenario_step", fields)
	}

	if r.svc.observer != nil {
		r.svc.observer.ObserveStep(ctx, res)
	}
}

// wait gives the server's asynchronous notification queue time to drain.
func (r *run) wait(ctx context.Context) error {
	d := r.svc.settle
	if d <= 0 {
		return nil
	}
	r.svc.log.DebugObj("waiting for server to settle", "scenario_settle", map[string]any{
		"after_step": r.last,
		"delay_ms":   d.Milliseconds(),
	})

	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return fmt.Errorf("settle after step %q: %w", r.last, ctx.Err())
	case <-timer.C:
		return nil
	}
}

