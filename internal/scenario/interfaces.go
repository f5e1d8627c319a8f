package scenario

import (
	"context"

	"github.com/grassroot-hq/grassroot-apiclient/internal/domain"
	"github.com/grassroot-hq/grassroot-apiclient/pkg/grassroot"
)

// API is the subset of the Grassroot client the smoke scenario drives.
type API interface {
	AddUser(ctx context.Context, phone string) (grassroot.Entity, error)
	AddGroup(ctx context.Context, userID int64, phones ...string) (grassroot.Entity, error)
	AddSubGroup(ctx context.Context, userID, groupID int64, name string) (grassroot.Entity, error)
	AddUserToGroup(ctx context.Context, userID, groupID int64) (grassroot.Entity, error)
	AddEventWithSubgroups(ctx context.Context, userID, groupID int64, name string, includeSubgroups bool) (grassroot.Entity, error)
	SetEventLocation(ctx context.Context, eventID int64, location string) (grassroot.Entity, error)
	SetEventTime(ctx context.Context, eventID int64, when string) (grassroot.Entity, error)
	RSVP(ctx context.Context, eventID, userID int64, message string) (grassroot.Entity, error)
	RSVPTotals(ctx context.Context, eventID int64) (grassroot.Entity, error)
	RSVPRequired(ctx context.Context, userID int64) ([]grassroot.Entity, error)
	ListGroupAndSubgroups(ctx context.Context, groupID int64) ([]grassroot.Entity, error)
}

// StepObserver is told about every finished step, failed or not.
type StepObserver interface {
	ObserveStep(ctx context.Context, step domain.StepResult)
}
