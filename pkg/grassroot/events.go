package grassroot

import "context"

func (c *Client) AddEvent(ctx context.Context, userID, groupID int64, name string) (Entity, error) {
	return c.object(ctx, EventAdd, userID, groupID, name)
}

// AddEventWithSubgroups creates an event and controls whether subgroup
// members are invited too.
func (c *Client) AddEventWithSubgroups(ctx context.Context, userID, groupID int64, name string, includeSubgroups bool) (Entity, error) {
	return c.object(ctx, EventAddSubgroups, userID, groupID, name, includeSubgroups)
}

func (c *Client) SetEventLocation(ctx context.Context, eventID int64, location string) (Entity, error) {
	return c.object(ctx, EventSetLocation, eventID, location)
}

// SetEventTime passes when through untouched; the server parses free text
// such as "30th 11pm".
func (c *Client) SetEventTime(ctx context.Context, eventID int64, when string) (Entity, error) {
	return c.object(ctx, EventSetTime, eventID, when)
}

func (c *Client) CancelEvent(ctx context.Context, eventID int64) (Entity, error) {
	return c.object(ctx, EventCancel, eventID)
}

// RSVP records userID's answer to eventID and returns the event log entry.
func (c *Client) RSVP(ctx context.Context, eventID, userID int64, message string) (Entity, error) {
	return c.object(ctx, EventRSVP, eventID, userID, message)
}

func (c *Client) RSVPTotals(ctx context.Context, eventID int64) (Entity, error) {
	return c.object(ctx, EventRSVPTotals, eventID)
}

// RSVPTotalsPerGroup returns the per-group breakdown as decoded.
func (c *Client) RSVPTotalsPerGroup(ctx context.Context, groupID, eventID int64) (any, error) {
	return c.invoke(ctx, EventRSVPTotalsPerGroup, groupID, eventID)
}

// RSVPRequired lists the events still waiting on userID's answer.
func (c *Client) RSVPRequired(ctx context.Context, userID int64) ([]Entity, error) {
	return c.list(ctx, EventRSVPRequired, userID)
}

// VoteRequired lists the votes still waiting on userID.
func (c *Client) VoteRequired(ctx context.Context, userID int64) ([]Entity, error) {
	return c.list(ctx, EventVoteRequired, userID)
}

func (c *Client) UpcomingVotes(ctx context.Context, groupID int64) ([]Entity, error) {
	return c.list(ctx, EventUpcomingVote, groupID)
}

func (c *Client) UpcomingMeetings(ctx context.Context, groupID int64) ([]Entity, error) {
	return c.list(ctx, EventUpcomingMeeting, groupID)
}

// ManualReminder sends message to everyone invited to eventID.
func (c *Client) ManualReminder(ctx context.Context, eventID int64, message string) (any, error) {
	return c.invoke(ctx, EventManualReminder, eventID, message)
}

// ListEvents returns the raw event listing.
func (c *Client) ListEvents(ctx context.Context) (*RawResponse, error) {
	return c.raw(ctx, EventList, nil)
}

// CreateEvent posts event as JSON with the bearer token attached.
func (c *Client) CreateEvent(ctx context.Context, event any) (*RawResponse, error) {
	return c.raw(ctx, EventCreate, event)
}
