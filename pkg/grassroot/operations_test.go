package grassroot

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedOperationsHitTheirEndpoints(t *testing.T) {
	cases := []struct {
		name   string
		method string
		uri    string
		list   bool
		call   func(context.Context, *Client) error
	}{
		{"AddUser", http.MethodPost, "/api/user/add/0826607134", false, func(ctx context.Context, c *Client) error {
			_, err := c.AddUser(ctx, "0826607134")
			return err
		}},
		{"ListUsers", http.MethodGet, "/api/user/list", true, func(ctx context.Context, c *Client) error {
			_, err := c.ListUsers(ctx)
			return err
		}},
		{"SetInitiatedSession", http.MethodPost, "/api/user/setinitiatedsession/9", false, func(ctx context.Context, c *Client) error {
			_, err := c.SetInitiatedSession(ctx, 9)
			return err
		}},
		{"AddGroup", http.MethodPost, "/api/group/add/1/0821111111%200821111112", false, func(ctx context.Context, c *Client) error {
			_, err := c.AddGroup(ctx, 1, "0821111111", "0821111112")
			return err
		}},
		{"AddSubGroup", http.MethodPost, "/api/group/add/subgroup/1/2/level%202", false, func(ctx context.Context, c *Client) error {
			_, err := c.AddSubGroup(ctx, 1, 2, "level 2")
			return err
		}},
		{"AddUserToGroup", http.MethodPost, "/api/group/add/usertogroup/5/2", false, func(ctx context.Context, c *Client) error {
			_, err := c.AddUserToGroup(ctx, 5, 2)
			return err
		}},
		{"AddEvent", http.MethodPost, "/api/event/add/1/2/braai", false, func(ctx context.Context, c *Client) error {
			_, err := c.AddEvent(ctx, 1, 2, "braai")
			return err
		}},
		{"AddEventWithSubgroups", http.MethodPost, "/api/event/add/1/2/sub%20groups%20and%20all/True", false, func(ctx context.Context, c *Client) error {
			_, err := c.AddEventWithSubgroups(ctx, 1, 2, "sub groups and all", true)
			return err
		}},
		{"SetEventLocation", http.MethodPost, "/api/event/setlocation/3/ellispark", false, func(ctx context.Context, c *Client) error {
			_, err := c.SetEventLocation(ctx, 3, "ellispark")
			return err
		}},
		{"SetEventTime", http.MethodPost, "/api/event/settime/3/30th%2011pm", false, func(ctx context.Context, c *Client) error {
			_, err := c.SetEventTime(ctx, 3, "30th 11pm")
			return err
		}},
		{"RSVP", http.MethodPost, "/api/event/rsvp/3/5/not%20sure", false, func(ctx context.Context, c *Client) error {
			_, err := c.RSVP(ctx, 3, 5, "not sure")
			return err
		}},
		{"RSVPTotals", http.MethodPost, "/api/event/rsvp/totals/3", false, func(ctx context.Context, c *Client) error {
			_, err := c.RSVPTotals(ctx, 3)
			return err
		}},
		{"VoteRequired", http.MethodGet, "/api/event/voterequired/5", true, func(ctx context.Context, c *Client) error {
			_, err := c.VoteRequired(ctx, 5)
			return err
		}},
		{"UpcomingVotes", http.MethodGet, "/api/event/upcoming/vote/2", true, func(ctx context.Context, c *Client) error {
			_, err := c.UpcomingVotes(ctx, 2)
			return err
		}},
		{"UpcomingMeetings", http.MethodGet, "/api/event/upcoming/meeting/2", true, func(ctx context.Context, c *Client) error {
			_, err := c.UpcomingMeetings(ctx, 2)
			return err
		}},
		{"AddVote", http.MethodPost, "/api/vote/add/1/2/new%20chair%3F", false, func(ctx context.Context, c *Client) error {
			_, err := c.AddVote(ctx, 1, 2, "new chair?")
			return err
		}},
		{"ListAllFutureVotes", http.MethodGet, "/api/vote/listallfuture", true, func(ctx context.Context, c *Client) error {
			_, err := c.ListAllFutureVotes(ctx)
			return err
		}},
		{"AddLogBook", http.MethodPost, "/api/logbook/add/1/2/clean%20hall", false, func(ctx context.Context, c *Client) error {
			_, err := c.AddLogBook(ctx, 1, 2, "clean hall")
			return err
		}},
		{"AddLogBookReplicated", http.MethodPost, "/api/logbook/add/1/2/clean%20hall/True", false, func(ctx context.Context, c *Client) error {
			_, err := c.AddLogBookReplicated(ctx, 1, 2, "clean hall", true)
			return err
		}},
		{"AddLogBookWithDate", http.MethodPost, "/api/logbook/addwithdate/1/2/clean/2015-06-01", false, func(ctx context.Context, c *Client) error {
			_, err := c.AddLogBookWithDate(ctx, 1, 2, "clean", "2015-06-01")
			return err
		}},
		{"AddLogBookWithDateAndAssign", http.MethodPost, "/api/logbook/addwithdateandassign/1/2/clean/2015-06-01/5", false, func(ctx context.Context, c *Client) error {
			_, err := c.AddLogBookWithDateAndAssign(ctx, 1, 2, "clean", "2015-06-01", 5)
			return err
		}},
		{"ListReplicated", http.MethodGet, "/api/logbook/listreplicated/2", true, func(ctx context.Context, c *Client) error {
			_, err := c.ListReplicated(ctx, 2)
			return err
		}},
		{"ListReplicatedByMessage", http.MethodGet, "/api/logbook/listreplicatedbymessage/2/clean%20hall", true, func(ctx context.Context, c *Client) error {
			_, err := c.ListReplicatedByMessage(ctx, 2, "clean hall")
			return err
		}},
	}

	replies := map[string]reply{}
	for _, tc := range cases {
		if tc.list {
			replies[tc.uri] = reply{status: http.StatusOK, body: `[{"id":1}]`}
		}
	}
	rec, srv := newRecorder(t, replies)
	c := newTestClient(t, srv.URL)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.call(context.Background(), c))
			got := rec.last(t)
			assert.Equal(t, tc.method, got.Method)
			assert.Equal(t, tc.uri, got.RequestURI)
			assert.Empty(t, got.Auth, "path-only endpoints carry no credentials")
			assert.Empty(t, got.Body)
		})
	}
}
