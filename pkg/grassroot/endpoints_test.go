package grassroot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label string

func (l label) String() string { return "label-" + string(l) }

func TestEndpointPathSubstitutesArgsInOrder(t *testing.T) {
	cases := []struct {
		name string
		ep   Endpoint
		args []any
		want string
	}{
		{"account with spaces", AccountAdd, []any{1, 21, "acc 21"}, "/api/account/add/1/21/acc 21"},
		{"rsvp", EventRSVP, []any{int64(5167), int64(42), "yes"}, "/api/event/rsvp/5167/42/yes"},
		{"listreplicated false", LogBookListReplicatedCompleted, []any{88, false}, "/api/logbook/listreplicated/88/False"},
		{"subgroups true", EventAddSubgroups, []any{1, 2, "sub groups and all", true}, "/api/event/add/1/2/sub groups and all/True"},
		{"no params", UserList, nil, "/api/user/list"},
		{"trailing slash kept", EventCreate, nil, "/api/event/create/"},
		{"stringer", UserAdd, []any{label("x")}, "/api/user/add/label-x"},
		{"unsigned", EventCancel, []any{uint32(9)}, "/api/event/cancel/9"},
		{"five args", LogBookAddWithDateAndAssign, []any{1, 2, "fix roof", "2015-10-01", 3}, "/api/logbook/addwithdateandassign/1/2/fix roof/2015-10-01/3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.ep.Path(tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEndpointPathMatchesTemplateForEveryCatalogEntry(t *testing.T) {
	for _, ep := range Catalog() {
		params := ep.Params()
		args := make([]any, len(params))
		want := ep.Template
		for i, p := range params {
			args[i] = "v" + p
			want = strings.Replace(want, "{"+p+"}", "v"+p, 1)
		}
		got, err := ep.Path(args...)
		require.NoError(t, err, ep.Name)
		assert.Equal(t, want, got, ep.Name)
	}
}

func TestEscapedPathEncodesEachSegment(t *testing.T) {
	got, err := AccountAdd.EscapedPath(1, 21, "acc 21")
	require.NoError(t, err)
	assert.Equal(t, "/api/account/add/1/21/acc%2021", got)

	got, err = EventSetLocation.EscapedPath(7, "a/b?c#d")
	require.NoError(t, err)
	assert.Equal(t, "/api/event/setlocation/7/a%2Fb%3Fc%23d", got)
}

func TestEndpointPathRejectsWrongArity(t *testing.T) {
	_, err := EventRSVP.Path(1, 2)
	assert.ErrorIs(t, err, ErrArgCount)

	_, err = EventRSVP.Path(1, 2, "yes", "extra")
	assert.ErrorIs(t, err, ErrArgCount)

	_, err = UserList.Path("unexpected")
	assert.ErrorIs(t, err, ErrArgCount)
}

func TestEndpointPathRejectsUnroutableSegments(t *testing.T) {
	for _, bad := range []string{"", ".", ".."} {
		_, err := EventSetLocation.Path(1, bad)
		assert.ErrorIs(t, err, ErrInvalidSegment, "segment %q", bad)
	}
}

func TestFormatSegmentPinsBooleans(t *testing.T) {
	assert.Equal(t, "True", FormatSegment(true))
	assert.Equal(t, "False", FormatSegment(false))
	assert.Equal(t, "-4", FormatSegment(-4))
	assert.Equal(t, "1.5", FormatSegment(1.5))
}

func TestLookup(t *testing.T) {
	ep, err := Lookup(" Event.RSVP ")
	require.NoError(t, err)
	assert.Equal(t, EventRSVP, ep)
	assert.Equal(t, []string{"eventId", "userId", "message"}, ep.Params())

	_, err = Lookup("event.setday")
	assert.ErrorIs(t, err, ErrUnknownEndpoint)
}

func TestCatalogIsConsistent(t *testing.T) {
	seen := make(map[string]bool)
	for _, ep := range Catalog() {
		assert.False(t, seen[ep.Name], "duplicate name %s", ep.Name)
		seen[ep.Name] = true
		assert.True(t, strings.HasPrefix(ep.Template, "/api/"+ep.Resource+"/"), ep.Name)
		assert.Contains(t, []string{"GET", "POST"}, ep.Method, ep.Name)
		if ep.JSONBody {
			assert.True(t, ep.Raw, "json body endpoint %s should be raw", ep.Name)
		}
	}
	assert.Len(t, seen, len(catalog))
}
