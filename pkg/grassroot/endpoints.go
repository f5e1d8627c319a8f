package grassroot

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Endpoint is one row of the server's REST catalog.
type Endpoint struct {
	Name     string
	Resource string
	Method   string
	// Template is the request path with {placeholder} segments.
	Template string
	// Raw endpoints hand back the undecoded response.
	Raw bool
	// JSONBody endpoints carry a JSON payload and the bearer token.
	JSONBody bool
}

var (
	UserAdd                 = Endpoint{Name: "user.add", Resource: "user", Method: http.MethodPost, Template: "/api/user/add/{phone}"}
	UserList                = Endpoint{Name: "user.list", Resource: "user", Method: http.MethodGet, Template: "/api/user/list"}
	UserSetInitiatedSession = Endpoint{Name: "user.setinitiatedsession", Resource: "user", Method: http.MethodPost, Template: "/api/user/setinitiatedsession/{userId}"}

	GroupAdd                   = Endpoint{Name: "group.add", Resource: "group", Method: http.MethodPost, Template: "/api/group/add/{userId}/{phones}"}
	GroupAddSubgroup           = Endpoint{Name: "group.add.subgroup", Resource: "group", Method: http.MethodPost, Template: "/api/group/add/subgroup/{userId}/{groupId}/{name}"}
	GroupAddUserToGroup        = Endpoint{Name: "group.add.usertogroup", Resource: "group", Method: http.MethodPost, Template: "/api/group/add/usertogroup/{userId}/{groupId}"}
	GroupListGroupAndSubgroups = Endpoint{Name: "group.list.groupandsubgroups", Resource: "group", Method: http.MethodGet, Template: "/api/group/list/groupandsubgroups/{groupId}"}

	EventAdd                = Endpoint{Name: "event.add", Resource: "event", Method: http.MethodPost, Template: "/api/event/add/{userId}/{groupId}/{name}"}
	EventAddSubgroups       = Endpoint{Name: "event.add.subgroups", Resource: "event", Method: http.MethodPost, Template: "/api/event/add/{userId}/{groupId}/{name}/{includeSubgroups}"}
	EventSetLocation        = Endpoint{Name: "event.setlocation", Resource: "event", Method: http.MethodPost, Template: "/api/event/setlocation/{eventId}/{location}"}
	EventSetTime            = Endpoint{Name: "event.settime", Resource: "event", Method: http.MethodPost, Template: "/api/event/settime/{eventId}/{time}"}
	EventCancel             = Endpoint{Name: "event.cancel", Resource: "event", Method: http.MethodPost, Template: "/api/event/cancel/{eventId}"}
	EventRSVP               = Endpoint{Name: "event.rsvp", Resource: "event", Method: http.MethodPost, Template: "/api/event/rsvp/{eventId}/{userId}/{message}"}
	EventRSVPTotals         = Endpoint{Name: "event.rsvp.totals", Resource: "event", Method: http.MethodPost, Template: "/api/event/rsvp/totals/{eventId}"}
	EventRSVPTotalsPerGroup = Endpoint{Name: "event.rsvp.totalspergroup", Resource: "event", Method: http.MethodPost, Template: "/api/event/rsvp/totalspergroup/{groupId}/{eventId}"}
	EventRSVPRequired       = Endpoint{Name: "event.rsvprequired", Resource: "event", Method: http.MethodGet, Template: "/api/event/rsvprequired/{userId}"}
	EventVoteRequired       = Endpoint{Name: "event.voterequired", Resource: "event", Method: http.MethodGet, Template: "/api/event/voterequired/{userId}"}
	EventUpcomingVote       = Endpoint{Name: "event.upcoming.vote", Resource: "event", Method: http.MethodGet, Template: "/api/event/upcoming/vote/{groupId}"}
	EventUpcomingMeeting    = Endpoint{Name: "event.upcoming.meeting", Resource: "event", Method: http.MethodGet, Template: "/api/event/upcoming/meeting/{groupId}"}
	EventManualReminder     = Endpoint{Name: "event.manualreminder", Resource: "event", Method: http.MethodPost, Template: "/api/event/manualreminder/{eventId}/{message}"}
	EventList               = Endpoint{Name: "event.list", Resource: "event", Method: http.MethodGet, Template: "/api/event/list", Raw: true}
	EventCreate             = Endpoint{Name: "event.create", Resource: "event", Method: http.MethodPost, Template: "/api/event/create/", Raw: true, JSONBody: true}

	VoteAdd           = Endpoint{Name: "vote.add", Resource: "vote", Method: http.MethodPost, Template: "/api/vote/add/{userId}/{groupId}/{issue}"}
	VoteListAllFuture = Endpoint{Name: "vote.listallfuture", Resource: "vote", Method: http.MethodGet, Template: "/api/vote/listallfuture"}

	LogBookAdd                     = Endpoint{Name: "logbook.add", Resource: "logbook", Method: http.MethodPost, Template: "/api/logbook/add/{userId}/{groupId}/{message}"}
	LogBookAddReplicate            = Endpoint{Name: "logbook.add.replicate", Resource: "logbook", Method: http.MethodPost, Template: "/api/logbook/add/{userId}/{groupId}/{message}/{replicate}"}
	LogBookAddWithDate             = Endpoint{Name: "logbook.addwithdate", Resource: "logbook", Method: http.MethodPost, Template: "/api/logbook/addwithdate/{userId}/{groupId}/{message}/{date}"}
	LogBookAddWithDateAndAssign    = Endpoint{Name: "logbook.addwithdateandassign", Resource: "logbook", Method: http.MethodPost, Template: "/api/logbook/addwithdateandassign/{userId}/{groupId}/{message}/{date}/{assigneeId}"}
	LogBookListReplicated          = Endpoint{Name: "logbook.listreplicated", Resource: "logbook", Method: http.MethodGet, Template: "/api/logbook/listreplicated/{groupId}"}
	LogBookListReplicatedCompleted = Endpoint{Name: "logbook.listreplicated.completed", Resource: "logbook", Method: http.MethodGet, Template: "/api/logbook/listreplicated/{groupId}/{completed}"}
	LogBookListReplicatedByMessage = Endpoint{Name: "logbook.listreplicatedbymessage", Resource: "logbook", Method: http.MethodGet, Template: "/api/logbook/listreplicatedbymessage/{groupId}/{message}"}

	AccountAdd = Endpoint{Name: "account.add", Resource: "account", Method: http.MethodPost, Template: "/api/account/add/{userId}/{groupId}/{accountName}"}
)

var catalog = []Endpoint{
	UserAdd, UserList, UserSetInitiatedSession,
	GroupAdd, GroupAddSubgroup, GroupAddUserToGroup, GroupListGroupAndSubgroups,
	EventAdd, EventAddSubgroups, EventSetLocation, EventSetTime, EventCancel,
	EventRSVP, EventRSVPTotals, EventRSVPTotalsPerGroup, EventRSVPRequired, EventVoteRequired,
	EventUpcomingVote, EventUpcomingMeeting, EventManualReminder, EventList, EventCreate,
	VoteAdd, VoteListAllFuture,
	LogBookAdd, LogBookAddReplicate, LogBookAddWithDate, LogBookAddWithDateAndAssign,
	LogBookListReplicated, LogBookListReplicatedCompleted, LogBookListReplicatedByMessage,
	AccountAdd,
}

var catalogIdx = func() map[string]Endpoint {
	idx := make(map[string]Endpoint, len(catalog))
	for _, ep := range catalog {
		idx[ep.Name] = ep
	}
	return idx
}()

// Catalog returns every known endpoint ordered by name.
func Catalog() []Endpoint {
	out := make([]Endpoint, len(catalog))
	copy(out, catalog)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup resolves an endpoint by catalog name.
func Lookup(name string) (Endpoint, error) {
	ep, ok := catalogIdx[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %q", ErrUnknownEndpoint, name)
	}
	return ep, nil
}

// Params lists the placeholder names of the template in order.
func (e Endpoint) Params() []string {
	var out []string
	for _, seg := range strings.Split(e.Template, "/") {
		if name, ok := placeholder(seg); ok {
			out = append(out, name)
		}
	}
	return out
}

// Path renders the template with args substituted verbatim.
func (e Endpoint) Path(args ...any) (string, error) {
	return e.render(args, false)
}

// EscapedPath renders the template with every substituted segment percent-encoded.
func (e Endpoint) EscapedPath(args ...any) (string, error) {
	return e.render(args, true)
}

func (e Endpoint) render(args []any, escape bool) (string, error) {
	segs := strings.Split(e.Template, "/")
	next := 0
	for i, seg := range segs {
		name, ok := placeholder(seg)
		if !ok {
			continue
		}
		if next >= len(args) {
			return "", fmt.Errorf("%w: %s wants %d, got %d", ErrArgCount, e.Name, len(e.Params()), len(args))
		}
		val := FormatSegment(args[next])
		if err := validateSegment(val); err != nil {
			return "", fmt.Errorf("%s {%s}: %w", e.Name, name, err)
		}
		if escape {
			val = url.PathEscape(val)
		}
		segs[i] = val
		next++
	}
	if next != len(args) {
		return "", fmt.Errorf("%w: %s wants %d, got %d", ErrArgCount, e.Name, next, len(args))
	}
	return strings.Join(segs, "/"), nil
}

func placeholder(seg string) (string, bool) {
	if len(seg) > 2 && strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
		return seg[1 : len(seg)-1], true
	}
	return "", false
}

// FormatSegment stringifies a path argument. Booleans render as True/False.
func FormatSegment(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "True"
		}
		return "False"
	case int:
		return strconv.FormatInt(int64(t), 10)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

func validateSegment(s string) error {
	switch s {
	case "":
		return fmt.Errorf("%w: empty", ErrInvalidSegment)
	case ".", "..":
		return fmt.Errorf("%w: %q", ErrInvalidSegment, s)
	}
	return nil
}
