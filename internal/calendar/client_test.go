package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// newTestClient builds a Client whose service talks to the given handler
// instead of the real Calendar API.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	svc, err := calendar.NewService(context.Background(),
		option.WithEndpoint(ts.URL+"/"),
		option.WithoutAuthentication())
	require.NoError(t, err)

	return &Client{svc: svc}
}

func storedEvent() *calendar.Event {
	return &calendar.Event{
		Id:          "evt-1",
		Summary:     "Sprint planning",
		Description: "Bring the backlog",
		Location:    "Room 4",
		Start: &calendar.EventDateTime{
			DateTime: "2026-03-02T10:00:00Z",
			TimeZone: "UTC",
		},
		End: &calendar.EventDateTime{
			DateTime: "2026-03-02T11:00:00Z",
			TimeZone: "UTC",
		},
		Attendees: []*calendar.EventAttendee{
			{Email: "pm@example.com", ResponseStatus: "accepted"},
		},
	}
}

func TestUpdateEvent_PreservesUnsetFields(t *testing.T) {
	var (
		sent        *calendar.Event
		sendUpdates string
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/team-calendar/events/evt-1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(storedEvent())
		case http.MethodPut:
			sendUpdates = r.URL.Query().Get("sendUpdates")
			sent = &calendar.Event{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(sent))
			_ = json.NewEncoder(w).Encode(sent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	client := newTestClient(t, mux)

	updated, err := client.UpdateEvent("team-calendar", "evt-1", EventInput{
		Summary: "Sprint planning (moved)",
	})
	require.NoError(t, err)

	// Only the provided field is replaced in the outgoing update
	require.NotNil(t, sent)
	assert.Equal(t, "Sprint planning (moved)", sent.Summary)
	assert.Equal(t, "Bring the backlog", sent.Description)
	assert.Equal(t, "Room 4", sent.Location)
	require.NotNil(t, sent.Start)
	assert.Equal(t, "2026-03-02T10:00:00Z", sent.Start.DateTime)
	require.NotNil(t, sent.End)
	assert.Equal(t, "2026-03-02T11:00:00Z", sent.End.DateTime)
	require.Len(t, sent.Attendees, 1)
	assert.Equal(t, "pm@example.com", sent.Attendees[0].Email)

	// Attendees are notified of updates
	assert.Equal(t, "all", sendUpdates)

	assert.Equal(t, "Sprint planning (moved)", updated.Summary)
	assert.Equal(t, "Bring the backlog", updated.Description)
}

func TestUpdateEvent_NewTimesReplaceExisting(t *testing.T) {
	var sent *calendar.Event

	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/team-calendar/events/evt-1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(storedEvent())
		case http.MethodPut:
			sent = &calendar.Event{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(sent))
			_ = json.NewEncoder(w).Encode(sent)
		}
	})

	client := newTestClient(t, mux)

	newStart := time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC)
	newEnd := newStart.Add(time.Hour)

	_, err := client.UpdateEvent("team-calendar", "evt-1", EventInput{
		Start: newStart,
		End:   newEnd,
	})
	require.NoError(t, err)

	require.NotNil(t, sent)
	require.NotNil(t, sent.Start)
	assert.Equal(t, "2026-03-03T14:00:00Z", sent.Start.DateTime)
	assert.Equal(t, "UTC", sent.Start.TimeZone)
	require.NotNil(t, sent.End)
	assert.Equal(t, "2026-03-03T15:00:00Z", sent.End.DateTime)

	// Untouched text fields still carry the stored values
	assert.Equal(t, "Sprint planning", sent.Summary)
	assert.Equal(t, "Bring the backlog", sent.Description)
}

func TestSetAttendees_ReplacesList(t *testing.T) {
	var (
		sent        *calendar.Event
		sendUpdates string
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/team-calendar/events/evt-1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			event := storedEvent()
			event.Attendees = []*calendar.EventAttendee{
				{Email: "old-a@example.com"},
				{Email: "old-b@example.com"},
			}
			_ = json.NewEncoder(w).Encode(event)
		case http.MethodPut:
			sendUpdates = r.URL.Query().Get("sendUpdates")
			sent = &calendar.Event{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(sent))
			_ = json.NewEncoder(w).Encode(sent)
		}
	})

	client := newTestClient(t, mux)

	updated, err := client.SetAttendees("team-calendar", "evt-1",
		[]string{"new-a@example.com", "new-b@example.com"})
	require.NoError(t, err)

	// The previous list is replaced wholesale, not merged
	require.NotNil(t, sent)
	require.Len(t, sent.Attendees, 2)
	assert.Equal(t, "new-a@example.com", sent.Attendees[0].Email)
	assert.Equal(t, "new-b@example.com", sent.Attendees[1].Email)

	// Attendee replacement sends no notifications
	assert.Empty(t, sendUpdates)

	require.Len(t, updated.Attendees, 2)
	assert.Equal(t, "new-a@example.com", updated.Attendees[0].Email)
}

func TestGetEvent_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/primary/events/missing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"code": 404, "message": "Not Found"}}`))
	})

	client := newTestClient(t, mux)

	_, err := client.GetEvent("primary", "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "events.get", reqErr.Op)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode())
}

func TestListEvents_QueryParameters(t *testing.T) {
	var query map[string][]string

	mux := http.NewServeMux()
	mux.HandleFunc("/calendars/primary/events", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_ = json.NewEncoder(w).Encode(&calendar.Events{
			Items: []*calendar.Event{storedEvent()},
		})
	})

	client := newTestClient(t, mux)

	timeMin := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	timeMax := timeMin.AddDate(0, 0, 7)

	events, err := client.SearchEvents("primary", "planning", timeMin, timeMax)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Sprint planning", events[0].Summary)

	require.NotNil(t, query)
	assert.Equal(t, []string{"planning"}, query["q"])
	assert.Equal(t, []string{"true"}, query["singleEvents"])
	assert.Equal(t, []string{"2026-03-01T00:00:00Z"}, query["timeMin"])
}
