package calendar

import (
	"context"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/calflowhq/calflow/internal/google"
)

// sendUpdatesAll asks the API to notify all attendees about event changes.
const sendUpdatesAll = "all"

// Client wraps the Google Calendar service. It is an authenticated session
// bound to the service account and an optional impersonated user; it holds
// no other state and is safe for concurrent use.
type Client struct {
	svc     *calendar.Service
	subject string
}

// Subject returns the impersonated user this client acts as, or an empty
// string when acting as the service account itself.
func (c *Client) Subject() string {
	return c.subject
}

// NewClient creates a Calendar client authenticated with the given service
// account credentials. A non-empty subject impersonates that user via
// domain-wide delegation.
func NewClient(ctx context.Context, creds *google.Credentials, subject string) (*Client, error) {
	ts, err := creds.TokenSource(ctx, subject)
	if err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, &google.AuthError{Source: creds.Source(), Err: err}
	}

	return &Client{svc: svc, subject: subject}, nil
}

// ListEvents lists events in a calendar within a time range. Recurring
// events are expanded into single instances by the API.
func (c *Client) ListEvents(calendarID string, timeMin, timeMax time.Time) ([]EventSummary, error) {
	return c.listEvents(calendarID, "", timeMin, timeMax)
}

// SearchEvents lists events in a calendar that match a free-text query
// within a time range.
func (c *Client) SearchEvents(calendarID, query string, timeMin, timeMax time.Time) ([]EventSummary, error) {
	return c.listEvents(calendarID, query, timeMin, timeMax)
}

func (c *Client) listEvents(calendarID, query string, timeMin, timeMax time.Time) ([]EventSummary, error) {
	call := c.svc.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")

	if query != "" {
		call = call.Q(query)
	}

	events, err := call.Do()
	if err != nil {
		return nil, requestError("events.list", err)
	}

	var summaries []EventSummary
	for _, event := range events.Items {
		summaries = append(summaries, toEventSummary(event))
	}

	return summaries, nil
}

// GetEvent retrieves a specific event by ID
func (c *Client) GetEvent(calendarID, eventID string) (*EventSummary, error) {
	event, err := c.svc.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return nil, requestError("events.get", err)
	}

	summary := toEventSummary(event)
	return &summary, nil
}

// CreateEvent creates a new calendar event and notifies attendees.
func (c *Client) CreateEvent(calendarID string, input EventInput) (*EventSummary, error) {
	tz := input.TimeZone
	if tz == "" {
		tz = "UTC"
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: tz,
		},
		Attendees: buildAttendees(input.Attendees),
	}

	created, err := c.svc.Events.Insert(calendarID, event).SendUpdates(sendUpdatesAll).Do()
	if err != nil {
		return nil, requestError("events.insert", err)
	}

	summary := toEventSummary(created)
	return &summary, nil
}

// UpdateEvent updates an existing calendar event. Only fields set in input
// replace the existing values; everything else is left untouched. Attendees
// are notified of the change.
func (c *Client) UpdateEvent(calendarID, eventID string, input EventInput) (*EventSummary, error) {
	existing, err := c.svc.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return nil, requestError("events.get", err)
	}

	if input.Summary != "" {
		existing.Summary = input.Summary
	}
	if input.Description != "" {
		existing.Description = input.Description
	}
	if input.Location != "" {
		existing.Location = input.Location
	}

	tz := input.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	if !input.Start.IsZero() {
		existing.Start = &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: tz,
		}
	}
	if !input.End.IsZero() {
		existing.End = &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: tz,
		}
	}

	if len(input.Attendees) > 0 {
		existing.Attendees = buildAttendees(input.Attendees)
	}

	updated, err := c.svc.Events.Update(calendarID, eventID, existing).SendUpdates(sendUpdatesAll).Do()
	if err != nil {
		return nil, requestError("events.update", err)
	}

	summary := toEventSummary(updated)
	return &summary, nil
}

// DeleteEvent deletes a calendar event
func (c *Client) DeleteEvent(calendarID, eventID string) error {
	if err := c.svc.Events.Delete(calendarID, eventID).Do(); err != nil {
		return requestError("events.delete", err)
	}
	return nil
}

// QuickAdd creates an event from a natural language description, e.g.
// "Lunch with John tomorrow at noon for 2 hours". Parsing happens entirely
// on the API side.
func (c *Client) QuickAdd(calendarID, text string) (*EventSummary, error) {
	created, err := c.svc.Events.QuickAdd(calendarID, text).Do()
	if err != nil {
		return nil, requestError("events.quickAdd", err)
	}

	summary := toEventSummary(created)
	return &summary, nil
}

// MoveEvent moves an event from one calendar to another.
func (c *Client) MoveEvent(calendarID, eventID, destinationID string) (*EventSummary, error) {
	moved, err := c.svc.Events.Move(calendarID, eventID, destinationID).Do()
	if err != nil {
		return nil, requestError("events.move", err)
	}

	summary := toEventSummary(moved)
	return &summary, nil
}

// SetAttendees replaces the attendee list of an existing event.
func (c *Client) SetAttendees(calendarID, eventID string, emails []string) (*EventSummary, error) {
	existing, err := c.svc.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return nil, requestError("events.get", err)
	}

	existing.Attendees = buildAttendees(emails)

	updated, err := c.svc.Events.Update(calendarID, eventID, existing).Do()
	if err != nil {
		return nil, requestError("events.update", err)
	}

	summary := toEventSummary(updated)
	return &summary, nil
}

// ListCalendars lists all calendars accessible to the session.
func (c *Client) ListCalendars() ([]CalendarInfo, error) {
	list, err := c.svc.CalendarList.List().Do()
	if err != nil {
		return nil, requestError("calendarList.list", err)
	}

	var calendars []CalendarInfo
	for _, entry := range list.Items {
		calendars = append(calendars, toCalendarInfo(entry))
	}

	return calendars, nil
}

// GetCalendar retrieves details for a specific calendar.
func (c *Client) GetCalendar(calendarID string) (*CalendarInfo, error) {
	cal, err := c.svc.Calendars.Get(calendarID).Do()
	if err != nil {
		return nil, requestError("calendars.get", err)
	}

	info := toCalendarDetails(cal)
	return &info, nil
}
