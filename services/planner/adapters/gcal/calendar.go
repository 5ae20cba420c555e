package gcal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"study-planner/services/planner/core"
)

// SessionIDProperty is the private extended property linking an event to a session.
const SessionIDProperty = "planner_session_id"

// DefaultDuration is used for sessions whose end is missing or before the start.
const DefaultDuration = 30 * time.Minute

// SyncResult counts what a sync did, or would do in a dry run.
type SyncResult struct {
	Created   int
	Updated   int
	Unchanged int
	Failed    int
}

type Client struct {
	log        *slog.Logger
	srv        *calendar.Service
	calendarID string
}

// NewClient builds a Calendar client on httpClient. Extra options are applied
// after it, e.g. option.WithEndpoint.
func NewClient(ctx context.Context, log *slog.Logger, httpClient *http.Client, calendarID string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &Client{log: log, srv: srv, calendarID: calendarID}, nil
}

// SyncSessions creates or patches one event per session. Sessions that fail
// are counted and logged; the sync goes on with the rest.
func (c *Client) SyncSessions(ctx context.Context, sessions []core.ScheduledSession, dryRun bool) (SyncResult, error) {
	var result SyncResult

	for _, s := range sessions {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		want := SessionToEvent(s)
		existing, err := c.findEvent(ctx, s.ID)
		if err != nil {
			result.Failed++
			c.log.Warn("calendar lookup failed", "session_id", s.ID, "error", err)
			continue
		}

		switch {
		case existing == nil:
			if !dryRun {
				if _, err := c.srv.Events.Insert(c.calendarID, want).Context(ctx).Do(); err != nil {
					result.Failed++
					c.log.Warn("calendar insert failed", "session_id", s.ID, "error", err)
					continue
				}
			}
			result.Created++
		case EventNeedsUpdate(existing, want):
			if !dryRun {
				if _, err := c.srv.Events.Patch(c.calendarID, existing.Id, want).Context(ctx).Do(); err != nil {
					result.Failed++
					c.log.Warn("calendar patch failed", "session_id", s.ID, "event_id", existing.Id, "error", err)
					continue
				}
			}
			result.Updated++
		default:
			result.Unchanged++
		}
	}

	return result, nil
}

func (c *Client) findEvent(ctx context.Context, sessionID int64) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(SessionIDProperty + "=" + strconv.FormatInt(sessionID, 10)).
		ShowDeleted(false).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) == 0 {
		return nil, nil
	}
	return events.Items[0], nil
}

// SessionToEvent maps a scheduled session onto a timed calendar event.
func SessionToEvent(s core.ScheduledSession) *calendar.Event {
	end := s.Start.Add(DefaultDuration)
	if s.End != nil && s.End.After(s.Start) {
		end = *s.End
	}

	return &calendar.Event{
		Summary:     s.Label,
		Description: s.Notes,
		Start:       &calendar.EventDateTime{DateTime: s.Start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{SessionIDProperty: strconv.FormatInt(s.ID, 10)},
		},
	}
}

// EventNeedsUpdate reports whether existing differs from want in summary,
// description or times. Times are compared as instants, not strings.
func EventNeedsUpdate(existing, want *calendar.Event) bool {
	if existing.Summary != want.Summary || existing.Description != want.Description {
		return true
	}
	return !sameInstant(existing.Start, want.Start) || !sameInstant(existing.End, want.End)
}

func sameInstant(a, b *calendar.EventDateTime) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, errA := time.Parse(time.RFC3339, a.DateTime)
	tb, errB := time.Parse(time.RFC3339, b.DateTime)
	if errA != nil || errB != nil {
		return a.DateTime == b.DateTime
	}
	return ta.Equal(tb)
}
