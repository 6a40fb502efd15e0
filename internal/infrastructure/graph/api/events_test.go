// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain"
)

func collectEvents(ctx context.Context, p *Pager[Event]) []Event {
	var events []Event
	for p.Next(ctx) {
		events = append(events, p.Page()...)
	}
	return events
}

func TestClient_CalendarView_Query(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	end := time.Date(2024, 3, 8, 9, 30, 0, 0, time.FixedZone("CET", 3600))

	fg := newFakeGraph(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.0/users/user-1/calendar/calendarView", r.URL.Path)
		assert.Equal(t, "2024-03-01T08:30:00Z", r.URL.Query().Get("startDateTime"))
		assert.Equal(t, "2024-03-08T08:30:00Z", r.URL.Query().Get("endDateTime"))
		writeJSON(w, http.StatusOK, `{"value":[
			{"id":"e1","subject":"Weekly sync","start":{"dateTime":"2024-03-04T10:00:00.0000000","timeZone":"UTC"},
			 "end":{"dateTime":"2024-03-04T10:30:00.0000000","timeZone":"UTC"},
			 "isOnlineMeeting":true,"onlineMeeting":{"joinUrl":"https://teams.microsoft.com/l/meetup-join/abc"}},
			{"id":"e2","subject":"Lunch","isOnlineMeeting":false,"onlineMeeting":null}
		]}`)
	})

	events := collectEvents(context.Background(), fg.authenticatedClient(t).CalendarView("user-1", start, end))

	require.Len(t, events, 2)
	assert.Equal(t, "Weekly sync", events[0].Subject)
	require.NotNil(t, events[0].Start)
	assert.Equal(t, "2024-03-04T10:00:00.0000000", events[0].Start.DateTime)
	require.NotNil(t, events[0].OnlineMeeting)
	assert.Equal(t, "https://teams.microsoft.com/l/meetup-join/abc", events[0].OnlineMeeting.JoinURL)
	assert.False(t, events[1].IsOnlineMeeting)
	assert.Nil(t, events[1].OnlineMeeting)
	assert.Equal(t, int32(1), fg.graphCalls.Load())
}

func TestClient_CalendarView_FollowsNextLink(t *testing.T) {
	var fg *fakeGraph
	var calls atomic.Int32
	fg = newFakeGraph(t, func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		switch r.URL.Query().Get("$skiptoken") {
		case "":
			writeJSON(w, http.StatusOK, fmt.Sprintf(
				`{"value":[{"id":"e1"},{"id":"e2"}],"@odata.nextLink":"%s/v1.0/users/user-1/calendar/calendarView?$skiptoken=2"}`, fg.URL))
		case "2":
			writeJSON(w, http.StatusOK, fmt.Sprintf(
				`{"value":[{"id":"e3"}],"@odata.nextLink":"%s/v1.0/users/user-1/calendar/calendarView?$skiptoken=3"}`, fg.URL))
		case "3":
			writeJSON(w, http.StatusOK, `{"value":[{"id":"e4"}]}`)
		default:
			t.Errorf("unexpected request %d: %s", n, r.URL.String())
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	now := time.Now()
	pager := fg.authenticatedClient(t).CalendarView("user-1", now.Add(-7*24*time.Hour), now)
	events := collectEvents(context.Background(), pager)

	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"e1", "e2", "e3", "e4"}, ids)
	assert.Equal(t, int32(3), calls.Load(), "exactly one request per page")
	assert.Equal(t, 3, pager.Pages())
	assert.NoError(t, pager.Err())
}

func TestClient_CalendarView_FailureMidway(t *testing.T) {
	var fg *fakeGraph
	fg = newFakeGraph(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("$skiptoken") {
		case "":
			writeJSON(w, http.StatusOK, fmt.Sprintf(
				`{"value":[{"id":"e1"},{"id":"e2"}],"@odata.nextLink":"%s/v1.0/users/user-1/calendar/calendarView?$skiptoken=2"}`, fg.URL))
		case "2":
			writeJSON(w, http.StatusServiceUnavailable, `{"error":{"code":"ServiceNotAvailable","message":"try later"}}`)
		default:
			t.Errorf("page after a failure must not be requested: %s", r.URL.String())
		}
	})

	now := time.Now()
	pager := fg.authenticatedClient(t).CalendarView("user-1", now.Add(-24*time.Hour), now)
	events := collectEvents(context.Background(), pager)

	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, "e2", events[1].ID)
	require.Error(t, pager.Err())
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(pager.Err()))
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(pager.Err()))
	assert.Equal(t, int32(2), fg.graphCalls.Load())
}
