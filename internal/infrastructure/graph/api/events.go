// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/url"
	"time"
)

// Event represents a calendar event from the calendarView collection
type Event struct {
	ID              string             `json:"id"`
	Subject         string             `json:"subject"`
	Start           *DateTimeTimeZone  `json:"start"`
	End             *DateTimeTimeZone  `json:"end"`
	IsOnlineMeeting bool               `json:"isOnlineMeeting"`
	OnlineMeeting   *OnlineMeetingInfo `json:"onlineMeeting"`
}

// DateTimeTimeZone is Graph's local date-time plus time zone pair
type DateTimeTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// OnlineMeetingInfo carries the join details embedded in an event
type OnlineMeetingInfo struct {
	JoinURL string `json:"joinUrl"`
}

// CalendarView returns a pager over the user's events whose occurrence falls
// in [start, end]. Recurring series are expanded by the service.
func (c *Client) CalendarView(userID string, start, end time.Time) *Pager[Event] {
	query := url.Values{}
	query.Set("startDateTime", start.UTC().Format(time.RFC3339))
	query.Set("endDateTime", end.UTC().Format(time.RFC3339))

	firstURL := c.resourceURL("/users/"+url.PathEscape(userID)+"/calendar/calendarView", query)
	return NewPager(firstURL, c.fetchEventPage)
}

func (c *Client) fetchEventPage(ctx context.Context, pageURL string) (*Page[Event], error) {
	var page Page[Event]
	if err := c.getJSON(ctx, pageURL, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
