// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package graph

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/infrastructure/graph/api"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/logging"
)

// Provider implements domain.AttendanceSource on top of Microsoft Graph
type Provider struct {
	client api.ClientAPI
}

// NewProvider creates a new Graph attendance source
func NewProvider(client api.ClientAPI) *Provider {
	return &Provider{
		client: client,
	}
}

// Ensure Provider implements AttendanceSource
var _ domain.AttendanceSource = (*Provider)(nil)

// Authenticate acquires the access token for the service identity
func (p *Provider) Authenticate(ctx context.Context) error {
	return p.client.Authenticate(ctx)
}

// ResolveUser returns the directory object ID of a user principal name
func (p *Provider) ResolveUser(ctx context.Context, principal string) (string, error) {
	user, err := p.client.GetUser(ctx, principal)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// CalendarView returns a lazy pager over the user's events in the window
func (p *Provider) CalendarView(userID string, window models.TimeWindow) domain.EventPager {
	return &eventPager{pager: p.client.CalendarView(userID, window.Start, window.End)}
}

// FindOnlineMeetings returns the meetings whose join URL matches exactly
func (p *Provider) FindOnlineMeetings(ctx context.Context, userID, joinURL string) ([]models.OnlineMeeting, error) {
	ctx = logging.AppendCtx(ctx, slog.String("graph_operation", "find_online_meetings"))

	meetings, err := p.client.FindOnlineMeetings(ctx, userID, joinURL)
	if err != nil {
		return nil, err
	}

	result := make([]models.OnlineMeeting, 0, len(meetings))
	for _, m := range meetings {
		result = append(result, toOnlineMeeting(m))
	}
	return result, nil
}

// ListAttendanceReports returns the attendance reports of a meeting
func (p *Provider) ListAttendanceReports(ctx context.Context, userID, meetingID string) ([]models.AttendanceReport, error) {
	ctx = logging.AppendCtx(ctx, slog.String("graph_operation", "list_attendance_reports"))

	reports, err := p.client.ListAttendanceReports(ctx, userID, meetingID)
	if err != nil {
		return nil, err
	}

	result := make([]models.AttendanceReport, 0, len(reports))
	for _, r := range reports {
		result = append(result, toAttendanceReport(r))
	}
	return result, nil
}

// ListAttendanceRecords returns the attendee records of a report
func (p *Provider) ListAttendanceRecords(ctx context.Context, userID, meetingID, reportID string) ([]models.AttendanceRecord, error) {
	ctx = logging.AppendCtx(ctx, slog.String("graph_operation", "list_attendance_records"))

	records, err := p.client.ListAttendanceRecords(ctx, userID, meetingID, reportID)
	if err != nil {
		return nil, err
	}

	result := make([]models.AttendanceRecord, 0, len(records))
	for _, r := range records {
		result = append(result, toAttendanceRecord(r))
	}
	return result, nil
}

// eventPager adapts the Graph event pager to domain events
type eventPager struct {
	pager *api.Pager[api.Event]
}

func (e *eventPager) Next(ctx context.Context) bool {
	return e.pager.Next(ctx)
}

func (e *eventPager) Page() []models.CalendarEvent {
	page := e.pager.Page()
	events := make([]models.CalendarEvent, 0, len(page))
	for _, ev := range page {
		events = append(events, toCalendarEvent(ev))
	}
	return events
}

func (e *eventPager) Pages() int {
	return e.pager.Pages()
}

func (e *eventPager) Err() error {
	return e.pager.Err()
}
