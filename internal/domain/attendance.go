// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain/models"
)

// AttendanceSource defines the interface for the calendar and collaboration
// service that attendance is read from.
type AttendanceSource interface {
	// Authenticate obtains the bearer credential used by every later call.
	Authenticate(ctx context.Context) error

	// ResolveUser maps a principal name to the service's opaque user ID.
	ResolveUser(ctx context.Context, principal string) (string, error)

	// CalendarView returns a lazy pager over the user's events in the window.
	// No request is issued until the first call to Next.
	CalendarView(userID string, window models.TimeWindow) EventPager

	// FindOnlineMeetings returns the meetings whose join URL matches exactly.
	FindOnlineMeetings(ctx context.Context, userID, joinURL string) ([]models.OnlineMeeting, error)

	// ListAttendanceReports returns the attendance reports of a meeting.
	ListAttendanceReports(ctx context.Context, userID, meetingID string) ([]models.AttendanceReport, error)

	// ListAttendanceRecords returns the attendee records of a report.
	ListAttendanceRecords(ctx context.Context, userID, meetingID, reportID string) ([]models.AttendanceRecord, error)
}

// EventPager is a finite sequence of calendar event pages. Each call to Next
// fetches at most one page; iteration ends when the service stops returning a
// continuation link or a page request fails.
type EventPager interface {
	Next(ctx context.Context) bool
	Page() []models.CalendarEvent
	Pages() int
	Err() error
}

// Exporter writes the flattened attendance rows to the output artifact.
type Exporter interface {
	Export(ctx context.Context, rows []models.ExportRow) error
}
