// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/logging"
)

// tracerName is the instrumentation name for the service package.
const tracerName = "github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/service"

// AttendanceService walks a user's calendar and exports the attendance of
// every online meeting found in a time window.
type AttendanceService struct {
	Source   domain.AttendanceSource
	Exporter domain.Exporter
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(source domain.AttendanceSource, exporter domain.Exporter) *AttendanceService {
	return &AttendanceService{
		Source:   source,
		Exporter: exporter,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *AttendanceService) ServiceReady() bool {
	return s.Source != nil && s.Exporter != nil
}

// Run authenticates, resolves the principal, collects the events in window
// and exports one row per attendee. Authentication and principal resolution
// failures are fatal and are returned wrapping ErrFatal; every later failure
// only prunes the events it affects.
func (s *AttendanceService) Run(ctx context.Context, principalName string, window models.TimeWindow) ([]models.ExportRow, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "attendance.run",
		trace.WithAttributes(
			attribute.String("attendance.principal", principalName),
			attribute.String("attendance.window.start", window.Start.Format(time.RFC3339)),
			attribute.String("attendance.window.end", window.End.Format(time.RFC3339)),
		),
	)
	defer span.End()

	if !s.ServiceReady() {
		err := domain.NewInternalError("attendance service is not ready")
		recordSpanError(span, err)
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.String("principal", principalName))

	if err := s.authenticate(ctx); err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("%w: authenticate: %w", ErrFatal, err)
	}

	userID, err := s.resolveUser(ctx, principalName)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("%w: resolve user %q: %w", ErrFatal, principalName, err)
	}

	principal := models.Principal{Name: principalName, ID: userID}
	ctx = logging.AppendCtx(ctx, slog.String("user_id", userID))

	events := s.CollectEvents(ctx, principal, window)
	rows := s.ResolveAttendance(ctx, principal, events)
	span.SetAttributes(
		attribute.Int("attendance.events", len(events)),
		attribute.Int("attendance.rows", len(rows)),
	)

	if err := s.Exporter.Export(ctx, rows); err != nil {
		slog.ErrorContext(ctx, "failed to write attendance export", logging.ErrKey, err)
		recordSpanError(span, err)
		return rows, err
	}

	slog.InfoContext(ctx, "attendance export completed",
		"events", len(events),
		"rows", len(rows))

	return rows, nil
}

func (s *AttendanceService) authenticate(ctx context.Context) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "attendance.authenticate")
	defer span.End()

	if err := s.Source.Authenticate(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to obtain access token",
			logging.ErrKey, err,
			"error_type", domain.GetErrorType(err).String(),
			logging.PriorityCritical())
		recordSpanError(span, err)
		return err
	}
	return nil
}

func (s *AttendanceService) resolveUser(ctx context.Context, principalName string) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "attendance.resolve_user",
		trace.WithAttributes(attribute.String("attendance.principal", principalName)),
	)
	defer span.End()

	userID, err := s.Source.ResolveUser(ctx, principalName)
	if err != nil {
		slog.ErrorContext(ctx, "failed to resolve user",
			logging.ErrKey, err,
			"error_type", domain.GetErrorType(err).String(),
			"status", domain.ResponseStatus(err),
			"body", domain.ResponseBody(err),
			logging.PriorityCritical())
		span.SetAttributes(attribute.Int("http.response.status_code", domain.ResponseStatus(err)))
		recordSpanError(span, err)
		return "", err
	}
	return userID, nil
}

// CollectEvents returns every event of the principal's calendar view in
// window. A failed page stops the walk and the events gathered so far are
// returned.
func (s *AttendanceService) CollectEvents(ctx context.Context, principal models.Principal, window models.TimeWindow) []models.CalendarEvent {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "attendance.collect_events")
	defer span.End()

	pager := s.Source.CalendarView(principal.ID, window)

	events := []models.CalendarEvent{}
	for pager.Next(ctx) {
		events = append(events, pager.Page()...)
	}

	if err := pager.Err(); err != nil {
		slog.WarnContext(ctx, "failed to fetch calendar events page, continuing with partial results",
			logging.ErrKey, err,
			"pages", pager.Pages(),
			"events", len(events))
		recordSpanError(span, err)
	}
	span.SetAttributes(
		attribute.Int("attendance.pages", pager.Pages()),
		attribute.Int("attendance.events", len(events)),
	)

	slog.InfoContext(ctx, "collected calendar events",
		"start", window.Start,
		"end", window.End,
		"pages", pager.Pages(),
		"events", len(events))

	return events
}

// ResolveAttendance follows each online meeting event to its attendance
// records and flattens them into export rows, in event, report and record
// order.
func (s *AttendanceService) ResolveAttendance(ctx context.Context, principal models.Principal, events []models.CalendarEvent) []models.ExportRow {
	rows := []models.ExportRow{}
	for _, event := range events {
		if !event.HasJoinableMeeting() {
			continue
		}
		rows = append(rows, s.resolveEvent(ctx, principal, event)...)
	}
	return rows
}

func (s *AttendanceService) resolveEvent(ctx context.Context, principal models.Principal, event models.CalendarEvent) []models.ExportRow {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "attendance.resolve_event",
		trace.WithAttributes(
			attribute.String("attendance.event.id", event.ID),
			attribute.String("attendance.event.subject", event.Subject),
		),
	)
	defer span.End()

	ctx = logging.AppendCtx(ctx, slog.String("event_subject", event.Subject))

	meeting, ok := s.resolveMeeting(ctx, principal, event)
	if !ok {
		return nil
	}

	reports, ok := s.resolveReports(ctx, principal, meeting)
	if !ok {
		return nil
	}

	var rows []models.ExportRow
	for _, report := range reports {
		records, ok := s.resolveRecords(ctx, principal, meeting, report)
		if !ok {
			continue
		}
		rows = append(rows, models.NewExportRows(event, records)...)
	}
	span.SetAttributes(attribute.Int("attendance.rows", len(rows)))
	return rows
}

func (s *AttendanceService) resolveMeeting(ctx context.Context, principal models.Principal, event models.CalendarEvent) (models.OnlineMeeting, bool) {
	meetings, err := s.Source.FindOnlineMeetings(ctx, principal.ID, event.JoinURL)
	if err != nil {
		slog.WarnContext(ctx, "failed to look up online meeting, skipping event", logging.ErrKey, err)
		recordSpanError(trace.SpanFromContext(ctx), err)
		return models.OnlineMeeting{}, false
	}
	if len(meetings) == 0 {
		slog.WarnContext(ctx, "no online meeting matches the event join url, skipping event")
		return models.OnlineMeeting{}, false
	}
	if len(meetings) > 1 {
		slog.DebugContext(ctx, "several online meetings match the event join url, using the first",
			"matches", len(meetings),
			"meeting_id", meetings[0].ID)
	}
	return meetings[0], true
}

func (s *AttendanceService) resolveReports(ctx context.Context, principal models.Principal, meeting models.OnlineMeeting) ([]models.AttendanceReport, bool) {
	ctx = logging.AppendCtx(ctx, slog.String("meeting_id", meeting.ID))

	reports, err := s.Source.ListAttendanceReports(ctx, principal.ID, meeting.ID)
	if err != nil {
		slog.WarnContext(ctx, "failed to list attendance reports, skipping event", logging.ErrKey, err)
		recordSpanError(trace.SpanFromContext(ctx), err)
		return nil, false
	}
	if len(reports) == 0 {
		slog.DebugContext(ctx, "meeting has no attendance reports")
		return nil, false
	}
	return reports, true
}

func (s *AttendanceService) resolveRecords(ctx context.Context, principal models.Principal, meeting models.OnlineMeeting, report models.AttendanceReport) ([]models.AttendanceRecord, bool) {
	ctx = logging.AppendCtx(ctx, slog.String("report_id", report.ID))

	records, err := s.Source.ListAttendanceRecords(ctx, principal.ID, meeting.ID, report.ID)
	if err != nil {
		slog.WarnContext(ctx, "failed to list attendance records, skipping report",
			"meeting_id", meeting.ID,
			logging.ErrKey, err)
		// the other reports of the event are still exported
		trace.SpanFromContext(ctx).RecordError(err, trace.WithAttributes(attribute.String("attendance.report.id", report.ID)))
		return nil, false
	}

	slog.DebugContext(ctx, "retrieved attendance records",
		"meeting_id", meeting.ID,
		"records", len(records),
		"participants", report.TotalParticipantCount)
	return records, true
}

// recordSpanError marks span as failed with err
func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Ensure AttendanceService implements Service
var _ Service = (*AttendanceService)(nil)
