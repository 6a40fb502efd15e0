// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package graph

import (
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/infrastructure/graph/api"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/pkg/utils"
)

func toCalendarEvent(e api.Event) models.CalendarEvent {
	event := models.CalendarEvent{
		ID:              e.ID,
		Subject:         e.Subject,
		IsOnlineMeeting: e.IsOnlineMeeting,
	}
	if e.Start != nil {
		event.Start = e.Start.DateTime
	}
	if e.End != nil {
		event.End = e.End.DateTime
	}
	if e.OnlineMeeting != nil {
		event.JoinURL = e.OnlineMeeting.JoinURL
	}
	return event
}

func toOnlineMeeting(m api.OnlineMeeting) models.OnlineMeeting {
	return models.OnlineMeeting{
		ID:      m.ID,
		Subject: m.Subject,
		JoinURL: utils.CoalesceString(m.JoinWebURL, m.JoinURL),
	}
}

func toAttendanceReport(r api.AttendanceReport) models.AttendanceReport {
	return models.AttendanceReport{
		ID:                    r.ID,
		MeetingStart:          r.MeetingStartDateTime,
		MeetingEnd:            r.MeetingEndDateTime,
		TotalParticipantCount: r.TotalParticipantCount,
	}
}

// toAttendanceRecord falls back to the first and last attendance interval
// when the record carries no top-level join or leave time.
func toAttendanceRecord(r api.AttendanceRecord) models.AttendanceRecord {
	record := models.AttendanceRecord{
		Email:           r.EmailAddress,
		Role:            r.Role,
		JoinTime:        r.JoinDateTime,
		LeaveTime:       r.LeaveDateTime,
		DurationSeconds: r.TotalAttendanceDurationInSeconds,
	}
	if r.Identity != nil {
		record.DisplayName = r.Identity.DisplayName
	}
	if n := len(r.AttendanceIntervals); n > 0 {
		record.JoinTime = utils.CoalesceString(record.JoinTime, r.AttendanceIntervals[0].JoinDateTime)
		record.LeaveTime = utils.CoalesceString(record.LeaveTime, r.AttendanceIntervals[n-1].LeaveDateTime)
	}
	return record
}
