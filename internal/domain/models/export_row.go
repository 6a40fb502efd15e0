// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "strconv"

// ExportHeader is the fixed header row of the attendance export.
var ExportHeader = []string{
	"Meeting Subject",
	"Start Time",
	"End Time",
	"Attendee",
	"Email",
	"Join Time",
	"Leave Time",
	"Duration (minutes)",
}

// ExportRow is the denormalized join of a calendar event and one attendance record.
type ExportRow struct {
	MeetingSubject  string
	StartTime       string
	EndTime         string
	Attendee        string
	Email           string
	JoinTime        string
	LeaveTime       string
	DurationSeconds *int
}

// NewExportRows flattens the records of one report into rows that carry the
// enclosing event's subject and times.
func NewExportRows(event CalendarEvent, records []AttendanceRecord) []ExportRow {
	rows := make([]ExportRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, ExportRow{
			MeetingSubject:  event.Subject,
			StartTime:       event.Start,
			EndTime:         event.End,
			Attendee:        record.DisplayName,
			Email:           record.Email,
			JoinTime:        record.JoinTime,
			LeaveTime:       record.LeaveTime,
			DurationSeconds: record.DurationSeconds,
		})
	}
	return rows
}

// DurationMinutes renders the attended duration in whole minutes, rounded
// down. An unknown duration renders as an empty string rather than zero.
func (r ExportRow) DurationMinutes() string {
	if r.DurationSeconds == nil {
		return ""
	}
	return strconv.Itoa(*r.DurationSeconds / 60)
}

// Record returns the row in ExportHeader column order.
func (r ExportRow) Record() []string {
	return []string{
		r.MeetingSubject,
		r.StartTime,
		r.EndTime,
		r.Attendee,
		r.Email,
		r.JoinTime,
		r.LeaveTime,
		r.DurationMinutes(),
	}
}
