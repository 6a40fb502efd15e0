// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

// Principal is the user account whose calendar and attendance are exported.
type Principal struct {
	// Name is the human-readable identifier, usually the user principal name.
	Name string `json:"name"`
	// ID is the opaque directory identifier used by every later lookup.
	ID string `json:"id"`
}

// CalendarEvent is one entry of the principal's calendar view. Start and End
// are kept exactly as the calendar service returned them.
type CalendarEvent struct {
	ID              string `json:"id"`
	Subject         string `json:"subject"`
	Start           string `json:"start"`
	End             string `json:"end"`
	IsOnlineMeeting bool   `json:"is_online_meeting"`
	JoinURL         string `json:"join_url,omitempty"`
}

// HasJoinableMeeting reports whether the event can be correlated with an
// online meeting resource.
func (e CalendarEvent) HasJoinableMeeting() bool {
	return e.IsOnlineMeeting && e.JoinURL != ""
}

// OnlineMeeting is the collaboration-service meeting resource behind a join URL.
type OnlineMeeting struct {
	ID      string `json:"id"`
	Subject string `json:"subject,omitempty"`
	JoinURL string `json:"join_url"`
}

// AttendanceReport is one batch of attendance data for a meeting occurrence.
type AttendanceReport struct {
	ID                    string `json:"id"`
	MeetingStart          string `json:"meeting_start,omitempty"`
	MeetingEnd            string `json:"meeting_end,omitempty"`
	TotalParticipantCount int    `json:"total_participant_count"`
}

// AttendanceRecord is one attendee's presence within a report. A nil
// DurationSeconds means the service did not report a duration.
type AttendanceRecord struct {
	DisplayName     string `json:"display_name"`
	Email           string `json:"email"`
	Role            string `json:"role,omitempty"`
	JoinTime        string `json:"join_time"`
	LeaveTime       string `json:"leave_time"`
	DurationSeconds *int   `json:"duration_seconds,omitempty"`
}
