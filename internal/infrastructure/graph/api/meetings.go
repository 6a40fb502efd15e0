// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// OnlineMeeting represents a Teams online meeting resource
type OnlineMeeting struct {
	ID         string `json:"id"`
	Subject    string `json:"subject"`
	JoinWebURL string `json:"joinWebUrl"`
	// JoinURL is the deprecated alias of JoinWebURL still returned by some tenants
	JoinURL string `json:"joinUrl"`
}

// AttendanceReport represents a meetingAttendanceReport
type AttendanceReport struct {
	ID                    string `json:"id"`
	MeetingStartDateTime  string `json:"meetingStartDateTime"`
	MeetingEndDateTime    string `json:"meetingEndDateTime"`
	TotalParticipantCount int    `json:"totalParticipantCount"`
}

// AttendanceRecord represents one attendee of an attendance report
type AttendanceRecord struct {
	ID                               string               `json:"id"`
	EmailAddress                     string               `json:"emailAddress"`
	Role                             string               `json:"role"`
	Identity                         *Identity            `json:"identity"`
	JoinDateTime                     string               `json:"joinDateTime"`
	LeaveDateTime                    string               `json:"leaveDateTime"`
	TotalAttendanceDurationInSeconds *int                 `json:"totalAttendanceDurationInSeconds"`
	AttendanceIntervals              []AttendanceInterval `json:"attendanceIntervals"`
}

// Identity is the participant identity of an attendance record
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// AttendanceInterval is one join/leave span of an attendee
type AttendanceInterval struct {
	JoinDateTime      string `json:"joinDateTime"`
	LeaveDateTime     string `json:"leaveDateTime"`
	DurationInSeconds *int   `json:"durationInSeconds"`
}

// FindOnlineMeetings returns the user's online meetings whose join URL equals joinURL
func (c *Client) FindOnlineMeetings(ctx context.Context, userID, joinURL string) ([]OnlineMeeting, error) {
	query := url.Values{}
	query.Set("$filter", fmt.Sprintf("JoinWebUrl eq '%s'", escapeODataString(joinURL)))

	var page Page[OnlineMeeting]
	if err := c.getJSON(ctx, c.resourceURL(onlineMeetingsPath(userID), query), &page); err != nil {
		return nil, err
	}
	return page.Value, nil
}

// ListAttendanceReports returns the attendance reports of a meeting
func (c *Client) ListAttendanceReports(ctx context.Context, userID, meetingID string) ([]AttendanceReport, error) {
	path := onlineMeetingsPath(userID) + "/" + url.PathEscape(meetingID) + "/attendanceReports"

	var page Page[AttendanceReport]
	if err := c.getJSON(ctx, c.resourceURL(path, nil), &page); err != nil {
		return nil, err
	}
	if page.NextLink != "" {
		slog.WarnContext(ctx, "attendance reports have more pages than the first one, only the first page is exported",
			"meeting_id", meetingID)
	}
	return page.Value, nil
}

// ListAttendanceRecords returns the attendee records of one attendance report
func (c *Client) ListAttendanceRecords(ctx context.Context, userID, meetingID, reportID string) ([]AttendanceRecord, error) {
	path := onlineMeetingsPath(userID) + "/" + url.PathEscape(meetingID) +
		"/attendanceReports/" + url.PathEscape(reportID) + "/attendanceRecords"

	var page Page[AttendanceRecord]
	if err := c.getJSON(ctx, c.resourceURL(path, nil), &page); err != nil {
		return nil, err
	}
	if page.NextLink != "" {
		slog.WarnContext(ctx, "attendance records have more pages than the first one, only the first page is exported",
			"meeting_id", meetingID,
			"report_id", reportID)
	}
	return page.Value, nil
}

func onlineMeetingsPath(userID string) string {
	return "/users/" + url.PathEscape(userID) + "/onlineMeetings"
}

// escapeODataString doubles single quotes, the only escape an OData string literal needs
func escapeODataString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
