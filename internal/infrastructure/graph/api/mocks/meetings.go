// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/infrastructure/graph/api"
)

// MockMeetingsAPI is a mock implementation of Graph online meeting operations for testing
type MockMeetingsAPI struct {
	FindOnlineMeetingsFunc    func(ctx context.Context, userID, joinURL string) ([]api.OnlineMeeting, error)
	ListAttendanceReportsFunc func(ctx context.Context, userID, meetingID string) ([]api.AttendanceReport, error)
	ListAttendanceRecordsFunc func(ctx context.Context, userID, meetingID, reportID string) ([]api.AttendanceRecord, error)
}

// FindOnlineMeetings mocks the FindOnlineMeetings API call
func (m *MockMeetingsAPI) FindOnlineMeetings(ctx context.Context, userID, joinURL string) ([]api.OnlineMeeting, error) {
	if m.FindOnlineMeetingsFunc != nil {
		return m.FindOnlineMeetingsFunc(ctx, userID, joinURL)
	}
	return []api.OnlineMeeting{}, nil
}

// ListAttendanceReports mocks the ListAttendanceReports API call
func (m *MockMeetingsAPI) ListAttendanceReports(ctx context.Context, userID, meetingID string) ([]api.AttendanceReport, error) {
	if m.ListAttendanceReportsFunc != nil {
		return m.ListAttendanceReportsFunc(ctx, userID, meetingID)
	}
	return []api.AttendanceReport{}, nil
}

// ListAttendanceRecords mocks the ListAttendanceRecords API call
func (m *MockMeetingsAPI) ListAttendanceRecords(ctx context.Context, userID, meetingID, reportID string) ([]api.AttendanceRecord, error) {
	if m.ListAttendanceRecordsFunc != nil {
		return m.ListAttendanceRecordsFunc(ctx, userID, meetingID, reportID)
	}
	return []api.AttendanceRecord{}, nil
}
