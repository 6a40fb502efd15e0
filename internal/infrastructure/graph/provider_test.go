// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/infrastructure/graph/api"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/infrastructure/graph/api/mocks"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/pkg/utils"
)

func TestNewProvider(t *testing.T) {
	client := mocks.NewMockClient()
	provider := NewProvider(client)

	require.NotNil(t, provider)
	assert.Equal(t, client, provider.client)
}

func TestProvider_Authenticate(t *testing.T) {
	client := mocks.NewMockClient()
	client.AuthenticateFunc = func(ctx context.Context) error {
		return domain.NewUnauthorizedError("failed to acquire access token")
	}

	err := NewProvider(client).Authenticate(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeUnauthorized, domain.GetErrorType(err))
}

func TestProvider_ResolveUser(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(*mocks.MockClient)
		expectedID string
		wantErr    bool
	}{
		{
			name: "returns the directory id",
			setupMock: func(m *mocks.MockClient) {
				m.GetUserFunc = func(ctx context.Context, principal string) (*api.User, error) {
					assert.Equal(t, "organizer@example.com", principal)
					return &api.User{ID: "user-1", UserPrincipalName: principal}, nil
				}
			},
			expectedID: "user-1",
		},
		{
			name: "propagates lookup failure",
			setupMock: func(m *mocks.MockClient) {
				m.GetUserFunc = func(ctx context.Context, principal string) (*api.User, error) {
					return nil, domain.NewNotFoundError("graph resource not found")
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockClient()
			tt.setupMock(client)

			id, err := NewProvider(client).ResolveUser(context.Background(), "organizer@example.com")
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestProvider_CalendarView(t *testing.T) {
	client := mocks.NewMockClient()
	client.Pages = []api.Page[api.Event]{
		{Value: []api.Event{
			{
				ID:              "e1",
				Subject:         "Weekly sync",
				Start:           &api.DateTimeTimeZone{DateTime: "2024-03-04T10:00:00.0000000", TimeZone: "UTC"},
				End:             &api.DateTimeTimeZone{DateTime: "2024-03-04T10:30:00.0000000", TimeZone: "UTC"},
				IsOnlineMeeting: true,
				OnlineMeeting:   &api.OnlineMeetingInfo{JoinURL: "https://teams.microsoft.com/l/meetup-join/abc"},
			},
		}},
		{Value: []api.Event{{ID: "e2", Subject: "Lunch"}}},
	}

	window := models.TimeWindow{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
	}

	pager := NewProvider(client).CalendarView("user-1", window)
	assert.Empty(t, client.Calls, "pager is lazy")

	var events []models.CalendarEvent
	for pager.Next(context.Background()) {
		events = append(events, pager.Page()...)
	}

	require.NoError(t, pager.Err())
	assert.Equal(t, 2, pager.Pages())
	assert.Equal(t, "user-1", client.UserID)
	assert.Equal(t, window.Start, client.Start)
	assert.Equal(t, window.End, client.End)
	require.Len(t, events, 2)
	assert.Equal(t, models.CalendarEvent{
		ID:              "e1",
		Subject:         "Weekly sync",
		Start:           "2024-03-04T10:00:00.0000000",
		End:             "2024-03-04T10:30:00.0000000",
		IsOnlineMeeting: true,
		JoinURL:         "https://teams.microsoft.com/l/meetup-join/abc",
	}, events[0])
	assert.Equal(t, models.CalendarEvent{ID: "e2", Subject: "Lunch"}, events[1])
}

func TestProvider_CalendarView_PageFailure(t *testing.T) {
	pageErr := errors.New("graph is unavailable")
	client := mocks.NewMockClient()
	client.Pages = []api.Page[api.Event]{
		{Value: []api.Event{{ID: "e1"}}},
		{Value: []api.Event{{ID: "e2"}}},
		{Value: []api.Event{{ID: "e3"}}},
	}
	client.PageErr = pageErr
	client.PageErrAt = 1

	pager := NewProvider(client).CalendarView("user-1", models.TimeWindow{})

	var ids []string
	for pager.Next(context.Background()) {
		for _, e := range pager.Page() {
			ids = append(ids, e.ID)
		}
	}

	assert.Equal(t, []string{"e1"}, ids)
	assert.ErrorIs(t, pager.Err(), pageErr)
	assert.Len(t, client.Calls, 2)
}

func TestProvider_FindOnlineMeetings(t *testing.T) {
	client := mocks.NewMockClient()
	client.FindOnlineMeetingsFunc = func(ctx context.Context, userID, joinURL string) ([]api.OnlineMeeting, error) {
		return []api.OnlineMeeting{
			{ID: "m1", Subject: "Weekly sync", JoinWebURL: "https://join/web"},
			{ID: "m2", JoinURL: "https://join/legacy"},
		}, nil
	}

	meetings, err := NewProvider(client).FindOnlineMeetings(context.Background(), "user-1", "https://join/web")
	require.NoError(t, err)
	assert.Equal(t, []models.OnlineMeeting{
		{ID: "m1", Subject: "Weekly sync", JoinURL: "https://join/web"},
		{ID: "m2", JoinURL: "https://join/legacy"},
	}, meetings)
}

func TestProvider_ListAttendanceReports(t *testing.T) {
	client := mocks.NewMockClient()
	client.ListAttendanceReportsFunc = func(ctx context.Context, userID, meetingID string) ([]api.AttendanceReport, error) {
		assert.Equal(t, "m1", meetingID)
		return []api.AttendanceReport{{
			ID:                    "r1",
			MeetingStartDateTime:  "2024-03-04T10:00:05Z",
			MeetingEndDateTime:    "2024-03-04T10:31:00Z",
			TotalParticipantCount: 4,
		}}, nil
	}

	reports, err := NewProvider(client).ListAttendanceReports(context.Background(), "user-1", "m1")
	require.NoError(t, err)
	assert.Equal(t, []models.AttendanceReport{{
		ID:                    "r1",
		MeetingStart:          "2024-03-04T10:00:05Z",
		MeetingEnd:            "2024-03-04T10:31:00Z",
		TotalParticipantCount: 4,
	}}, reports)
}

func TestProvider_ListAttendanceRecords(t *testing.T) {
	tests := []struct {
		name     string
		record   api.AttendanceRecord
		expected models.AttendanceRecord
	}{
		{
			name: "top-level times",
			record: api.AttendanceRecord{
				EmailAddress:                     "alice@example.com",
				Role:                             "Organizer",
				Identity:                         &api.Identity{DisplayName: "Alice"},
				JoinDateTime:                     "2024-03-04T10:00:05Z",
				LeaveDateTime:                    "2024-03-04T10:02:10Z",
				TotalAttendanceDurationInSeconds: utils.IntPtr(125),
			},
			expected: models.AttendanceRecord{
				DisplayName:     "Alice",
				Email:           "alice@example.com",
				Role:            "Organizer",
				JoinTime:        "2024-03-04T10:00:05Z",
				LeaveTime:       "2024-03-04T10:02:10Z",
				DurationSeconds: utils.IntPtr(125),
			},
		},
		{
			name: "times from first and last interval",
			record: api.AttendanceRecord{
				EmailAddress: "bob@example.com",
				Identity:     &api.Identity{DisplayName: "Bob"},
				AttendanceIntervals: []api.AttendanceInterval{
					{JoinDateTime: "2024-03-04T10:01:00Z", LeaveDateTime: "2024-03-04T10:05:00Z"},
					{JoinDateTime: "2024-03-04T10:10:00Z", LeaveDateTime: "2024-03-04T10:20:00Z"},
				},
				TotalAttendanceDurationInSeconds: utils.IntPtr(840),
			},
			expected: models.AttendanceRecord{
				DisplayName:     "Bob",
				Email:           "bob@example.com",
				JoinTime:        "2024-03-04T10:01:00Z",
				LeaveTime:       "2024-03-04T10:20:00Z",
				DurationSeconds: utils.IntPtr(840),
			},
		},
		{
			name:     "anonymous attendee without duration",
			record:   api.AttendanceRecord{},
			expected: models.AttendanceRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockClient()
			client.ListAttendanceRecordsFunc = func(ctx context.Context, userID, meetingID, reportID string) ([]api.AttendanceRecord, error) {
				return []api.AttendanceRecord{tt.record}, nil
			}

			records, err := NewProvider(client).ListAttendanceRecords(context.Background(), "user-1", "m1", "r1")
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.expected, records[0])
		})
	}
}

func TestProvider_PropagatesMeetingErrors(t *testing.T) {
	boom := domain.NewUnavailableError("graph is unavailable")
	client := mocks.NewMockClient()
	client.FindOnlineMeetingsFunc = func(ctx context.Context, userID, joinURL string) ([]api.OnlineMeeting, error) {
		return nil, boom
	}
	client.ListAttendanceReportsFunc = func(ctx context.Context, userID, meetingID string) ([]api.AttendanceReport, error) {
		return nil, boom
	}
	client.ListAttendanceRecordsFunc = func(ctx context.Context, userID, meetingID, reportID string) ([]api.AttendanceRecord, error) {
		return nil, boom
	}
	provider := NewProvider(client)
	ctx := context.Background()

	meetings, err := provider.FindOnlineMeetings(ctx, "u", "j")
	assert.Nil(t, meetings)
	assert.ErrorIs(t, err, boom)

	reports, err := provider.ListAttendanceReports(ctx, "u", "m")
	assert.Nil(t, reports)
	assert.ErrorIs(t, err, boom)

	records, err := provider.ListAttendanceRecords(ctx, "u", "m", "r")
	assert.Nil(t, records)
	assert.ErrorIs(t, err, boom)
}
