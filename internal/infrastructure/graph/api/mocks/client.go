// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/infrastructure/graph/api"
)

// MockClient is a complete mock implementation of the Graph API client
// It embeds the directory, calendar and meeting mocks to provide full API coverage
type MockClient struct {
	AuthenticateFunc func(ctx context.Context) error
	*MockUsersAPI
	*MockCalendarAPI
	*MockMeetingsAPI
}

// NewMockClient creates a new mock client with default implementations
func NewMockClient() *MockClient {
	return &MockClient{
		MockUsersAPI:    &MockUsersAPI{},
		MockCalendarAPI: &MockCalendarAPI{},
		MockMeetingsAPI: &MockMeetingsAPI{},
	}
}

// Authenticate mocks token acquisition
func (m *MockClient) Authenticate(ctx context.Context) error {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx)
	}
	return nil
}

// MockCalendarAPI is a mock implementation of the calendarView collection
type MockCalendarAPI struct {
	// Pages are served in order by the default CalendarView pager
	Pages []api.Page[api.Event]
	// PageErr, when set, is returned instead of the page at index PageErrAt
	PageErr   error
	PageErrAt int

	CalendarViewFunc func(userID string, start, end time.Time) *api.Pager[api.Event]

	// Arguments of the last default CalendarView call
	UserID     string
	Start, End time.Time
	// Calls records the URL of every page fetched by the default pager
	Calls []string
}

// CalendarView mocks the CalendarView API call. Without CalendarViewFunc it
// serves Pages one per fetch, chaining them with synthetic next links.
func (m *MockCalendarAPI) CalendarView(userID string, start, end time.Time) *api.Pager[api.Event] {
	if m.CalendarViewFunc != nil {
		return m.CalendarViewFunc(userID, start, end)
	}

	m.UserID, m.Start, m.End = userID, start, end
	index := 0
	return api.NewPager("page-0", func(ctx context.Context, url string) (*api.Page[api.Event], error) {
		m.Calls = append(m.Calls, url)
		if m.PageErr != nil && index == m.PageErrAt {
			return nil, m.PageErr
		}
		if index >= len(m.Pages) {
			return &api.Page[api.Event]{}, nil
		}
		page := m.Pages[index]
		index++
		if index < len(m.Pages) {
			page.NextLink = pageLink(index)
		}
		return &page, nil
	})
}

func pageLink(index int) string {
	return "page-" + strconv.Itoa(index)
}

// Ensure MockClient implements ClientAPI interface
var _ api.ClientAPI = (*MockClient)(nil)
