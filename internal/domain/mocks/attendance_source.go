// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain/models"
)

// MockAttendanceSource implements AttendanceSource for testing
type MockAttendanceSource struct {
	mock.Mock
}

func (m *MockAttendanceSource) Authenticate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAttendanceSource) ResolveUser(ctx context.Context, principal string) (string, error) {
	args := m.Called(ctx, principal)
	return args.String(0), args.Error(1)
}

func (m *MockAttendanceSource) CalendarView(userID string, window models.TimeWindow) domain.EventPager {
	args := m.Called(userID, window)
	return args.Get(0).(domain.EventPager)
}

func (m *MockAttendanceSource) FindOnlineMeetings(ctx context.Context, userID, joinURL string) ([]models.OnlineMeeting, error) {
	args := m.Called(ctx, userID, joinURL)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.([]models.OnlineMeeting), args.Error(1)
}

func (m *MockAttendanceSource) ListAttendanceReports(ctx context.Context, userID, meetingID string) ([]models.AttendanceReport, error) {
	args := m.Called(ctx, userID, meetingID)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.([]models.AttendanceReport), args.Error(1)
}

func (m *MockAttendanceSource) ListAttendanceRecords(ctx context.Context, userID, meetingID, reportID string) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx, userID, meetingID, reportID)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.([]models.AttendanceRecord), args.Error(1)
}

// SliceEventPager serves fixed pages of events. When Fail is set the page at
// index FailAt is replaced by that error and iteration stops.
type SliceEventPager struct {
	Events [][]models.CalendarEvent
	Fail   error
	FailAt int

	index   int
	fetched int
	current []models.CalendarEvent
	err     error
}

// NewSliceEventPager returns a pager over the given pages
func NewSliceEventPager(pages ...[]models.CalendarEvent) *SliceEventPager {
	return &SliceEventPager{Events: pages}
}

func (p *SliceEventPager) Next(ctx context.Context) bool {
	p.current = nil
	if p.err != nil || p.index >= len(p.Events) {
		return false
	}
	if p.Fail != nil && p.index == p.FailAt {
		p.err = p.Fail
		return false
	}
	p.current = p.Events[p.index]
	p.index++
	p.fetched++
	return true
}

func (p *SliceEventPager) Page() []models.CalendarEvent {
	return p.current
}

func (p *SliceEventPager) Pages() int {
	return p.fetched
}

func (p *SliceEventPager) Err() error {
	return p.err
}

// MockExporter implements Exporter for testing
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(ctx context.Context, rows []models.ExportRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

var (
	_ domain.AttendanceSource = (*MockAttendanceSource)(nil)
	_ domain.EventPager       = (*SliceEventPager)(nil)
	_ domain.Exporter         = (*MockExporter)(nil)
)
