// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected time.Duration
	}{
		{"plural days with space", "30 days", 30 * Day},
		{"singular day", "1 day", Day},
		{"weeks", "6 weeks", 42 * Day},
		{"months are thirty days", "3 months", 90 * Day},
		{"no space", "2weeks", 14 * Day},
		{"several spaces", "5   days", 5 * Day},
		{"upper case", "4 WEEKS", 28 * Day},
		{"surrounding whitespace", "  12 month  ", 360 * Day},
		{"zero", "0 days", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeRange(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseTimeRange_Invalid(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"unit only", "days"},
		{"number only", "30"},
		{"unsupported unit", "3 years"},
		{"negative", "-3 days"},
		{"fraction", "1.5 weeks"},
		{"trailing text", "3 days ago"},
		{"double plural", "3 dayss"},
		{"overflows duration", "999999999 months"},
		{"overflows int64", "99999999999999999999 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimeRange(tt.expr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTimeRange))
		})
	}
}

func TestNewTimeWindow(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

	for _, expr := range []string{"0 days", "1 day", "6 weeks", "3 months", "120 months"} {
		t.Run(expr, func(t *testing.T) {
			lookback, err := ParseTimeRange(expr)
			require.NoError(t, err)

			window := NewTimeWindow(now, lookback)

			assert.False(t, window.Start.After(window.End), "start must not be after end")
			assert.True(t, window.End.Equal(now), "end must be now")
			assert.Equal(t, time.UTC, window.End.Location())
			assert.Equal(t, lookback, window.Duration())
		})
	}
}

func TestNewTimeWindow_EndsNearWallClock(t *testing.T) {
	before := time.Now()
	window := NewTimeWindow(time.Now(), 30*Day)
	after := time.Now()

	assert.False(t, window.End.Before(before))
	assert.False(t, window.End.After(after))
}

func TestNewTimeWindow_NegativeLookbackIsClamped(t *testing.T) {
	now := time.Now()
	window := NewTimeWindow(now, -time.Hour)

	assert.True(t, window.Start.Equal(window.End))
}
