// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Time range units accepted by ParseTimeRange
const (
	UnitDay   = "day"
	UnitWeek  = "week"
	UnitMonth = "month"
)

// Day is the length of one calendar day in the lookback window. A month is
// always DaysPerMonth days, never a calendar month.
const (
	Day          = 24 * time.Hour
	DaysPerMonth = 30
)

// ErrInvalidTimeRange is returned for expressions outside the accepted grammar.
var ErrInvalidTimeRange = errors.New("invalid time range format")

var timeRangePattern = regexp.MustCompile(`^(\d+)\s*(day|week|month)s?$`)

// TimeWindow is the [Start, End] interval that calendar events are fetched for.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeWindow returns the window that ends at now and spans the lookback duration.
// Negative durations are clamped to zero so that Start never falls after End.
func NewTimeWindow(now time.Time, lookback time.Duration) TimeWindow {
	if lookback < 0 {
		lookback = 0
	}
	end := now.UTC()
	return TimeWindow{
		Start: end.Add(-lookback),
		End:   end,
	}
}

// Duration returns the length of the window.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// ParseTimeRange parses expressions such as "30 days", "6 weeks" or "3month".
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseTimeRange(expr string) (time.Duration, error) {
	normalized := strings.ToLower(strings.TrimSpace(expr))
	match := timeRangePattern.FindStringSubmatch(normalized)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeRange, expr)
	}

	value, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeRange, expr)
	}

	var unit time.Duration
	switch match[2] {
	case UnitDay:
		unit = Day
	case UnitWeek:
		unit = 7 * Day
	case UnitMonth:
		unit = DaysPerMonth * Day
	}

	if value > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidTimeRange, expr)
	}
	return time.Duration(value) * unit, nil
}
