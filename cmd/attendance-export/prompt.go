// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain/models"
)

const (
	principalPrompt = "Enter the target user's UPN (e.g., user@example.com): "
	timeRangePrompt = "Enter the time range (e.g., 30 days, 6 weeks, 3 months): "
	invalidRangeMsg = "Invalid time range format. Please use formats like '30 days', '6 weeks', or '3 months'."
)

// errInputClosed is returned when stdin ends before a value was entered
var errInputClosed = errors.New("input closed before a value was entered")

// prompter reads answers line by line from an interactive input
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// readLine prints label and returns the trimmed next line
func (p *prompter) readLine(label string) (string, error) {
	_, _ = color.New(color.FgCyan).Fprint(p.out, label)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", errInputClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askPrincipal prompts until a non-empty principal name is entered
func (p *prompter) askPrincipal() (string, error) {
	for {
		principal, err := p.readLine(principalPrompt)
		if err != nil {
			return "", err
		}
		if principal != "" {
			return principal, nil
		}
	}
}

// askTimeRange prompts until a valid time range expression is entered
func (p *prompter) askTimeRange() (time.Duration, error) {
	for {
		expr, err := p.readLine(timeRangePrompt)
		if err != nil {
			return 0, err
		}
		lookback, err := models.ParseTimeRange(expr)
		if err == nil {
			return lookback, nil
		}
		_, _ = color.New(color.FgYellow).Fprintln(p.out, invalidRangeMsg)
	}
}

// resolveInputs returns the principal and lookback from flags, prompting for
// whatever was not given. An invalid --range is an error rather than a prompt.
func resolveInputs(f flags, p *prompter) (string, time.Duration, error) {
	principal := strings.TrimSpace(f.Principal)
	if principal == "" {
		var err error
		if principal, err = p.askPrincipal(); err != nil {
			return "", 0, fmt.Errorf("reading principal: %w", err)
		}
	}

	if f.TimeRange != "" {
		lookback, err := models.ParseTimeRange(f.TimeRange)
		if err != nil {
			return "", 0, fmt.Errorf("invalid --range: %w", err)
		}
		return principal, lookback, nil
	}

	lookback, err := p.askTimeRange()
	if err != nil {
		return "", 0, fmt.Errorf("reading time range: %w", err)
	}
	return principal, lookback, nil
}
