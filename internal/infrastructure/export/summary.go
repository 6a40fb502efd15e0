// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package export

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/pkg/utils"
)

// SummaryHeader is the header of the per-meeting summary table
var SummaryHeader = []string{"Meeting Subject", "Start Time", "Attendees", "Total Minutes"}

// MeetingSummary aggregates the rows of one meeting occurrence
type MeetingSummary struct {
	Subject      string
	StartTime    string
	Attendees    int
	TotalSeconds int
}

// TotalMinutes returns the summed attendance in whole minutes
func (s MeetingSummary) TotalMinutes() int {
	return s.TotalSeconds / 60
}

// Summarize groups rows by meeting subject and start time, in first-seen order.
// Rows without a duration count as attendees but add no time.
func Summarize(rows []models.ExportRow) []MeetingSummary {
	type key struct{ subject, start string }

	index := make(map[key]int)
	summaries := []MeetingSummary{}
	for _, row := range rows {
		k := key{row.MeetingSubject, row.StartTime}
		i, ok := index[k]
		if !ok {
			i = len(summaries)
			index[k] = i
			summaries = append(summaries, MeetingSummary{Subject: row.MeetingSubject, StartTime: row.StartTime})
		}
		summaries[i].Attendees++
		summaries[i].TotalSeconds += utils.IntValue(row.DurationSeconds)
	}
	return summaries
}

// RenderSummary writes the per-meeting summary of rows as a table
func RenderSummary(w io.Writer, rows []models.ExportRow) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)

	summaries := Summarize(rows)
	data := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		data = append(data, []string{
			s.Subject,
			s.StartTime,
			strconv.Itoa(s.Attendees),
			strconv.Itoa(s.TotalMinutes()),
		})
	}

	table.Header(SummaryHeader)
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
