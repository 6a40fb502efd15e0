// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package export

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain/models"
)

// DefaultPath is the artifact written when no output path is given
const DefaultPath = "meeting_attendance.csv"

// CSVExporter writes attendance rows to a comma-separated file
type CSVExporter struct {
	Path string
}

// NewCSVExporter creates an exporter for path, falling back to DefaultPath
func NewCSVExporter(path string) *CSVExporter {
	if path == "" {
		path = DefaultPath
	}
	return &CSVExporter{Path: path}
}

// Ensure CSVExporter implements Exporter
var _ domain.Exporter = (*CSVExporter)(nil)

// Export truncates the artifact and writes the header followed by rows.
// The header is written even when rows is empty.
func (e *CSVExporter) Export(ctx context.Context, rows []models.ExportRow) error {
	f, err := os.Create(e.Path)
	if err != nil {
		return domain.NewInternalError("failed to create export file", err)
	}

	if err := WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return domain.NewInternalError("failed to write export file", err)
	}
	if err := f.Close(); err != nil {
		return domain.NewInternalError("failed to close export file", err)
	}

	slog.InfoContext(ctx, "wrote attendance export",
		"path", e.Path,
		"rows", len(rows))
	return nil
}

// WriteCSV writes the header and rows to w, terminating lines with CRLF
func WriteCSV(w io.Writer, rows []models.ExportRow) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(models.ExportHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
