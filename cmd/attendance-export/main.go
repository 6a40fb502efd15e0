// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the attendance export CLI that walks a user's calendar and
// writes the attendance of every online meeting in a time window to a CSV file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/infrastructure/export"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/infrastructure/graph"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/infrastructure/graph/api"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/logging"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/service"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/pkg/utils"
)

func main() {
	loadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCommand(os.Stdin, os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		// Fatal run failures were already logged by the service.
		if !errors.Is(err, service.ErrFatal) {
			slog.With(logging.ErrKey, err).Error("attendance export failed")
		}
		os.Exit(1)
	}
}

// newRootCommand builds the CLI reading prompts from in and writing prompts,
// the completion message and the optional summary to out.
func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	var f flags
	otelShutdown := func(context.Context) error { return nil }

	cmd := &cobra.Command{
		Use:   "attendance-export",
		Short: "Export Teams meeting attendance for a user",
		Long: `attendance-export reads a user's calendar for a time window, follows every
online meeting to its attendance reports and writes one CSV row per attendee.

The service identity is read from AZURE_TENANT_ID, AZURE_CLIENT_ID and
AZURE_CLIENT_SECRET, optionally through a .env file.

Example usage:
  attendance-export                                  # prompt for user and range
  attendance-export --upn user@example.com --range "30 days"
  attendance-export --upn user@example.com --range "2 weeks" -o out.csv --summary`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
			if f.Debug {
				if err := os.Setenv(constants.EnvLogLevel, "debug"); err != nil {
					return fmt.Errorf("error setting log level: %w", err)
				}
			}

			// Exporters stay disabled unless OTEL_*_EXPORTER selects otlp
			shutdown, err := utils.SetupOTelSDK(cmd.Context())
			if err != nil {
				return fmt.Errorf("error setting up OpenTelemetry: %w", err)
			}
			otelShutdown = shutdown

			logging.InitStructureLogConfig()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() {
				// flush spans and logs even when the run was interrupted
				if shutdownErr := otelShutdown(context.WithoutCancel(cmd.Context())); shutdownErr != nil {
					slog.With(logging.ErrKey, shutdownErr).Warn("error shutting down OpenTelemetry")
				}
			}()
			return run(cmd.Context(), f, in, out)
		},
	}

	cmd.Flags().BoolVarP(&f.Debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().StringVar(&f.Principal, "upn", "", "user principal name to export (prompted when empty)")
	cmd.Flags().StringVar(&f.TimeRange, "range", "", `time range such as "30 days", "6 weeks" or "3 months" (prompted when empty)`)
	cmd.Flags().StringVarP(&f.Output, "output", "o", export.DefaultPath, "path of the CSV file to write")
	cmd.Flags().BoolVar(&f.Summary, "summary", false, "print a per-meeting summary table after the export")

	return cmd
}

// run wires the Graph client, the CSV exporter and the attendance service and
// performs one export.
func run(ctx context.Context, f flags, in io.Reader, out io.Writer) error {
	env, err := parseEnv()
	if err != nil {
		return err
	}
	if !env.Graph.IsConfigured() {
		return errors.New("graph is not configured: " + strings.Join(missingGraphSettings(env.Graph), ", ") + " must be set")
	}
	env.Graph.logConfigured()

	principal, lookback, err := resolveInputs(f, newPrompter(in, out))
	if err != nil {
		return err
	}
	window := models.NewTimeWindow(time.Now(), lookback)

	ctx = logging.AppendCtx(ctx, slog.String("run_id", uuid.NewString()))
	slog.InfoContext(ctx, "starting attendance export",
		"principal", principal,
		"start", window.Start,
		"end", window.End,
		"output", f.Output)

	exporter := export.NewCSVExporter(f.Output)
	attendanceService := service.NewAttendanceService(
		graph.NewProvider(api.NewClient(env.Graph.ToAPIConfig())),
		exporter,
	)

	rows, err := attendanceService.Run(ctx, principal, window)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Attendance data saved to '%s' (%d rows)\n", exporter.Path, len(rows))
	if f.Summary {
		return export.RenderSummary(out, rows)
	}
	return nil
}

func missingGraphSettings(g GraphConfig) []string {
	var missing []string
	if g.TenantID == "" {
		missing = append(missing, constants.EnvTenantID)
	}
	if g.ClientID == "" {
		missing = append(missing, constants.EnvClientID)
	}
	if g.ClientSecret == "" {
		missing = append(missing, constants.EnvClientSecret)
	}
	return missing
}
