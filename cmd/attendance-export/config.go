// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/infrastructure/graph/api"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/logging"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/pkg/constants"
)

// flags are the command line flags for the attendance export.
type flags struct {
	Debug     bool
	Principal string
	TimeRange string
	Output    string
	Summary   bool
}

// environment are the environment variables for the attendance export.
type environment struct {
	Graph GraphConfig
}

// GraphConfig holds Microsoft Graph configuration
type GraphConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	BaseURL      string
	AuthURL      string
	Timeout      time.Duration
}

// loadDotEnv loads a .env file from the working directory when one exists.
// Variables already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.With(logging.ErrKey, err).Warn("error loading .env file")
	}
}

// parseEnv parses environment variables for the attendance export
func parseEnv() (environment, error) {
	graph, err := NewGraphConfigFromEnv()
	if err != nil {
		return environment{}, err
	}
	return environment{Graph: graph}, nil
}

// NewGraphConfigFromEnv creates a GraphConfig from environment variables
func NewGraphConfigFromEnv() (GraphConfig, error) {
	config := GraphConfig{
		TenantID:     os.Getenv(constants.EnvTenantID),
		ClientID:     os.Getenv(constants.EnvClientID),
		ClientSecret: os.Getenv(constants.EnvClientSecret),
		BaseURL:      os.Getenv(constants.EnvGraphBaseURL),
		AuthURL:      os.Getenv(constants.EnvGraphAuthURL),
	}

	if raw := os.Getenv(constants.EnvGraphTimeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout < 0 {
			return GraphConfig{}, fmt.Errorf("invalid %s %q: expected a non-negative duration such as 30s", constants.EnvGraphTimeout, raw)
		}
		config.Timeout = timeout
	}
	return config, nil
}

// IsConfigured returns true if all required Graph credentials are provided
func (g GraphConfig) IsConfigured() bool {
	return g.TenantID != "" && g.ClientID != "" && g.ClientSecret != ""
}

// ToAPIConfig converts the GraphConfig to an api.Config
func (g GraphConfig) ToAPIConfig() api.Config {
	return api.Config{
		TenantID:     g.TenantID,
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
		BaseURL:      g.BaseURL,
		AuthURL:      g.AuthURL,
		Timeout:      g.Timeout,
	}
}

// logConfigured reports which parts of the Graph configuration are present
// without logging the secret.
func (g GraphConfig) logConfigured() {
	slog.Debug("Graph configuration loaded",
		"tenant_id", g.TenantID,
		"client_id", g.ClientID,
		"has_client_secret", g.ClientSecret != "",
		"base_url", g.BaseURL,
		"auth_url", g.AuthURL,
		"timeout", g.Timeout.String())
}
