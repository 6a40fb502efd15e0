// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/domain"
	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/logging"
)

// User represents a directory user
type User struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

// GetUser looks a user up by user principal name or object ID
func (c *Client) GetUser(ctx context.Context, principal string) (*User, error) {
	ctx = logging.AppendCtx(ctx, slog.String("graph_operation", "get_user"))

	var user User
	if err := c.getJSON(ctx, c.resourceURL("/users/"+url.PathEscape(principal), nil), &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, domain.NewInternalError(fmt.Sprintf("user %q has no id in the response", principal))
	}

	slog.DebugContext(ctx, "retrieved Graph user",
		"user_id", user.ID,
		"user_principal_name", user.UserPrincipalName)

	return &user, nil
}
