// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-meeting-attendance/internal/infrastructure/graph/api"
)

// MockUsersAPI is a mock implementation of Graph directory operations for testing
type MockUsersAPI struct {
	GetUserFunc func(ctx context.Context, principal string) (*api.User, error)
}

// GetUser mocks the GetUser API call
func (m *MockUsersAPI) GetUser(ctx context.Context, principal string) (*api.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, principal)
	}
	// Default mock response
	return &api.User{
		ID:                "test-user-id",
		DisplayName:       "Test User",
		Mail:              principal,
		UserPrincipalName: principal,
	}, nil
}
