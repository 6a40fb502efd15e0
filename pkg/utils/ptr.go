// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package utils

// IntPtr converts an int to a pointer to an int.
func IntPtr(i int) *int {
	return &i
}

// IntValue safely dereferences an int pointer, returning 0 if nil.
// Callers that must tell "unknown" from zero check for nil themselves.
func IntValue(i *int) int {
	if i != nil {
		return *i
	}
	return 0
}
