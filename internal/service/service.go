// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import "errors"

type Service interface {
	ServiceReady() bool
}

// ErrFatal marks a failure that ends the run before any artifact is written.
// It has already been logged when it reaches the caller.
var ErrFatal = errors.New("fatal attendance export failure")
