// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants holds shared constants for the availability service.
package constants

import "time"

// Computation constraints
const (
	// MaxEventDurationMinutes is the maximum duration of a bookable event in minutes
	MaxEventDurationMinutes = 600

	// MaxRecurrenceExpansions is a safety cap on the number of occurrences a
	// single recurring busy event may expand into within one query window
	MaxRecurrenceExpansions = 366
)

// Fetch behavior
const (
	// DefaultFetchTimeout bounds each per-participant availability fetch
	DefaultFetchTimeout = 10 * time.Second

	// DefaultFetchWorkers is the default concurrency for participant fetches
	DefaultFetchWorkers = 10
)
