// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import "time"

type Service interface {
	ServiceReady() bool
}

// ServiceConfig is the configuration for the Services.
type ServiceConfig struct {
	// FetchTimeout bounds each per-participant availability fetch.
	FetchTimeout time.Duration
	// FetchWorkers limits how many participant fetches run concurrently.
	FetchWorkers int
}
