// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"time"
)

// SchedulingPolicy determines how per-participant slot sets are merged into
// one offerable list.
type SchedulingPolicy string

const (
	// SchedulingPolicySingle emits the sole participant's slots unchanged.
	SchedulingPolicySingle SchedulingPolicy = "single"

	// SchedulingPolicyCollective keeps only instants every participant offers.
	SchedulingPolicyCollective SchedulingPolicy = "collective"

	// SchedulingPolicyRoundRobin keeps instants any participant offers.
	SchedulingPolicyRoundRobin SchedulingPolicy = "round_robin"
)

// IsValid reports whether the policy is a known variant.
func (p SchedulingPolicy) IsValid() bool {
	switch p {
	case SchedulingPolicySingle, SchedulingPolicyCollective, SchedulingPolicyRoundRobin:
		return true
	}
	return false
}

// ComputationRequest is the single unit of work for the availability engine.
// The engine is stateless: nothing survives between requests.
type ComputationRequest struct {
	EventDurationMinutes int              `json:"event_duration_minutes"`
	TargetDate           time.Time        `json:"target_date"`
	MinimumNoticeMinutes int              `json:"minimum_notice_minutes"`
	SlotBufferMinutes    int              `json:"slot_buffer_minutes,omitempty"`
	Participants         []string         `json:"participants"`
	Policy               SchedulingPolicy `json:"policy"`
}

// Validate checks the request before any participant fetch happens. A failure
// here rejects the whole computation.
func (r *ComputationRequest) Validate() error {
	if r.EventDurationMinutes <= 0 {
		return fmt.Errorf("event duration must be positive, got %d", r.EventDurationMinutes)
	}
	if r.MinimumNoticeMinutes < 0 {
		return fmt.Errorf("minimum notice must not be negative, got %d", r.MinimumNoticeMinutes)
	}
	if r.SlotBufferMinutes < 0 {
		return fmt.Errorf("slot buffer must not be negative, got %d", r.SlotBufferMinutes)
	}
	if r.TargetDate.IsZero() {
		return fmt.Errorf("target date is required")
	}
	if len(r.Participants) == 0 {
		return fmt.Errorf("at least one participant is required")
	}
	seen := make(map[string]bool, len(r.Participants))
	for _, p := range r.Participants {
		if p == "" {
			return fmt.Errorf("participant identifier must not be empty")
		}
		if seen[p] {
			return fmt.Errorf("duplicate participant %q", p)
		}
		seen[p] = true
	}
	if !r.Policy.IsValid() {
		return fmt.Errorf("unknown scheduling policy %q", r.Policy)
	}
	return nil
}

// EffectivePolicy returns the policy the pooler should apply. A multi-party
// policy is meaningless for one participant, so a single-entry participant
// list always resolves to SchedulingPolicySingle.
func (r *ComputationRequest) EffectivePolicy() SchedulingPolicy {
	if len(r.Participants) == 1 {
		return SchedulingPolicySingle
	}
	return r.Policy
}

// ParticipantError records that one participant's availability could not be
// fetched. The computation continues with an empty contribution for them.
type ParticipantError struct {
	Participant string `json:"participant"`
	Err         error  `json:"-"`
}

func (e ParticipantError) Error() string {
	return fmt.Sprintf("participant %s: %v", e.Participant, e.Err)
}

func (e ParticipantError) Unwrap() error {
	return e.Err
}
