// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-availability-service/pkg/constants"
)

// SlotGenerator produces the candidate start instants for one participant on
// one calendar day. It is stateless and safe for concurrent use.
type SlotGenerator struct{}

// NewSlotGenerator creates a new SlotGenerator
func NewSlotGenerator() *SlotGenerator {
	return &SlotGenerator{}
}

// GenerateParams are the inputs for one candidate generation run.
type GenerateParams struct {
	// TargetDate names the calendar day; only its year, month, and day are
	// used, re-anchored in Timezone.
	TargetDate time.Time
	// Timezone is the participant's IANA timezone identifier.
	Timezone string
	// WorkingHours are the participant's availability blocks.
	WorkingHours []models.WorkingHours
	// DurationMinutes is the bookable event length.
	DurationMinutes int
	// BufferMinutes pads the gap between consecutive candidate starts.
	BufferMinutes int
	// MinimumNoticeMinutes is the lead time below which candidates are discarded.
	MinimumNoticeMinutes int
	// Now is the reference instant for the notice floor.
	Now time.Time
}

func (p *GenerateParams) validate() error {
	if p.DurationMinutes <= 0 {
		return domain.NewValidationError(
			fmt.Sprintf("event duration must be positive, got %d", p.DurationMinutes))
	}
	if p.DurationMinutes > constants.MaxEventDurationMinutes {
		return domain.NewValidationError(
			fmt.Sprintf("event duration %d exceeds maximum %d", p.DurationMinutes, constants.MaxEventDurationMinutes))
	}
	if p.BufferMinutes < 0 {
		return domain.NewValidationError(
			fmt.Sprintf("slot buffer must not be negative, got %d", p.BufferMinutes))
	}
	if p.MinimumNoticeMinutes < 0 {
		return domain.NewValidationError(
			fmt.Sprintf("minimum notice must not be negative, got %d", p.MinimumNoticeMinutes))
	}
	for i := range p.WorkingHours {
		if err := p.WorkingHours[i].Validate(); err != nil {
			return domain.NewValidationError(fmt.Sprintf("working hours block %d is malformed", i), err)
		}
	}
	return nil
}

// GenerateCandidates returns the ordered candidate start instants for the
// given day. The result is ascending and free of duplicate instants. A day
// whose weekday no block allows yields an empty result, as does a window
// shorter than the event duration.
func (g *SlotGenerator) GenerateCandidates(params GenerateParams) ([]time.Time, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(params.Timezone)
	if err != nil {
		return nil, domain.NewValidationError(
			fmt.Sprintf("unknown timezone %q", params.Timezone), err)
	}

	year, month, day := params.TargetDate.Date()
	weekday := time.Date(year, month, day, 0, 0, 0, 0, loc).Weekday()
	earliest := params.Now.Add(time.Duration(params.MinimumNoticeMinutes) * time.Minute)
	step := params.DurationMinutes + params.BufferMinutes

	var candidates []time.Time
	seen := make(map[int64]bool)
	for _, block := range params.WorkingHours {
		if !block.AllowsWeekday(weekday) {
			continue
		}
		for minute := block.StartMinute; minute+params.DurationMinutes <= block.EndMinute; minute += step {
			// Wall-clock anchoring: on DST transition days the minute-of-day
			// offsets still land on the local clock times the schedule names.
			candidate := time.Date(year, month, day, 0, minute, 0, 0, loc)
			if candidate.Before(earliest) {
				continue
			}
			if seen[candidate.UnixNano()] {
				continue
			}
			seen[candidate.UnixNano()] = true
			candidates = append(candidates, candidate)
		}
	}

	// Blocks may arrive in any order; the contract is ascending output.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Before(candidates[j])
	})

	return candidates, nil
}
