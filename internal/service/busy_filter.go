// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"time"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain/models"
)

// BusyFilter removes candidate slots that conflict with busy intervals.
// It is stateless and safe for concurrent use.
type BusyFilter struct{}

// NewBusyFilter creates a new BusyFilter
func NewBusyFilter() *BusyFilter {
	return &BusyFilter{}
}

// FilterConflicts returns the candidates that survive every busy interval,
// preserving the original order. A candidate occupies the half-open range
// [start, start+duration). It is removed when any busy interval overlaps it:
//
//  1. the slot starts during the busy period: start in [busy.start, busy.end);
//  2. the slot ends inside the busy period: end in (busy.start, busy.end);
//  3. the busy period starts inside the slot: busy.start in (start, end).
//
// The conditions are a logical OR, so evaluation order across intervals does
// not affect the result; the scan short-circuits on the first match.
func (f *BusyFilter) FilterConflicts(candidates []time.Time, busy []models.BusyInterval, durationMinutes int) []time.Time {
	if len(busy) == 0 {
		return candidates
	}

	duration := time.Duration(durationMinutes) * time.Minute
	filtered := make([]time.Time, 0, len(candidates))
	for _, slotStart := range candidates {
		if !f.conflicts(slotStart, slotStart.Add(duration), busy) {
			filtered = append(filtered, slotStart)
		}
	}
	return filtered
}

func (f *BusyFilter) conflicts(slotStart, slotEnd time.Time, busy []models.BusyInterval) bool {
	for _, b := range busy {
		// Slot starts during the busy period.
		if !slotStart.Before(b.StartTime) && slotStart.Before(b.EndTime) {
			return true
		}
		// Slot ends inside the busy period.
		if slotEnd.After(b.StartTime) && slotEnd.Before(b.EndTime) {
			return true
		}
		// Busy period starts inside the slot.
		if b.StartTime.After(slotStart) && b.StartTime.Before(slotEnd) {
			return true
		}
	}
	return false
}
