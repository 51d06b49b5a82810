// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package availability assembles a participant's stored schedule and busy
// calendar into the per-computation view the slot engine consumes.
package availability

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-availability-service/pkg/constants"
)

// StoreProvider implements domain.AvailabilityProvider on top of the schedule
// and calendar repositories. Recurring busy events are expanded into concrete
// intervals within the requested range.
type StoreProvider struct {
	schedules domain.ScheduleRepository
	calendars domain.CalendarRepository
}

// NewStoreProvider creates a provider backed by the given repositories.
func NewStoreProvider(schedules domain.ScheduleRepository, calendars domain.CalendarRepository) *StoreProvider {
	return &StoreProvider{
		schedules: schedules,
		calendars: calendars,
	}
}

// GetAvailability returns the participant's working hours, timezone, and the
// busy intervals overlapping [rangeStart, rangeEnd). A participant without a
// stored schedule is a not-found error; a busy event whose recurrence rule
// fails to parse is skipped with a warning rather than failing the whole
// computation.
func (p *StoreProvider) GetAvailability(ctx context.Context, participantUID string, rangeStart, rangeEnd time.Time) (*models.ParticipantAvailability, error) {
	if participantUID == "" {
		return nil, domain.NewValidationError("participant UID is required")
	}
	if !rangeStart.Before(rangeEnd) {
		return nil, domain.NewValidationError("range start must be before range end")
	}

	schedule, err := p.schedules.GetSchedule(ctx, participantUID)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return nil, domain.NewNotFoundError(
				fmt.Sprintf("no schedule stored for participant '%s'", participantUID),
				domain.ErrScheduleNotFound)
		}
		return nil, err
	}

	events, err := p.calendars.ListBusyEvents(ctx, participantUID)
	if err != nil {
		return nil, err
	}

	intervals := make([]models.BusyInterval, 0, len(events))
	for _, event := range events {
		occurrences := expandBusyEvent(ctx, event, rangeStart, rangeEnd)
		intervals = append(intervals, occurrences...)
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].StartTime.Before(intervals[j].StartTime)
	})

	return &models.ParticipantAvailability{
		ParticipantUID: participantUID,
		Timezone:       schedule.Timezone,
		WorkingHours:   schedule.WorkingHours,
		BusyIntervals:  intervals,
	}, nil
}

// expandBusyEvent turns one stored event into the concrete busy intervals
// that overlap [rangeStart, rangeEnd). Non-recurring events contribute at
// most one interval; recurring events repeat with the base event's duration
// at each occurrence of the rule, capped at MaxRecurrenceExpansions.
func expandBusyEvent(ctx context.Context, event *models.BusyEvent, rangeStart, rangeEnd time.Time) []models.BusyInterval {
	duration := event.EndTime.Sub(event.StartTime)
	if duration <= 0 {
		slog.WarnContext(ctx, "skipping busy event with non-positive duration",
			"event_uid", event.UID, "participant", event.ParticipantUID)
		return nil
	}

	if event.Recurrence == "" {
		if overlaps(event.StartTime, event.EndTime, rangeStart, rangeEnd) {
			return []models.BusyInterval{{StartTime: event.StartTime, EndTime: event.EndTime}}
		}
		return nil
	}

	rule, err := rrule.StrToRRule(event.Recurrence)
	if err != nil {
		slog.WarnContext(ctx, "skipping busy event with invalid recurrence rule",
			logging.ErrKey, err, "event_uid", event.UID, "participant", event.ParticipantUID)
		return nil
	}
	rule.DTStart(event.StartTime)

	// Occurrences starting before the range can still reach into it, so the
	// expansion window opens one event duration early.
	starts := rule.Between(rangeStart.Add(-duration).In(event.StartTime.Location()),
		rangeEnd.In(event.StartTime.Location()), true)
	if len(starts) > constants.MaxRecurrenceExpansions {
		slog.WarnContext(ctx, "truncating recurrence expansion",
			"event_uid", event.UID, "cap", constants.MaxRecurrenceExpansions)
		starts = starts[:constants.MaxRecurrenceExpansions]
	}

	intervals := make([]models.BusyInterval, 0, len(starts))
	for _, start := range starts {
		end := start.Add(duration)
		if overlaps(start, end, rangeStart, rangeEnd) {
			intervals = append(intervals, models.BusyInterval{StartTime: start, EndTime: end})
		}
	}
	return intervals
}

// overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
