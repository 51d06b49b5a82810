// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"time"
)

// MinutesPerDay is the number of minutes in a calendar day; working-hour
// windows are expressed as minute-of-day offsets in [0, MinutesPerDay].
const MinutesPerDay = 24 * 60

// WorkingHours is one recurring block of availability: the weekdays it applies
// to and the daily window as minute-of-day offsets in the owner's timezone.
type WorkingHours struct {
	Weekdays    []time.Weekday `json:"weekdays"`
	StartMinute int            `json:"start_minute"`
	EndMinute   int            `json:"end_minute"`
}

// Validate checks that the window is well formed.
func (w *WorkingHours) Validate() error {
	if w.StartMinute < 0 || w.StartMinute >= MinutesPerDay {
		return fmt.Errorf("start minute %d out of range [0, %d)", w.StartMinute, MinutesPerDay)
	}
	if w.EndMinute <= w.StartMinute || w.EndMinute > MinutesPerDay {
		return fmt.Errorf("end minute %d out of range (%d, %d]", w.EndMinute, w.StartMinute, MinutesPerDay)
	}
	if len(w.Weekdays) == 0 {
		return fmt.Errorf("no weekdays specified")
	}
	for _, d := range w.Weekdays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday %d", d)
		}
	}
	return nil
}

// AllowsWeekday reports whether the block applies on the given weekday.
func (w *WorkingHours) AllowsWeekday(day time.Weekday) bool {
	for _, d := range w.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// ParticipantSchedule is the key-value store representation of a participant's
// recurring availability.
type ParticipantSchedule struct {
	ParticipantUID string         `json:"participant_uid"`
	Timezone       string         `json:"timezone"`
	WorkingHours   []WorkingHours `json:"working_hours"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
}

// Validate checks the schedule's timezone and every working-hour block.
func (s *ParticipantSchedule) Validate() error {
	if s.ParticipantUID == "" {
		return fmt.Errorf("participant UID is required")
	}
	if s.Timezone == "" {
		return fmt.Errorf("timezone is required")
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", s.Timezone, err)
	}
	if len(s.WorkingHours) == 0 {
		return fmt.Errorf("no working hours specified")
	}
	for i := range s.WorkingHours {
		if err := s.WorkingHours[i].Validate(); err != nil {
			return fmt.Errorf("working hours block %d: %w", i, err)
		}
	}
	return nil
}

// BusyInterval is a half-open time range [StartTime, EndTime) during which a
// participant is unavailable. Intervals come from an external calendar source
// and are read-only to the engine.
type BusyInterval struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Validate checks that the interval has positive length.
func (b *BusyInterval) Validate() error {
	if !b.StartTime.Before(b.EndTime) {
		return fmt.Errorf("interval start %s is not before end %s",
			b.StartTime.Format(time.RFC3339), b.EndTime.Format(time.RFC3339))
	}
	return nil
}

// BusyEvent is the key-value store representation of one calendar event on a
// participant's busy calendar. Recurrence, when set, is an RFC 5545 RRULE
// string; the event then repeats with the same duration at each occurrence.
type BusyEvent struct {
	UID            string     `json:"uid"`
	ParticipantUID string     `json:"participant_uid"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	Recurrence     string     `json:"recurrence,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// Validate checks the event's identity fields and time range.
func (e *BusyEvent) Validate() error {
	if e.UID == "" {
		return fmt.Errorf("event UID is required")
	}
	if e.ParticipantUID == "" {
		return fmt.Errorf("participant UID is required")
	}
	if !e.StartTime.Before(e.EndTime) {
		return fmt.Errorf("event start %s is not before end %s",
			e.StartTime.Format(time.RFC3339), e.EndTime.Format(time.RFC3339))
	}
	return nil
}

// ParticipantAvailability aggregates one participant's schedule and busy
// intervals for a single computation. It is produced once per computation and
// discarded after pooling.
type ParticipantAvailability struct {
	ParticipantUID string         `json:"participant_uid"`
	Timezone       string         `json:"timezone"`
	WorkingHours   []WorkingHours `json:"working_hours"`
	BusyIntervals  []BusyInterval `json:"busy_intervals"`
}
