// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkingHours_Validate(t *testing.T) {
	tests := []struct {
		name    string
		hours   WorkingHours
		wantErr bool
	}{
		{
			name:  "valid window",
			hours: WorkingHours{Weekdays: []time.Weekday{time.Monday}, StartMinute: 9 * 60, EndMinute: 17 * 60},
		},
		{
			name:  "full day window",
			hours: WorkingHours{Weekdays: []time.Weekday{time.Saturday}, StartMinute: 0, EndMinute: MinutesPerDay},
		},
		{
			name:    "negative start",
			hours:   WorkingHours{Weekdays: []time.Weekday{time.Monday}, StartMinute: -1, EndMinute: 60},
			wantErr: true,
		},
		{
			name:    "end before start",
			hours:   WorkingHours{Weekdays: []time.Weekday{time.Monday}, StartMinute: 17 * 60, EndMinute: 9 * 60},
			wantErr: true,
		},
		{
			name:    "end past midnight",
			hours:   WorkingHours{Weekdays: []time.Weekday{time.Monday}, StartMinute: 9 * 60, EndMinute: MinutesPerDay + 1},
			wantErr: true,
		},
		{
			name:    "no weekdays",
			hours:   WorkingHours{StartMinute: 9 * 60, EndMinute: 17 * 60},
			wantErr: true,
		},
		{
			name:    "invalid weekday",
			hours:   WorkingHours{Weekdays: []time.Weekday{time.Weekday(7)}, StartMinute: 9 * 60, EndMinute: 17 * 60},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.hours.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorkingHours_AllowsWeekday(t *testing.T) {
	hours := WorkingHours{Weekdays: []time.Weekday{time.Monday, time.Wednesday}}
	assert.True(t, hours.AllowsWeekday(time.Monday))
	assert.True(t, hours.AllowsWeekday(time.Wednesday))
	assert.False(t, hours.AllowsWeekday(time.Sunday))
}

func TestParticipantSchedule_Validate(t *testing.T) {
	valid := ParticipantSchedule{
		ParticipantUID: "participant-1",
		Timezone:       "Europe/Berlin",
		WorkingHours: []WorkingHours{
			{Weekdays: []time.Weekday{time.Monday}, StartMinute: 9 * 60, EndMinute: 17 * 60},
		},
	}
	assert.NoError(t, valid.Validate())

	missingUID := valid
	missingUID.ParticipantUID = ""
	assert.Error(t, missingUID.Validate())

	badZone := valid
	badZone.Timezone = "Mars/Olympus_Mons"
	assert.Error(t, badZone.Validate())

	noHours := valid
	noHours.WorkingHours = nil
	assert.Error(t, noHours.Validate())
}

func TestBusyInterval_Validate(t *testing.T) {
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	valid := BusyInterval{StartTime: start, EndTime: start.Add(time.Minute)}
	assert.NoError(t, valid.Validate())

	empty := BusyInterval{StartTime: start, EndTime: start}
	assert.Error(t, empty.Validate())

	inverted := BusyInterval{StartTime: start, EndTime: start.Add(-time.Hour)}
	assert.Error(t, inverted.Validate())
}

func TestBusyEvent_Validate(t *testing.T) {
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	valid := BusyEvent{
		UID:            "event-1",
		ParticipantUID: "participant-1",
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
	}
	assert.NoError(t, valid.Validate())

	missingUID := valid
	missingUID.UID = ""
	assert.Error(t, missingUID.Validate())

	missingParticipant := valid
	missingParticipant.ParticipantUID = ""
	assert.Error(t, missingParticipant.Validate())

	inverted := valid
	inverted.EndTime = start.Add(-time.Hour)
	assert.Error(t, inverted.Validate())
}

func TestTimeSlot_AddContributor(t *testing.T) {
	slot := TimeSlot{StartTime: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)}

	slot.AddContributor("p1")
	slot.AddContributor("p2")
	slot.AddContributor("p1")

	assert.Equal(t, []string{"p1", "p2"}, slot.Contributors, "duplicates dropped, insertion order kept")
	assert.True(t, slot.HasContributor("p1"))
	assert.False(t, slot.HasContributor("p3"))
}
