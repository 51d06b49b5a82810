// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// NATS wildcard subjects that the availability service handles messages about.
const (
	// AvailabilityAPIQueue is the queue name for the availability API.
	// The subject is of the form: lfx.availability-api.queue
	AvailabilityAPIQueue = "lfx.availability-api.queue"
)

// NATS specific subjects that the availability service handles messages about.
const (
	// ComputeAvailabilitySubject is the subject for slot computation requests.
	// The subject is of the form: lfx.availability-api.compute_availability
	ComputeAvailabilitySubject = "lfx.availability-api.compute_availability"

	// GetScheduleSubject is the subject for fetching a participant's stored schedule.
	// The subject is of the form: lfx.availability-api.get_schedule
	GetScheduleSubject = "lfx.availability-api.get_schedule"

	// UpdateScheduleSubject is the subject for storing a participant's schedule.
	// The subject is of the form: lfx.availability-api.update_schedule
	UpdateScheduleSubject = "lfx.availability-api.update_schedule"

	// AddBusyEventSubject is the subject for adding an event to a participant's
	// busy calendar.
	// The subject is of the form: lfx.availability-api.add_busy_event
	AddBusyEventSubject = "lfx.availability-api.add_busy_event"

	// RemoveBusyEventSubject is the subject for removing an event from a
	// participant's busy calendar.
	// The subject is of the form: lfx.availability-api.remove_busy_event
	RemoveBusyEventSubject = "lfx.availability-api.remove_busy_event"
)

// TargetDateLayout is the wire layout for the target calendar day.
const TargetDateLayout = "2006-01-02"

// ComputeAvailabilityMessage is the NATS request schema for a slot computation.
type ComputeAvailabilityMessage struct {
	EventDurationMinutes int              `json:"event_duration_minutes"`
	TargetDate           string           `json:"target_date"`
	MinimumNoticeMinutes int              `json:"minimum_notice_minutes"`
	SlotBufferMinutes    int              `json:"slot_buffer_minutes,omitempty"`
	Participants         []string         `json:"participants"`
	Policy               SchedulingPolicy `json:"policy"`
}

// ToComputationRequest converts the wire message into a domain request.
// The target date is interpreted as a calendar day; the generator re-anchors
// it in each participant's timezone.
func (m *ComputeAvailabilityMessage) ToComputationRequest() (*ComputationRequest, error) {
	targetDate, err := time.Parse(TargetDateLayout, m.TargetDate)
	if err != nil {
		return nil, err
	}
	return &ComputationRequest{
		EventDurationMinutes: m.EventDurationMinutes,
		TargetDate:           targetDate,
		MinimumNoticeMinutes: m.MinimumNoticeMinutes,
		SlotBufferMinutes:    m.SlotBufferMinutes,
		Participants:         m.Participants,
		Policy:               m.Policy,
	}, nil
}

// ParticipantErrorMessage is the wire form of a per-participant failure.
type ParticipantErrorMessage struct {
	Participant string `json:"participant"`
	Error       string `json:"error"`
}

// ComputeAvailabilityResponse is the NATS reply schema for a slot computation.
type ComputeAvailabilityResponse struct {
	Slots             []TimeSlot                `json:"slots"`
	ParticipantErrors []ParticipantErrorMessage `json:"participant_errors,omitempty"`
}

// RemoveBusyEventMessage is the NATS request schema for deleting a busy event.
type RemoveBusyEventMessage struct {
	ParticipantUID string `json:"participant_uid"`
	EventUID       string `json:"event_uid"`
}
