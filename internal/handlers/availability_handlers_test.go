// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/service"
)

const (
	participantOne = "3a9c5c2e-1f9d-4a0c-9a8e-7d2c1b6a5e40"
	participantTwo = "5b1d7e8f-2a3b-4c5d-8e9f-0a1b2c3d4e5f"
)

type handlerMocks struct {
	provider  *domain.MockAvailabilityProvider
	schedules *domain.MockScheduleRepository
	calendars *domain.MockCalendarRepository
}

func newTestHandler(t *testing.T) (*AvailabilityHandler, handlerMocks) {
	t.Helper()
	mocks := handlerMocks{
		provider:  &domain.MockAvailabilityProvider{},
		schedules: &domain.MockScheduleRepository{},
		calendars: &domain.MockCalendarRepository{},
	}
	handler := NewAvailabilityHandler(
		service.NewAvailabilityService(mocks.provider, service.ServiceConfig{}),
		service.NewScheduleService(mocks.schedules, mocks.calendars),
	)
	return handler, mocks
}

func weekdayAvailability(participantUID string) *models.ParticipantAvailability {
	return &models.ParticipantAvailability{
		ParticipantUID: participantUID,
		Timezone:       "UTC",
		WorkingHours: []models.WorkingHours{
			{
				Weekdays: []time.Weekday{
					time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
				},
				StartMinute: 9 * 60,
				EndMinute:   17 * 60,
			},
		},
	}
}

func TestHandleComputeAvailability(t *testing.T) {
	handler, mocks := newTestHandler(t)

	mocks.provider.On("GetAvailability", mock.Anything, participantOne, mock.Anything, mock.Anything).
		Return(weekdayAvailability(participantOne), nil)

	payload, err := json.Marshal(models.ComputeAvailabilityMessage{
		EventDurationMinutes: 60,
		TargetDate:           "2026-01-05",
		Participants:         []string{participantOne},
		Policy:               models.SchedulingPolicySingle,
	})
	require.NoError(t, err)

	msg := domain.NewMockMessage(payload, models.ComputeAvailabilitySubject)
	response, err := handler.HandleComputeAvailability(context.Background(), msg)
	require.NoError(t, err)

	var decoded models.ComputeAvailabilityResponse
	require.NoError(t, json.Unmarshal(response, &decoded))
	assert.Len(t, decoded.Slots, 8, "hour-long slots across a 09:00-17:00 day")
	assert.Empty(t, decoded.ParticipantErrors)
	for _, slot := range decoded.Slots {
		assert.Equal(t, []string{participantOne}, slot.Contributors)
	}
}

func TestHandleComputeAvailability_ParticipantErrorsReported(t *testing.T) {
	handler, mocks := newTestHandler(t)

	mocks.provider.On("GetAvailability", mock.Anything, participantOne, mock.Anything, mock.Anything).
		Return(weekdayAvailability(participantOne), nil)
	mocks.provider.On("GetAvailability", mock.Anything, participantTwo, mock.Anything, mock.Anything).
		Return(nil, domain.NewNotFoundError("no schedule stored", domain.ErrScheduleNotFound))

	payload, err := json.Marshal(models.ComputeAvailabilityMessage{
		EventDurationMinutes: 60,
		TargetDate:           "2026-01-05",
		Participants:         []string{participantOne, participantTwo},
		Policy:               models.SchedulingPolicyRoundRobin,
	})
	require.NoError(t, err)

	msg := domain.NewMockMessage(payload, models.ComputeAvailabilitySubject)
	response, err := handler.HandleComputeAvailability(context.Background(), msg)
	require.NoError(t, err)

	var decoded models.ComputeAvailabilityResponse
	require.NoError(t, json.Unmarshal(response, &decoded))
	assert.NotEmpty(t, decoded.Slots, "round robin degrades to the healthy participant")
	require.Len(t, decoded.ParticipantErrors, 1)
	assert.Equal(t, participantTwo, decoded.ParticipantErrors[0].Participant)
	assert.NotEmpty(t, decoded.ParticipantErrors[0].Error)
}

func TestHandleComputeAvailability_InvalidPayload(t *testing.T) {
	handler, mocks := newTestHandler(t)

	msg := domain.NewMockMessage([]byte("not json"), models.ComputeAvailabilitySubject)
	_, err := handler.HandleComputeAvailability(context.Background(), msg)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	mocks.provider.AssertNotCalled(t, "GetAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleComputeAvailability_RejectsNonUUIDParticipant(t *testing.T) {
	handler, mocks := newTestHandler(t)

	payload, err := json.Marshal(models.ComputeAvailabilityMessage{
		EventDurationMinutes: 60,
		TargetDate:           "2026-01-05",
		Participants:         []string{"not-a-uuid"},
		Policy:               models.SchedulingPolicySingle,
	})
	require.NoError(t, err)

	msg := domain.NewMockMessage(payload, models.ComputeAvailabilitySubject)
	_, err = handler.HandleComputeAvailability(context.Background(), msg)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	mocks.provider.AssertNotCalled(t, "GetAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleComputeAvailability_InvalidTargetDate(t *testing.T) {
	handler, _ := newTestHandler(t)

	payload, err := json.Marshal(models.ComputeAvailabilityMessage{
		EventDurationMinutes: 60,
		TargetDate:           "05/01/2026",
		Participants:         []string{participantOne},
		Policy:               models.SchedulingPolicySingle,
	})
	require.NoError(t, err)

	msg := domain.NewMockMessage(payload, models.ComputeAvailabilitySubject)
	_, err = handler.HandleComputeAvailability(context.Background(), msg)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestHandleGetSchedule(t *testing.T) {
	handler, mocks := newTestHandler(t)

	stored := &models.ParticipantSchedule{
		ParticipantUID: participantOne,
		Timezone:       "UTC",
		WorkingHours: []models.WorkingHours{
			{Weekdays: []time.Weekday{time.Monday}, StartMinute: 9 * 60, EndMinute: 17 * 60},
		},
	}
	mocks.schedules.On("GetSchedule", mock.Anything, participantOne).Return(stored, nil)

	msg := domain.NewMockMessage([]byte(participantOne), models.GetScheduleSubject)
	response, err := handler.HandleGetSchedule(context.Background(), msg)
	require.NoError(t, err)

	var decoded models.ParticipantSchedule
	require.NoError(t, json.Unmarshal(response, &decoded))
	assert.Equal(t, participantOne, decoded.ParticipantUID)
	assert.Equal(t, "UTC", decoded.Timezone)
}

func TestHandleGetSchedule_InvalidUID(t *testing.T) {
	handler, mocks := newTestHandler(t)

	msg := domain.NewMockMessage([]byte("not-a-uuid"), models.GetScheduleSubject)
	_, err := handler.HandleGetSchedule(context.Background(), msg)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	mocks.schedules.AssertNotCalled(t, "GetSchedule", mock.Anything, mock.Anything)
}

func TestHandleUpdateSchedule(t *testing.T) {
	handler, mocks := newTestHandler(t)

	mocks.schedules.On("PutSchedule", mock.Anything, mock.AnythingOfType("*models.ParticipantSchedule")).Return(nil)

	payload, err := json.Marshal(models.ParticipantSchedule{
		ParticipantUID: participantOne,
		Timezone:       "America/New_York",
		WorkingHours: []models.WorkingHours{
			{Weekdays: []time.Weekday{time.Monday}, StartMinute: 9 * 60, EndMinute: 17 * 60},
		},
	})
	require.NoError(t, err)

	msg := domain.NewMockMessage(payload, models.UpdateScheduleSubject)
	response, err := handler.HandleUpdateSchedule(context.Background(), msg)
	require.NoError(t, err)
	assert.NotEmpty(t, response)
	mocks.schedules.AssertExpectations(t)
}

func TestHandleAddBusyEvent_GeneratesUID(t *testing.T) {
	handler, mocks := newTestHandler(t)

	mocks.calendars.On("PutBusyEvent", mock.Anything, mock.AnythingOfType("*models.BusyEvent")).Return(nil)

	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(models.BusyEvent{
		ParticipantUID: participantOne,
		StartTime:      start,
		EndTime:        start.Add(30 * time.Minute),
	})
	require.NoError(t, err)

	msg := domain.NewMockMessage(payload, models.AddBusyEventSubject)
	response, err := handler.HandleAddBusyEvent(context.Background(), msg)
	require.NoError(t, err)

	var decoded models.BusyEvent
	require.NoError(t, json.Unmarshal(response, &decoded))
	assert.NotEmpty(t, decoded.UID, "stored event carries a generated UID")
	assert.NotNil(t, decoded.CreatedAt)
}

func TestHandleRemoveBusyEvent(t *testing.T) {
	handler, mocks := newTestHandler(t)

	mocks.calendars.On("DeleteBusyEvent", mock.Anything, participantOne, "event-1").Return(nil)

	payload, err := json.Marshal(models.RemoveBusyEventMessage{
		ParticipantUID: participantOne,
		EventUID:       "event-1",
	})
	require.NoError(t, err)

	msg := domain.NewMockMessage(payload, models.RemoveBusyEventSubject)
	response, err := handler.HandleRemoveBusyEvent(context.Background(), msg)
	require.NoError(t, err)
	assert.Nil(t, response)
	mocks.calendars.AssertExpectations(t)
}

func TestHandleMessage_DispatchAndReply(t *testing.T) {
	handler, mocks := newTestHandler(t)

	stored := &models.ParticipantSchedule{
		ParticipantUID: participantOne,
		Timezone:       "UTC",
		WorkingHours: []models.WorkingHours{
			{Weekdays: []time.Weekday{time.Monday}, StartMinute: 9 * 60, EndMinute: 17 * 60},
		},
	}
	mocks.schedules.On("GetSchedule", mock.Anything, participantOne).Return(stored, nil)

	msg := domain.NewMockMessage([]byte(participantOne), models.GetScheduleSubject)
	msg.On("HasReply").Return(true)
	msg.On("Respond", mock.MatchedBy(func(data []byte) bool {
		return len(data) > 0
	})).Return(nil)

	handler.HandleMessage(context.Background(), msg)
	msg.AssertExpectations(t)
}

func TestHandleMessage_UnknownSubjectRepliesEmpty(t *testing.T) {
	handler, _ := newTestHandler(t)

	msg := domain.NewMockMessage(nil, "lfx.availability-api.unknown")
	msg.On("HasReply").Return(true)
	msg.On("Respond", mock.Anything).Return(nil)

	handler.HandleMessage(context.Background(), msg)
	msg.AssertExpectations(t)
}

func TestHandleMessage_HandlerErrorRepliesEmpty(t *testing.T) {
	handler, _ := newTestHandler(t)

	msg := domain.NewMockMessage([]byte("not-a-uuid"), models.GetScheduleSubject)
	msg.On("HasReply").Return(true)
	msg.On("Respond", mock.MatchedBy(func(data []byte) bool {
		return data == nil
	})).Return(nil)

	handler.HandleMessage(context.Background(), msg)
	msg.AssertExpectations(t)
}

func TestHandlerReady(t *testing.T) {
	handler, _ := newTestHandler(t)
	assert.True(t, handler.HandlerReady())

	notReady := NewAvailabilityHandler(
		service.NewAvailabilityService(nil, service.ServiceConfig{}),
		service.NewScheduleService(nil, nil),
	)
	assert.False(t, notReady.HandlerReady())
}
