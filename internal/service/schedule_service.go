// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-availability-service/pkg/utils"
)

// ScheduleService manages participant schedules and busy calendars.
type ScheduleService struct {
	schedules domain.ScheduleRepository
	calendars domain.CalendarRepository
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(schedules domain.ScheduleRepository, calendars domain.CalendarRepository) *ScheduleService {
	return &ScheduleService{
		schedules: schedules,
		calendars: calendars,
	}
}

// ServiceReady checks if the service's repositories are initialized.
func (s *ScheduleService) ServiceReady() bool {
	return s.schedules != nil && s.calendars != nil
}

// GetSchedule retrieves a participant's stored schedule.
func (s *ScheduleService) GetSchedule(ctx context.Context, participantUID string) (*models.ParticipantSchedule, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("schedule repository not initialized", domain.ErrServiceUnavailable)
	}
	return s.schedules.GetSchedule(ctx, participantUID)
}

// UpdateSchedule stores a participant's schedule, replacing any previous one.
func (s *ScheduleService) UpdateSchedule(ctx context.Context, schedule *models.ParticipantSchedule) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("schedule repository not initialized", domain.ErrServiceUnavailable)
	}
	if err := s.schedules.PutSchedule(ctx, schedule); err != nil {
		return err
	}
	slog.DebugContext(ctx, "stored participant schedule", "participant", schedule.ParticipantUID)
	return nil
}

// AddBusyEvent stores a busy event on a participant's calendar. An event
// without a UID gets a generated one; the returned event carries the final
// identity.
func (s *ScheduleService) AddBusyEvent(ctx context.Context, event *models.BusyEvent) (*models.BusyEvent, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("calendar repository not initialized", domain.ErrServiceUnavailable)
	}
	if event == nil {
		return nil, domain.NewValidationError("busy event is required")
	}

	if event.UID == "" {
		event.UID = uuid.New().String()
	}
	if event.CreatedAt == nil {
		event.CreatedAt = utils.TimePtr(time.Now().UTC())
	}

	if err := s.calendars.PutBusyEvent(ctx, event); err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "stored busy event",
		"participant", event.ParticipantUID, "event_uid", event.UID)
	return event, nil
}

// RemoveBusyEvent deletes a busy event from a participant's calendar.
func (s *ScheduleService) RemoveBusyEvent(ctx context.Context, participantUID, eventUID string) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("calendar repository not initialized", domain.ErrServiceUnavailable)
	}
	if err := s.calendars.DeleteBusyEvent(ctx, participantUID, eventUID); err != nil {
		return err
	}
	slog.DebugContext(ctx, "removed busy event",
		"participant", participantUID, "event_uid", eventUID)
	return nil
}

var _ Service = (*ScheduleService)(nil)
