// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
	"time"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain/models"
)

// AvailabilityProvider is the engine's only boundary to schedule and calendar
// storage. It returns a participant's working hours, timezone, and the busy
// intervals that fall inside [rangeStart, rangeEnd).
type AvailabilityProvider interface {
	GetAvailability(ctx context.Context, participantUID string, rangeStart, rangeEnd time.Time) (*models.ParticipantAvailability, error)
}

// ScheduleRepository defines the interface for participant schedule storage.
// This interface can be implemented by different storage backends (NATS, PostgreSQL, etc.)
type ScheduleRepository interface {
	GetSchedule(ctx context.Context, participantUID string) (*models.ParticipantSchedule, error)
	PutSchedule(ctx context.Context, schedule *models.ParticipantSchedule) error
	ScheduleExists(ctx context.Context, participantUID string) (bool, error)
}

// CalendarRepository defines the interface for busy calendar storage.
type CalendarRepository interface {
	ListBusyEvents(ctx context.Context, participantUID string) ([]*models.BusyEvent, error)
	PutBusyEvent(ctx context.Context, event *models.BusyEvent) error
	DeleteBusyEvent(ctx context.Context, participantUID, eventUID string) error
}
