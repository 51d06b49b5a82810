// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"time"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-availability-service/pkg/utils"
)

// NatsScheduleRepository stores participant schedules in a NATS KV bucket,
// one entry per participant UID.
type NatsScheduleRepository struct {
	*NatsBaseRepository[models.ParticipantSchedule]
}

// NewNatsScheduleRepository creates a new NATS KV schedule repository.
func NewNatsScheduleRepository(kvStore INatsKeyValue) *NatsScheduleRepository {
	return &NatsScheduleRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.ParticipantSchedule](kvStore, "schedule"),
	}
}

// GetSchedule retrieves a participant's working-hours schedule.
func (r *NatsScheduleRepository) GetSchedule(ctx context.Context, participantUID string) (*models.ParticipantSchedule, error) {
	if participantUID == "" {
		return nil, domain.NewValidationError("participant UID is required")
	}
	return r.Get(ctx, participantUID)
}

// PutSchedule stores a participant's schedule, replacing any previous one.
func (r *NatsScheduleRepository) PutSchedule(ctx context.Context, schedule *models.ParticipantSchedule) error {
	if schedule == nil {
		return domain.NewValidationError("schedule is required")
	}
	if err := schedule.Validate(); err != nil {
		return domain.NewValidationError("invalid schedule", err)
	}

	schedule.UpdatedAt = utils.TimePtr(time.Now().UTC())
	return r.Put(ctx, schedule.ParticipantUID, schedule)
}

// ScheduleExists reports whether a schedule is stored for the participant.
func (r *NatsScheduleRepository) ScheduleExists(ctx context.Context, participantUID string) (bool, error) {
	if participantUID == "" {
		return false, domain.NewValidationError("participant UID is required")
	}
	return r.Exists(ctx, participantUID)
}
