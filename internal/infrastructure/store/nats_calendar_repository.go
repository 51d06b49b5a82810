// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain/models"
)

// NatsCalendarRepository stores busy events in a NATS KV bucket keyed
// "<participant_uid>/<event_uid>", so one participant's calendar is a key
// prefix scan.
type NatsCalendarRepository struct {
	*NatsBaseRepository[models.BusyEvent]
}

// NewNatsCalendarRepository creates a new NATS KV busy-calendar repository.
func NewNatsCalendarRepository(kvStore INatsKeyValue) *NatsCalendarRepository {
	return &NatsCalendarRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.BusyEvent](kvStore, "busy event"),
	}
}

func busyEventKey(participantUID, eventUID string) string {
	return fmt.Sprintf("%s/%s", participantUID, eventUID)
}

// ListBusyEvents returns all stored busy events for the participant.
func (r *NatsCalendarRepository) ListBusyEvents(ctx context.Context, participantUID string) ([]*models.BusyEvent, error) {
	if participantUID == "" {
		return nil, domain.NewValidationError("participant UID is required")
	}
	return r.ListEntities(ctx, participantUID+"/")
}

// PutBusyEvent stores a busy event, replacing any previous event with the
// same UID.
func (r *NatsCalendarRepository) PutBusyEvent(ctx context.Context, event *models.BusyEvent) error {
	if event == nil {
		return domain.NewValidationError("busy event is required")
	}
	if err := event.Validate(); err != nil {
		return domain.NewValidationError("invalid busy event", err)
	}
	return r.Put(ctx, busyEventKey(event.ParticipantUID, event.UID), event)
}

// DeleteBusyEvent removes a single busy event from a participant's calendar.
func (r *NatsCalendarRepository) DeleteBusyEvent(ctx context.Context, participantUID, eventUID string) error {
	if participantUID == "" || eventUID == "" {
		return domain.NewValidationError("participant UID and event UID are required")
	}
	return r.Delete(ctx, busyEventKey(participantUID, eventUID))
}
