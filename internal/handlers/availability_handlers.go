// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package handlers contains the NATS message handlers for the availability
// service.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/service"
)

// AvailabilityHandler handles availability computation and schedule messages.
type AvailabilityHandler struct {
	availabilityService *service.AvailabilityService
	scheduleService     *service.ScheduleService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(
	availabilityService *service.AvailabilityService,
	scheduleService *service.ScheduleService,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityService: availabilityService,
		scheduleService:     scheduleService,
	}
}

// HandlerReady reports whether every backing service is able to serve.
func (h *AvailabilityHandler) HandlerReady() bool {
	return h.availabilityService.ServiceReady() && h.scheduleService.ServiceReady()
}

// HandleMessage implements domain.MessageHandler interface
func (h *AvailabilityHandler) HandleMessage(ctx context.Context, msg domain.Message) {
	subject := msg.Subject()
	ctx = logging.AppendCtx(ctx, slog.String("subject", subject))
	slog.DebugContext(ctx, "handling NATS message")

	handlers := map[string]func(ctx context.Context, msg domain.Message) ([]byte, error){
		models.ComputeAvailabilitySubject: h.HandleComputeAvailability,
		models.GetScheduleSubject:         h.HandleGetSchedule,
		models.UpdateScheduleSubject:      h.HandleUpdateSchedule,
		models.AddBusyEventSubject:        h.HandleAddBusyEvent,
		models.RemoveBusyEventSubject:     h.HandleRemoveBusyEvent,
	}

	handler, ok := handlers[subject]
	if !ok {
		slog.WarnContext(ctx, "unknown subject")
		h.respond(ctx, msg, nil)
		return
	}

	response, err := handler(ctx, msg)
	if err != nil {
		slog.ErrorContext(ctx, "error handling message", logging.ErrKey, err)
		h.respond(ctx, msg, nil)
		return
	}

	h.respond(ctx, msg, response)
}

func (h *AvailabilityHandler) respond(ctx context.Context, msg domain.Message, response []byte) {
	if !msg.HasReply() {
		slog.DebugContext(ctx, "handled NATS message (no reply expected)")
		return
	}
	if err := msg.Respond(response); err != nil {
		slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
	}
}

// HandleComputeAvailability runs a slot computation for the requested
// participants and replies with the pooled slots.
func (h *AvailabilityHandler) HandleComputeAvailability(ctx context.Context, msg domain.Message) ([]byte, error) {
	var message models.ComputeAvailabilityMessage
	if err := json.Unmarshal(msg.Data(), &message); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling compute request", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid compute request payload", err)
	}

	if err := validateParticipantUIDs(message.Participants); err != nil {
		return nil, err
	}

	request, err := message.ToComputationRequest()
	if err != nil {
		slog.ErrorContext(ctx, "error parsing target date", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid target date", err)
	}

	slots, participantErrors, err := h.availabilityService.ComputeAvailability(ctx, request)
	if err != nil {
		return nil, err
	}

	response := models.ComputeAvailabilityResponse{Slots: slots}
	for _, perr := range participantErrors {
		response.ParticipantErrors = append(response.ParticipantErrors, models.ParticipantErrorMessage{
			Participant: perr.Participant,
			Error:       perr.Err.Error(),
		})
	}

	return json.Marshal(response)
}

// HandleGetSchedule replies with a participant's stored schedule. The message
// payload is the participant UID.
func (h *AvailabilityHandler) HandleGetSchedule(ctx context.Context, msg domain.Message) ([]byte, error) {
	participantUID := string(msg.Data())
	ctx = logging.AppendCtx(ctx, slog.String("participant", participantUID))

	if _, err := uuid.Parse(participantUID); err != nil {
		slog.ErrorContext(ctx, "invalid participant UID", logging.ErrKey, err)
		return nil, domain.NewValidationError("participant UID must be a valid UUID", err)
	}

	schedule, err := h.scheduleService.GetSchedule(ctx, participantUID)
	if err != nil {
		return nil, err
	}

	return json.Marshal(schedule)
}

// HandleUpdateSchedule stores a participant's schedule.
func (h *AvailabilityHandler) HandleUpdateSchedule(ctx context.Context, msg domain.Message) ([]byte, error) {
	var schedule models.ParticipantSchedule
	if err := json.Unmarshal(msg.Data(), &schedule); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling schedule", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid schedule payload", err)
	}

	ctx = logging.AppendCtx(ctx, slog.String("participant", schedule.ParticipantUID))
	if err := validateParticipantUIDs([]string{schedule.ParticipantUID}); err != nil {
		return nil, err
	}

	if err := h.scheduleService.UpdateSchedule(ctx, &schedule); err != nil {
		return nil, err
	}

	return json.Marshal(&schedule)
}

// HandleAddBusyEvent stores a busy event on a participant's calendar and
// replies with the stored event, including a generated UID when the request
// carried none.
func (h *AvailabilityHandler) HandleAddBusyEvent(ctx context.Context, msg domain.Message) ([]byte, error) {
	var event models.BusyEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling busy event", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid busy event payload", err)
	}

	ctx = logging.AppendCtx(ctx, slog.String("participant", event.ParticipantUID))
	if err := validateParticipantUIDs([]string{event.ParticipantUID}); err != nil {
		return nil, err
	}

	stored, err := h.scheduleService.AddBusyEvent(ctx, &event)
	if err != nil {
		return nil, err
	}

	return json.Marshal(stored)
}

// HandleRemoveBusyEvent deletes a busy event from a participant's calendar.
func (h *AvailabilityHandler) HandleRemoveBusyEvent(ctx context.Context, msg domain.Message) ([]byte, error) {
	var message models.RemoveBusyEventMessage
	if err := json.Unmarshal(msg.Data(), &message); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling remove request", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid remove request payload", err)
	}

	ctx = logging.AppendCtx(ctx, slog.String("participant", message.ParticipantUID))
	if err := validateParticipantUIDs([]string{message.ParticipantUID}); err != nil {
		return nil, err
	}

	if err := h.scheduleService.RemoveBusyEvent(ctx, message.ParticipantUID, message.EventUID); err != nil {
		return nil, err
	}

	return nil, nil
}

// validateParticipantUIDs checks that every participant identifier on a wire
// message is a valid UUID. Identifiers are opaque inside the engine; the
// format is enforced only at the message boundary.
func validateParticipantUIDs(participantUIDs []string) error {
	for _, participantUID := range participantUIDs {
		if _, err := uuid.Parse(participantUID); err != nil {
			return domain.NewValidationError("participant UID must be a valid UUID", err)
		}
	}
	return nil
}
