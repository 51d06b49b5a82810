// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-availability-service/pkg/concurrent"
	"github.com/linuxfoundation/lfx-v2-availability-service/pkg/constants"
)

// AvailabilityService computes bookable time slots for a set of participants.
// It fetches each participant's availability concurrently, runs the
// per-participant generate-and-filter pipeline, and pools the results under
// the requested scheduling policy. The service holds no state between
// requests.
type AvailabilityService struct {
	provider  domain.AvailabilityProvider
	generator *SlotGenerator
	filter    *BusyFilter
	pooler    *SlotPooler
	pool      *concurrent.WorkerPool
	config    ServiceConfig
	now       func() time.Time
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(provider domain.AvailabilityProvider, config ServiceConfig) *AvailabilityService {
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = constants.DefaultFetchTimeout
	}
	if config.FetchWorkers <= 0 {
		config.FetchWorkers = constants.DefaultFetchWorkers
	}
	return &AvailabilityService{
		provider:  provider,
		generator: NewSlotGenerator(),
		filter:    NewBusyFilter(),
		pooler:    NewSlotPooler(),
		pool:      concurrent.NewWorkerPool(config.FetchWorkers),
		config:    config,
		now:       time.Now,
	}
}

// ServiceReady checks if the service is able to compute availability.
func (s *AvailabilityService) ServiceReady() bool {
	return s.provider != nil
}

// participantResult is the settled outcome of one participant's fetch-and-filter
// task. Each task writes only to its own entry, so no locking is needed.
type participantResult struct {
	slots []time.Time
	err   error
}

// ComputeAvailability runs one stateless slot computation. It returns the
// pooled, time-ascending slot list and the per-participant failures that were
// absorbed along the way. Request validation failures are fatal and happen
// before any fetch; provider failures never abort sibling participants.
func (s *AvailabilityService) ComputeAvailability(ctx context.Context, request *models.ComputationRequest) ([]models.TimeSlot, []models.ParticipantError, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "availability provider not initialized")
		return nil, nil, domain.NewUnavailableError("availability provider not initialized", domain.ErrServiceUnavailable)
	}
	if request == nil {
		return nil, nil, domain.NewValidationError("request is required")
	}
	if err := request.Validate(); err != nil {
		return nil, nil, domain.NewValidationError("invalid computation request", err)
	}

	now := s.now()
	rangeStart, rangeEnd := fetchRange(request.TargetDate)
	policy := request.EffectivePolicy()

	ctx = logging.AppendCtx(ctx, slog.String("policy", string(policy)))
	ctx = logging.AppendCtx(ctx, slog.Int("participants", len(request.Participants)))

	results := make([]participantResult, len(request.Participants))
	tasks := make([]func() error, len(request.Participants))
	for i, participant := range request.Participants {
		i, participant := i, participant
		tasks[i] = func() error {
			results[i] = s.computeParticipant(ctx, participant, request, now, rangeStart, rangeEnd)
			return nil
		}
	}

	// Wait-all barrier: pooling must not start until every participant task
	// has settled, and one failure must not cancel the siblings.
	s.pool.RunAll(ctx, tasks...)

	// A cancelled computation discards partial results entirely.
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	slotsByParticipant := make(map[string][]time.Time, len(request.Participants))
	var participantErrors []models.ParticipantError
	for i, participant := range request.Participants {
		if results[i].err != nil {
			slog.WarnContext(ctx, "participant availability fetch failed",
				logging.ErrKey, results[i].err, "participant", participant)
			participantErrors = append(participantErrors, models.ParticipantError{
				Participant: participant,
				Err:         results[i].err,
			})
			slotsByParticipant[participant] = nil
			continue
		}
		slotsByParticipant[participant] = results[i].slots
	}

	pooled, err := s.pooler.Pool(request.Participants, slotsByParticipant, policy)
	if err != nil {
		return nil, nil, err
	}

	slots := s.pooler.Sort(pooled)
	slog.DebugContext(ctx, "computed availability",
		"slots", len(slots), "failed_participants", len(participantErrors))

	return slots, participantErrors, nil
}

// computeParticipant fetches one participant's availability and runs the
// generate-and-filter pipeline for them.
func (s *AvailabilityService) computeParticipant(ctx context.Context, participant string, request *models.ComputationRequest, now, rangeStart, rangeEnd time.Time) participantResult {
	fetchCtx, cancel := context.WithTimeout(ctx, s.config.FetchTimeout)
	defer cancel()

	availability, err := s.provider.GetAvailability(fetchCtx, participant, rangeStart, rangeEnd)
	if err != nil {
		return participantResult{err: err}
	}

	candidates, err := s.generator.GenerateCandidates(GenerateParams{
		TargetDate:           request.TargetDate,
		Timezone:             availability.Timezone,
		WorkingHours:         availability.WorkingHours,
		DurationMinutes:      request.EventDurationMinutes,
		BufferMinutes:        request.SlotBufferMinutes,
		MinimumNoticeMinutes: request.MinimumNoticeMinutes,
		Now:                  now,
	})
	if err != nil {
		return participantResult{err: err}
	}

	slots := s.filter.FilterConflicts(candidates, availability.BusyIntervals, request.EventDurationMinutes)
	return participantResult{slots: slots}
}

// fetchRange widens the target day by a day on each side so that any
// participant timezone's local day falls inside the queried window. Busy
// intervals outside the local day never match a candidate, so the extra
// coverage is harmless.
func fetchRange(targetDate time.Time) (time.Time, time.Time) {
	year, month, day := targetDate.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return dayStart.AddDate(0, 0, -1), dayStart.AddDate(0, 0, 2)
}

// Compile-time interface check
var _ Service = (*AvailabilityService)(nil)
