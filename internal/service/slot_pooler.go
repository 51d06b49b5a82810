// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain/models"
)

// SlotPooler merges per-participant slot sets into one offerable list
// according to the active scheduling policy. It is stateless and safe for
// concurrent use.
type SlotPooler struct{}

// NewSlotPooler creates a new SlotPooler
func NewSlotPooler() *SlotPooler {
	return &SlotPooler{}
}

// Pool combines the per-participant filtered slot sets. Slot identity is
// exact instant equality. Participants whose fetch failed contribute an empty
// set: they drop Collective results (possibly to empty) and contribute nothing
// to RoundRobin. The returned slice is unsorted; callers order it with Sort.
func (p *SlotPooler) Pool(participants []string, slotsByParticipant map[string][]time.Time, policy models.SchedulingPolicy) ([]models.TimeSlot, error) {
	if len(participants) == 0 {
		return nil, domain.NewValidationError("at least one participant is required")
	}
	switch policy {
	case models.SchedulingPolicySingle:
		if len(participants) != 1 {
			return nil, domain.NewValidationError(
				fmt.Sprintf("single policy requires exactly one participant, got %d", len(participants)))
		}
		return p.poolSingle(participants[0], slotsByParticipant[participants[0]]), nil
	case models.SchedulingPolicyCollective:
		return p.poolCollective(participants, slotsByParticipant), nil
	case models.SchedulingPolicyRoundRobin:
		return p.poolRoundRobin(participants, slotsByParticipant), nil
	}
	return nil, domain.NewValidationError(
		fmt.Sprintf("unknown scheduling policy %q", policy), domain.ErrUnsupportedPolicy)
}

func (p *SlotPooler) poolSingle(participant string, slots []time.Time) []models.TimeSlot {
	pooled := make([]models.TimeSlot, 0, len(slots))
	for _, t := range slots {
		pooled = append(pooled, models.TimeSlot{
			StartTime:    t,
			Contributors: []string{participant},
		})
	}
	return pooled
}

// poolCollective keeps an instant iff every participant offers it; its
// contributors are the full participant set in request order.
func (p *SlotPooler) poolCollective(participants []string, slotsByParticipant map[string][]time.Time) []models.TimeSlot {
	offered := make([]map[int64]bool, len(participants))
	for i, participant := range participants {
		offered[i] = instantSet(slotsByParticipant[participant])
	}

	contributors := make([]string, len(participants))
	copy(contributors, participants)

	var pooled []models.TimeSlot
	for _, t := range slotsByParticipant[participants[0]] {
		shared := true
		for i := 1; i < len(participants); i++ {
			if !offered[i][t.UnixNano()] {
				shared = false
				break
			}
		}
		if shared {
			slot := models.TimeSlot{StartTime: t}
			for _, c := range contributors {
				slot.AddContributor(c)
			}
			pooled = append(pooled, slot)
		}
	}
	return pooled
}

// poolRoundRobin keeps the union of instants; each slot accumulates every
// participant that offers it, in participant processing order.
func (p *SlotPooler) poolRoundRobin(participants []string, slotsByParticipant map[string][]time.Time) []models.TimeSlot {
	var pooled []models.TimeSlot
	index := make(map[int64]int)
	for _, participant := range participants {
		for _, t := range slotsByParticipant[participant] {
			if i, ok := index[t.UnixNano()]; ok {
				pooled[i].AddContributor(participant)
				continue
			}
			index[t.UnixNano()] = len(pooled)
			pooled = append(pooled, models.TimeSlot{
				StartTime:    t,
				Contributors: []string{participant},
			})
		}
	}
	return pooled
}

// Sort orders slots ascending by instant. Pooling already merged duplicate
// instants, so Sort does not deduplicate; the stable sort keeps any remaining
// ties in their pooled order.
func (p *SlotPooler) Sort(slots []models.TimeSlot) []models.TimeSlot {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
	return slots
}

func instantSet(slots []time.Time) map[int64]bool {
	set := make(map[int64]bool, len(slots))
	for _, t := range slots {
		set[t.UnixNano()] = true
	}
	return set
}
