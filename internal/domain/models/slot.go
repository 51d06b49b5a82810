// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// TimeSlot is a bookable start instant of fixed duration, together with the
// participants able to host it. Identity for pooling purposes is StartTime:
// two slots are the same slot iff their instants are equal.
type TimeSlot struct {
	StartTime    time.Time `json:"start_time"`
	Contributors []string  `json:"contributors"`
}

// AddContributor appends a participant to the slot's contributor list,
// preserving insertion order and dropping duplicates.
func (s *TimeSlot) AddContributor(participant string) {
	for _, c := range s.Contributors {
		if c == participant {
			return
		}
	}
	s.Contributors = append(s.Contributors, participant)
}

// HasContributor reports whether the participant already contributes to the slot.
func (s *TimeSlot) HasContributor(participant string) bool {
	for _, c := range s.Contributors {
		if c == participant {
			return true
		}
	}
	return false
}
