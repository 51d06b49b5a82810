// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain/models"
)

// MockAvailabilityProvider implements AvailabilityProvider for testing
type MockAvailabilityProvider struct {
	mock.Mock
}

func (m *MockAvailabilityProvider) GetAvailability(ctx context.Context, participantUID string, rangeStart, rangeEnd time.Time) (*models.ParticipantAvailability, error) {
	args := m.Called(ctx, participantUID, rangeStart, rangeEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ParticipantAvailability), args.Error(1)
}

// MockScheduleRepository implements ScheduleRepository for testing
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetSchedule(ctx context.Context, participantUID string) (*models.ParticipantSchedule, error) {
	args := m.Called(ctx, participantUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ParticipantSchedule), args.Error(1)
}

func (m *MockScheduleRepository) PutSchedule(ctx context.Context, schedule *models.ParticipantSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) ScheduleExists(ctx context.Context, participantUID string) (bool, error) {
	args := m.Called(ctx, participantUID)
	return args.Bool(0), args.Error(1)
}

// MockCalendarRepository implements CalendarRepository for testing
type MockCalendarRepository struct {
	mock.Mock
}

func (m *MockCalendarRepository) ListBusyEvents(ctx context.Context, participantUID string) ([]*models.BusyEvent, error) {
	args := m.Called(ctx, participantUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BusyEvent), args.Error(1)
}

func (m *MockCalendarRepository) PutBusyEvent(ctx context.Context, event *models.BusyEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockCalendarRepository) DeleteBusyEvent(ctx context.Context, participantUID, eventUID string) error {
	args := m.Called(ctx, participantUID, eventUID)
	return args.Error(0)
}

// MockMessage implements Message for testing
type MockMessage struct {
	mock.Mock
	data    []byte
	subject string
}

func (m *MockMessage) Subject() string {
	return m.subject
}

func (m *MockMessage) Data() []byte {
	return m.data
}

func (m *MockMessage) HasReply() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockMessage) Respond(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

// NewMockMessage creates a mock message for testing
func NewMockMessage(data []byte, subject string) *MockMessage {
	return &MockMessage{
		data:    data,
		subject: subject,
	}
}
