// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package messaging adapts NATS messages to the domain messaging contracts.
package messaging

import (
	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain"
)

// NatsMsg wraps a *nats.Msg to implement the domain.Message interface.
type NatsMsg struct {
	msg *nats.Msg
}

// NewNatsMsg wraps a received NATS message.
func NewNatsMsg(msg *nats.Msg) *NatsMsg {
	return &NatsMsg{msg: msg}
}

// Subject returns the subject the message was received on.
func (m *NatsMsg) Subject() string {
	return m.msg.Subject
}

// Data returns the raw message payload.
func (m *NatsMsg) Data() []byte {
	return m.msg.Data
}

// HasReply reports whether the sender expects a response.
func (m *NatsMsg) HasReply() bool {
	return m.msg.Reply != ""
}

// Respond sends a reply on the message's reply subject.
func (m *NatsMsg) Respond(data []byte) error {
	return m.msg.Respond(data)
}

var _ domain.Message = (*NatsMsg)(nil)
