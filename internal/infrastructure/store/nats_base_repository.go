// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package store contains the NATS JetStream key-value storage backends for
// participant schedules and busy calendars.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/logging"
)

// NATS Key-Value store bucket names
const (
	// KVStoreNameSchedules holds one ParticipantSchedule per participant UID.
	KVStoreNameSchedules = "participant-schedules"

	// KVStoreNameBusyCalendars holds BusyEvent entries keyed
	// "<participant_uid>/<event_uid>".
	KVStoreNameBusyCalendars = "busy-calendars"
)

// tracerName is the instrumentation name for the store package.
const tracerName = "github.com/linuxfoundation/lfx-v2-availability-service/internal/infrastructure/store"

// INatsKeyValue is the subset of the NATS KV interface the repositories need.
// It matches jetstream.KeyValue and allows for mocking in tests.
type INatsKeyValue interface {
	ListKeys(context.Context, ...jetstream.WatchOpt) (jetstream.KeyLister, error)
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(context.Context, string, []byte) (uint64, error)
	Delete(context.Context, string, ...jetstream.KVDeleteOpt) error
}

// NatsBaseRepository provides common NATS KV operations shared by the
// schedule and calendar repositories.
type NatsBaseRepository[T any] struct {
	kvStore    INatsKeyValue
	entityName string // Used in error messages (e.g., "schedule", "busy event")
}

// NewNatsBaseRepository creates a new base repository for NATS KV operations
func NewNatsBaseRepository[T any](kvStore INatsKeyValue, entityName string) *NatsBaseRepository[T] {
	return &NatsBaseRepository[T]{
		kvStore:    kvStore,
		entityName: entityName,
	}
}

// IsReady checks if the repository is ready for use
func (r *NatsBaseRepository[T]) IsReady() bool {
	return r.kvStore != nil
}

func (r *NatsBaseRepository[T]) startSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "nats"),
		attribute.String("db.operation", operation),
		attribute.String("db.nats.entity", r.entityName),
	}
	if key != "" {
		attrs = append(attrs, attribute.String("db.nats.key", key))
	}
	return otel.Tracer(tracerName).Start(ctx, "nats.kv."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func (r *NatsBaseRepository[T]) failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// Get retrieves and unmarshals an entity from NATS KV store
func (r *NatsBaseRepository[T]) Get(ctx context.Context, key string) (*T, error) {
	ctx, span := r.startSpan(ctx, "get", key)
	defer span.End()

	if !r.IsReady() {
		return nil, r.failSpan(span, domain.NewUnavailableError(
			fmt.Sprintf("%s repository is not available", r.entityName), domain.ErrServiceUnavailable))
	}

	entry, err := r.kvStore.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, r.failSpan(span, domain.NewNotFoundError(
				fmt.Sprintf("%s with key '%s' not found", r.entityName, key), err))
		}
		slog.ErrorContext(ctx, fmt.Sprintf("error getting %s from NATS KV", r.entityName),
			logging.ErrKey, err, "key", key)
		return nil, r.failSpan(span, domain.NewInternalError(
			fmt.Sprintf("failed to retrieve %s from store", r.entityName), err))
	}

	entity, err := r.unmarshal(ctx, entry)
	if err != nil {
		return nil, r.failSpan(span, domain.NewInternalError(
			fmt.Sprintf("failed to unmarshal %s data", r.entityName), err))
	}

	span.SetStatus(codes.Ok, "")
	return entity, nil
}

// Exists checks if an entity exists in the store
func (r *NatsBaseRepository[T]) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.Get(ctx, key)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Put stores an entity in the store, overwriting any previous value
func (r *NatsBaseRepository[T]) Put(ctx context.Context, key string, entity *T) error {
	ctx, span := r.startSpan(ctx, "put", key)
	defer span.End()

	if !r.IsReady() {
		return r.failSpan(span, domain.NewUnavailableError(
			fmt.Sprintf("%s repository is not available", r.entityName), domain.ErrServiceUnavailable))
	}

	data, err := json.Marshal(entity)
	if err != nil {
		slog.ErrorContext(ctx, fmt.Sprintf("error marshaling %s", r.entityName), logging.ErrKey, err)
		return r.failSpan(span, domain.NewInternalError(
			fmt.Sprintf("failed to marshal %s", r.entityName), err))
	}

	if _, err := r.kvStore.Put(ctx, key, data); err != nil {
		slog.ErrorContext(ctx, fmt.Sprintf("error storing %s in NATS KV", r.entityName),
			logging.ErrKey, err, "key", key)
		return r.failSpan(span, domain.NewInternalError(
			fmt.Sprintf("failed to store %s", r.entityName), err))
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Delete removes an entity from the store
func (r *NatsBaseRepository[T]) Delete(ctx context.Context, key string) error {
	ctx, span := r.startSpan(ctx, "delete", key)
	defer span.End()

	if !r.IsReady() {
		return r.failSpan(span, domain.NewUnavailableError(
			fmt.Sprintf("%s repository is not available", r.entityName), domain.ErrServiceUnavailable))
	}

	if err := r.kvStore.Delete(ctx, key); err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return r.failSpan(span, domain.NewNotFoundError(
				fmt.Sprintf("%s with key '%s' not found", r.entityName, key), err))
		}
		slog.ErrorContext(ctx, fmt.Sprintf("error deleting %s from NATS KV", r.entityName),
			logging.ErrKey, err, "key", key)
		return r.failSpan(span, domain.NewInternalError(
			fmt.Sprintf("failed to delete %s from store", r.entityName), err))
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// ListKeys lists all keys in the bucket
func (r *NatsBaseRepository[T]) ListKeys(ctx context.Context) ([]string, error) {
	ctx, span := r.startSpan(ctx, "list_keys", "")
	defer span.End()

	if !r.IsReady() {
		return nil, r.failSpan(span, domain.NewUnavailableError(
			fmt.Sprintf("%s repository is not available", r.entityName), domain.ErrServiceUnavailable))
	}

	lister, err := r.kvStore.ListKeys(ctx)
	if err != nil {
		slog.ErrorContext(ctx, fmt.Sprintf("error listing %s keys from NATS KV", r.entityName),
			logging.ErrKey, err)
		return nil, r.failSpan(span, domain.NewInternalError(
			fmt.Sprintf("failed to list %s keys from store", r.entityName), err))
	}

	var keys []string
	for key := range lister.Keys() {
		keys = append(keys, key)
	}

	span.SetAttributes(attribute.Int("db.nats.keys_count", len(keys)))
	span.SetStatus(codes.Ok, "")
	return keys, nil
}

// ListEntities lists all entities whose key starts with the given prefix.
// Entries that fail to decode are skipped with a warning so that one corrupt
// entry cannot hide a whole calendar.
func (r *NatsBaseRepository[T]) ListEntities(ctx context.Context, keyPrefix string) ([]*T, error) {
	keys, err := r.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	var entities []*T
	for _, key := range keys {
		if keyPrefix != "" && !strings.HasPrefix(key, keyPrefix) {
			continue
		}

		entity, err := r.Get(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, fmt.Sprintf("failed to get %s, skipping", r.entityName),
				"key", key, logging.ErrKey, err)
			continue
		}

		entities = append(entities, entity)
	}

	return entities, nil
}

func (r *NatsBaseRepository[T]) unmarshal(ctx context.Context, entry jetstream.KeyValueEntry) (*T, error) {
	var entity T
	if err := json.Unmarshal(entry.Value(), &entity); err != nil {
		slog.ErrorContext(ctx, fmt.Sprintf("error unmarshaling %s", r.entityName), logging.ErrKey, err)
		return nil, domain.ErrUnmarshal
	}
	return &entity, nil
}
