// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/infrastructure/messaging"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/infrastructure/store"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/logging"
)

// repositories are the KV-backed stores used by the service.
type repositories struct {
	Schedule *store.NatsScheduleRepository
	Calendar *store.NatsCalendarRepository
}

// setupNATS connects to the NATS server. The connection drains on shutdown;
// the graceful-close wait group is released once the drain completes.
func setupNATS(env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	gracefulCloseWG.Add(1)
	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.DrainTimeout(25*time.Second),
		nats.ConnectHandler(func(_ *nats.Conn) {
			slog.With("nats_url", env.NatsURL).Info("NATS connection established")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if s != nil {
				slog.With(logging.ErrKey, err, "subject", s.Subject, "queue", s.Queue).Error("async NATS error")
			} else {
				slog.With(logging.ErrKey, err).Error("async NATS error outside subscription")
			}
		}),
		nats.ClosedHandler(func(conn *nats.Conn) {
			slog.With(logging.ErrKey, conn.LastError()).Info("NATS connection closed")
			gracefulCloseWG.Done()
			// An unexpected close also shuts the process down.
			select {
			case done <- os.Interrupt:
			default:
			}
		}),
	)
	if err != nil {
		gracefulCloseWG.Done()
		return nil, err
	}
	return natsConn, nil
}

// getKeyValueStores binds the schedule and busy-calendar KV buckets, creating
// them when they do not exist yet.
func getKeyValueStores(ctx context.Context, natsConn *nats.Conn) (*repositories, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, err
	}

	scheduleBucket, err := bindKeyValueBucket(ctx, js, store.KVStoreNameSchedules)
	if err != nil {
		return nil, err
	}
	calendarBucket, err := bindKeyValueBucket(ctx, js, store.KVStoreNameBusyCalendars)
	if err != nil {
		return nil, err
	}

	return &repositories{
		Schedule: store.NewNatsScheduleRepository(scheduleBucket),
		Calendar: store.NewNatsCalendarRepository(calendarBucket),
	}, nil
}

func bindKeyValueBucket(ctx context.Context, js jetstream.JetStream, bucket string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, bucket)
	if err == nil {
		return kv, nil
	}
	if !errors.Is(err, jetstream.ErrBucketNotFound) {
		return nil, err
	}

	slog.With("bucket", bucket).Info("KV bucket not found, creating it")
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: bucket})
}

// createNatsSubscriptions subscribes the message handler to every supported
// subject on the shared service queue.
func createNatsSubscriptions(ctx context.Context, handler domain.MessageHandler, natsConn *nats.Conn) error {
	subjects := []string{
		models.ComputeAvailabilitySubject,
		models.GetScheduleSubject,
		models.UpdateScheduleSubject,
		models.AddBusyEventSubject,
		models.RemoveBusyEventSubject,
	}

	for _, subject := range subjects {
		if _, err := natsConn.QueueSubscribe(subject, models.AvailabilityAPIQueue, func(msg *nats.Msg) {
			handler.HandleMessage(ctx, messaging.NewNatsMsg(msg))
		}); err != nil {
			slog.With(logging.ErrKey, err, "subject", subject).Error("error subscribing to NATS subject")
			return err
		}
		slog.With("subject", subject, "queue", models.AvailabilityAPIQueue).Debug("subscribed to NATS subject")
	}

	return nil
}

// gracefulShutdown drains the NATS connection and stops the HTTP server,
// waiting for both to finish.
func gracefulShutdown(httpServer *http.Server, natsConn *nats.Conn, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	slog.Info("shutting down availability service")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("error shutting down http server")
	}

	if natsConn != nil && !natsConn.IsClosed() {
		// Drain lets in-flight handlers finish before the connection closes.
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
		}
	}

	gracefulCloseWG.Wait()
	slog.Info("availability service shut down")
}
