// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the availability service API that computes bookable time
// slots for sets of participants and handles NATS messages for schedule and
// busy-calendar management.
package main

import (
	"context"
	_ "expvar"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/handlers"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/infrastructure/availability"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/service"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Setup NATS connection
	natsConn, err := setupNATS(env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	// Get the key-value stores for the service.
	repos, err := getKeyValueStores(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error getting key-value stores")
		return
	}

	// Initialize services
	serviceConfig := service.ServiceConfig{
		FetchTimeout: env.FetchTimeout,
		FetchWorkers: env.FetchWorkers,
	}
	provider := availability.NewStoreProvider(repos.Schedule, repos.Calendar)
	availabilityService := service.NewAvailabilityService(provider, serviceConfig)
	scheduleService := service.NewScheduleService(repos.Schedule, repos.Calendar)

	// Initialize handlers
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService, scheduleService)

	httpServer := setupHTTPServer(flags, availabilityHandler, natsConn, &gracefulCloseWG)

	// Create NATS subscriptions for the service.
	err = createNatsSubscriptions(ctx, availabilityHandler, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error creating NATS subscriptions")
		return
	}

	slog.With("nats_url", env.NatsURL, "port", flags.Port).Info("availability service started")

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, natsConn, &gracefulCloseWG, cancel)
}
