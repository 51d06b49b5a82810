// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-availability-service/pkg/constants"
)

// flags are the command line flags for the availability service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the availability service.
type environment struct {
	Port         string
	NatsURL      string
	FetchTimeout time.Duration
	FetchWorkers int
}

// parseFlags parses command line flags for the availability service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the availability service
func parseEnv() environment {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://lfx-platform-nats.lfx.svc.cluster.local:4222"
	}

	fetchTimeout := constants.DefaultFetchTimeout
	if raw := os.Getenv("FETCH_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			slog.With("value", raw).Warn("invalid FETCH_TIMEOUT_SECONDS, using default")
		} else {
			fetchTimeout = time.Duration(seconds) * time.Second
		}
	}

	fetchWorkers := constants.DefaultFetchWorkers
	if raw := os.Getenv("FETCH_WORKERS"); raw != "" {
		workers, err := strconv.Atoi(raw)
		if err != nil || workers <= 0 {
			slog.With("value", raw).Warn("invalid FETCH_WORKERS, using default")
		} else {
			fetchWorkers = workers
		}
	}

	return environment{
		Port:         port,
		NatsURL:      natsURL,
		FetchTimeout: fetchTimeout,
		FetchWorkers: fetchWorkers,
	}
}
