// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-availability-service/internal/handlers"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-availability-service/internal/middleware"
)

// setupHTTPServer configures and starts the HTTP server for health probes.
func setupHTTPServer(flags flags, handler *handlers.AvailabilityHandler, natsConn *nats.Conn, gracefulCloseWG *sync.WaitGroup) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if !natsConn.IsConnected() || !handler.HandlerReady() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	var httpHandler http.Handler = mux
	httpHandler = middleware.RequestLoggerMiddleware()(httpHandler)

	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           httpHandler,
		ReadHeaderTimeout: 3 * time.Second,
	}
	gracefulCloseWG.Add(1)
	go func() {
		defer gracefulCloseWG.Done()
		slog.With("addr", addr).Debug("starting http server, listening on port " + flags.Port)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.With(logging.ErrKey, err).Error("http listener error")
			os.Exit(1)
		}
	}()

	return httpServer
}
