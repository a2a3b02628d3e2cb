// ABOUTME: Minimal fake course assistant for local development and E2E testing
// ABOUTME: Usage: fake-assistant [-addr localhost:8000] [-delay 500ms]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/2389/coursechat/internal/assistant/assistanttest"
	"github.com/2389/coursechat/internal/config"
	"github.com/2389/coursechat/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring .env: %v", err)
	}

	addr := flag.String("addr", envOr("FAKE_ASSISTANT_ADDR", "localhost:8000"), "Listen address")
	delay := flag.Duration("delay", 0, "Artificial delay before each chat reply")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if err := run(*addr, *delay, *level); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run(addr string, delay time.Duration, level string) error {
	logger := logging.New(config.LoggingConfig{Level: level, Format: "text"}, os.Stderr)

	svc := assistanttest.New(
		assistanttest.WithDelay(delay),
		assistanttest.WithLogger(logger),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           svc.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fake assistant listening", "addr", addr, "delay", delay)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
