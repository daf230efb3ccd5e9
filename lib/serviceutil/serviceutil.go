package serviceutil

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Returns a context that will live until Ctrl+C is pressed
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		slog.Debug("received shutdown signal")
		cancel()
	}()

	return ctx
}

// Fatal logs message with err and exits, for use in cmd/ only.
func Fatal(message string, err error) {
	slog.Error(message, "err", err)
	os.Exit(1)
}
