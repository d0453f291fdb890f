package scan

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupInterruptHandler returns a context cancelled on SIGINT or SIGTERM,
// letting a foreground scan stop as a cancellation (empty success) instead
// of dying mid-invocation.
//
// Usage:
//
//	ctx, cancel := scan.SetupInterruptHandler()
//	defer cancel()
//	result := orchestrator.Scan(ctx, roots)
func SetupInterruptHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx, cancel
}
