package common

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func Interrupted() <-chan os.Signal {
	interrupt := make(chan os.Signal, 2)
	signal.Notify(interrupt,
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGQUIT,
	)
	return interrupt
}

// InterruptContext returns a context canceled by the first interrupt signal.
// force is called on the second.
func InterruptContext(parent context.Context, force func()) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	interrupt := Interrupted()
	go func() {
		for i := 0; ; i++ {
			select {
			case sig := <-interrupt:
				slog.Warn("Received signal", "signal", sig, "i", i)
				if i > 0 {
					force()
					return
				}
				cancel()
			case <-parent.Done():
				return
			}
		}
	}()
	return ctx, cancel
}
