// Package refresh runs the periodic snapshot reload loop. The engine itself
// has no internal parallelism; this is the only long-lived goroutine besides
// the HTTP server.
package refresh

import (
	"context"
	"time"

	"github.com/praxislabs/compass/pkg/logger"
)

// Option applies a configuration option to the Refresher.
type Option func(*Refresher)

// WithLogger sets a custom logger for the refresher.
func WithLogger(log logger.Logger) Option {
	return func(r *Refresher) {
		if log != nil {
			r.logger = log
		}
	}
}

// Refresher invokes a reload function on a fixed cadence until stopped.
type Refresher struct {
	interval time.Duration
	reload   func(ctx context.Context)

	stop chan struct{}
	done chan struct{}

	logger logger.Logger
}

// New creates a Refresher. The reload function must be safe to call
// repeatedly; it is never invoked concurrently with itself.
func New(interval time.Duration, reload func(ctx context.Context), opts ...Option) *Refresher {
	r := &Refresher{
		interval: interval,
		reload:   reload,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("refresh")
	}
	return r
}

// Start launches the refresh loop.
func (r *Refresher) Start(ctx context.Context) {
	go r.run(ctx)
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info(ctx, "refresh loop started", logger.String("interval", r.interval.String()))
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stop:
			return
		case <-ticker.C:
			r.reload(ctx)
		}
	}
}

// Stop halts the loop and waits for it to exit.
func (r *Refresher) Stop() {
	select {
	case <-r.stop:
		// Already stopped.
	default:
		close(r.stop)
	}
	<-r.done
}
