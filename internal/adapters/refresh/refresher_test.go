package refresh_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/praxislabs/compass/internal/adapters/refresh"
	"github.com/praxislabs/compass/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func TestRefresher(t *testing.T) {
	Convey("Given a refresher with a short interval", t, func() {
		var calls atomic.Int64
		r := refresh.New(5*time.Millisecond, func(ctx context.Context) {
			calls.Add(1)
		})

		Convey("When started and left to run", func() {
			r.Start(context.Background())
			time.Sleep(40 * time.Millisecond)
			r.Stop()

			Convey("Then the reload function fired at least once", func() {
				So(calls.Load(), ShouldBeGreaterThan, 0)
			})

			Convey("And Stop is idempotent", func() {
				So(r.Stop, ShouldNotPanic)
			})
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			r.Start(ctx)
			cancel()

			Convey("Then the loop exits without Stop", func() {
				done := make(chan struct{})
				go func() {
					r.Stop()
					close(done)
				}()
				select {
				case <-done:
				case <-time.After(time.Second):
					t.Fatal("refresher did not stop after context cancel")
				}
			})
		})
	})
}
