package framework

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// Loop calls controllers periodically.
type Loop struct {
	Interval time.Duration

	controllers []Controller
	runners     []Runnable
}

type loopIteration struct {
	ctx  context.Context
	time time.Time
	tick int
	stop bool
}

// NewLoop creates a Loop.
func NewLoop(interval time.Duration) *Loop {
	return &Loop{Interval: interval}
}

// AddController registers controllers to the loop.
func (l *Loop) AddController(ctls ...Controller) *Loop {
	l.controllers = append(l.controllers, ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnables running alongside the loop.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable. The first tick happens immediately. It returns
// nil when a controller calls Stop.
func (l *Loop) Run(ctx context.Context) error {
	runner := NewRunnerWith(ctx)
	runner.Go(l.runners...)
	defer func() {
		runner.Stop()
		runner.Wait()
	}()

	interval := l.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for tick := 0; ; tick++ {
		if l.runIteration(ctx, tick) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *Loop) runIteration(ctx context.Context, tick int) bool {
	iter := &loopIteration{ctx: ctx, time: time.Now(), tick: tick}
	for _, ctl := range l.controllers {
		if err := ctl.Control(iter); err != nil {
			glog.Errorf("controller error: %v", err)
		}
	}
	return iter.stop
}

func (t *loopIteration) Context() context.Context { return t.ctx }
func (t *loopIteration) Time() time.Time          { return t.time }
func (t *loopIteration) Tick() int                { return t.tick }
func (t *loopIteration) Stop()                    { t.stop = true }
