// Package scheduler runs background maintenance on a fixed interval.
package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task once right away and then on every tick until ctx is done.
// A non-positive interval disables the task. Runs never overlap.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	if interval <= 0 {
		log.Printf("[scheduler:%s] disabled", name)
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	run(ctx, name, task)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run(ctx, name, task)
		}
	}
}

func run(ctx context.Context, name string, task Task) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := task(ctx); err != nil {
		log.Printf("[scheduler:%s] error: %v", name, err)
		return
	}
	log.Printf("[scheduler:%s] ok dur_ms=%d", name, time.Since(start).Milliseconds())
}
