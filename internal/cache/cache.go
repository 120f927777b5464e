// Package cache holds rendered dashboard views between mutations.
// Every write to the transaction store purges it, so a hit can never
// serve stale totals.
package cache

import (
	"log/slog"
	"time"
)

// Cache is the read side used by the handlers.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Purge()
	Size() int
}

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Janitor runs periodic expiry sweeps over registered caches.
type Janitor struct {
	caches []Cleaner
	stop   chan struct{}
	done   chan struct{}
}

func NewJanitor() *Janitor {
	return &Janitor{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (j *Janitor) Register(c Cleaner) {
	j.caches = append(j.caches, c)
}

// Start begins the sweep loop. Call Stop to end it.
func (j *Janitor) Start(interval time.Duration) {
	go j.run(interval)
}

func (j *Janitor) run(interval time.Duration) {
	defer close(j.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cleaned := 0
			for _, c := range j.caches {
				cleaned += c.CleanExpired()
			}
			if cleaned > 0 {
				slog.Debug("Cache sweep", "removed", cleaned)
			}
		case <-j.stop:
			return
		}
	}
}

// Stop ends the sweep loop and waits for it to finish.
func (j *Janitor) Stop() {
	close(j.stop)
	<-j.done
}
