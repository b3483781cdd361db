// Package cache provides a small in-process LRU cache with TTL, used to
// memoize rendered dashboard payloads between ledger mutations.
package cache

import "time"

// Cache is the read-through interface handlers depend on.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Sweeper periodically cleans registered caches until stopped.
type Sweeper struct {
	caches []Cleaner
	stop   chan struct{}
	done   chan struct{}
}

func NewSweeper() *Sweeper {
	return &Sweeper{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (s *Sweeper) Register(c Cleaner) {
	s.caches = append(s.caches, c)
}

// Start launches the sweep loop in its own goroutine.
func (s *Sweeper) Start(interval time.Duration) {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				for _, c := range s.caches {
					c.CleanExpired()
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep loop and waits for it to exit.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}
