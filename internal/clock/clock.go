package clock

import (
	"sync"
	"time"
)

// System is a wall clock guarded to be monotonic non-decreasing: if the wall
// clock steps backwards, Now keeps returning the last observed time until
// the wall clock catches up.
type System struct {
	mu   sync.Mutex
	last time.Time
}

func NewSystem() *System {
	return &System{}
}

func (c *System) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	if now.Before(c.last) {
		return c.last
	}
	c.last = now
	return now
}
