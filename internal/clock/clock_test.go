package clock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemNowIsNonDecreasing(t *testing.T) {
	c := NewSystem()

	prev := c.Now()
	for i := 0; i < 1000; i++ {
		now := c.Now()
		assert.False(t, now.Before(prev))
		prev = now
	}
}

func TestSystemNowUnderConcurrency(t *testing.T) {
	c := NewSystem()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prev := c.Now()
			for j := 0; j < 200; j++ {
				now := c.Now()
				assert.False(t, now.Before(prev))
				prev = now
			}
		}()
	}
	wg.Wait()
}

func TestSystemNowIsUTC(t *testing.T) {
	c := NewSystem()
	assert.Equal(t, "UTC", c.Now().Location().String())
}
