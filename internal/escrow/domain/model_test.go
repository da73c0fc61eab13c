package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProjectOpen(t *testing.T) {
	deadline := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	p := Project{Deadline: deadline}

	assert.True(t, p.Open(deadline.Add(-time.Minute)))
	assert.False(t, p.Open(deadline))
	assert.False(t, p.Open(deadline.Add(time.Minute)))

	p.Finalized = true
	assert.False(t, p.Open(deadline.Add(-time.Minute)))
}
