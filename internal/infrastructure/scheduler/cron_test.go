package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_InvalidSchedule(t *testing.T) {
	_, err := Start(zerolog.Nop(), Job{Name: "bad", Schedule: "not a cron", Run: func() {}})
	assert.Error(t, err)
}

func TestStart_SkipsEmptySchedule(t *testing.T) {
	c, err := Start(zerolog.Nop(), Job{Name: "off", Schedule: "", Run: func() {}})
	require.NoError(t, err)
	defer c.Stop()
	assert.Empty(t, c.Entries())
}

func TestStart_RunsJob(t *testing.T) {
	var calls atomic.Int32
	c, err := Start(zerolog.Nop(), Job{Name: "tick", Schedule: "@every 1s", Run: func() { calls.Add(1) }})
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 1)
	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
