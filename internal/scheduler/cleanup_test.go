package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marhild/booksmanager/internal/config"
)

func TestCleanupScheduler_DisabledIsNoOp(t *testing.T) {
	s := NewCleanupScheduler(nil, config.Cleanup{Enabled: false})

	require.NoError(t, s.Start())
	assert.False(t, s.isRunning)
	s.Stop()
}

func TestCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewCleanupScheduler(nil, config.Cleanup{Enabled: true, Schedule: "not a cron spec"})

	err := s.Start()
	assert.Error(t, err)
	assert.False(t, s.isRunning)
}

func TestCleanupScheduler_StartStop(t *testing.T) {
	s := NewCleanupScheduler(nil, config.Cleanup{Enabled: true, Schedule: "0 * * * *"})

	require.NoError(t, s.Start())
	assert.True(t, s.isRunning)

	// A second Start must not double-register
	require.NoError(t, s.Start())

	s.Stop()
	assert.False(t, s.isRunning)
	s.Stop()
}
