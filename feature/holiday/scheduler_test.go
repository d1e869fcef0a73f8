package holiday

import (
	"testing"

	"holiday-keeper/feature/holiday/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewSchedulerRejectsUnknownTimezone(t *testing.T) {
	_, err := NewScheduler(nil, zap.NewNop(), sync.Config{
		Cron:     "0 1 2 1 *",
		Timezone: "Mars/Olympus",
	})
	assert.Error(t, err)
}

func TestSchedulerRejectsInvalidCronSpec(t *testing.T) {
	s, err := NewScheduler(nil, zap.NewNop(), sync.Config{
		Cron:     "not a cron spec",
		Timezone: "Asia/Seoul",
	})
	require.NoError(t, err)
	assert.Error(t, s.Start())
}
