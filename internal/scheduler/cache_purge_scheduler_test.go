package scheduler

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPurger struct {
	calls atomic.Int32
}

func (p *countingPurger) PurgeExpired(ctx context.Context) int {
	p.calls.Add(1)
	return 2
}

func TestCachePurgeScheduler_InvalidSpec(t *testing.T) {
	s := NewCachePurgeScheduler(&countingPurger{}, "not a cron spec")
	assert.Error(t, s.Start())
}

func TestCachePurgeScheduler_StartStop(t *testing.T) {
	purger := &countingPurger{}
	s := NewCachePurgeScheduler(purger, "*/10 * * * *")

	require.NoError(t, s.Start())
	require.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

func TestCachePurgeScheduler_RunPurge(t *testing.T) {
	purger := &countingPurger{}
	s := NewCachePurgeScheduler(purger, "@every 1h")

	s.runPurge()
	s.runPurge()
	assert.Equal(t, int32(2), purger.calls.Load())
}
