package scheduler

import (
	"context"
	"time"

	"github.com/foodreco/foodreco-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const purgeTimeout = 30 * time.Second

// Purger drops expired adaptive recommendation entries and reports how many
// went away.
type Purger interface {
	PurgeExpired(ctx context.Context) int
}

// CachePurgeScheduler periodically clears expired recommendation cache entries
type CachePurgeScheduler struct {
	cron   *cron.Cron
	spec   string
	purger Purger
}

func NewCachePurgeScheduler(purger Purger, spec string) *CachePurgeScheduler {
	return &CachePurgeScheduler{
		cron:   cron.New(),
		spec:   spec,
		purger: purger,
	}
}

// Start registers the purge job and starts the cron loop
func (s *CachePurgeScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.runPurge)
	if err != nil {
		logger.Error("Failed to add cron job for recommendation cache purge", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Recommendation cache purge scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

func (s *CachePurgeScheduler) runPurge() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	purged := s.purger.PurgeExpired(ctx)
	logger.Debug("Scheduled recommendation cache purge finished", map[string]interface{}{
		"purged": purged,
	})
}

// Stop waits for a running purge to finish
func (s *CachePurgeScheduler) Stop() {
	logger.Info("Stopping recommendation cache purge scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Recommendation cache purge scheduler stopped")
}
