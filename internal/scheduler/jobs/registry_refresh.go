package jobs

import (
	"context"

	"github.com/wonny/dartfin/internal/registry"
	"github.com/wonny/dartfin/pkg/logger"
)

// DefaultRegistryRefreshSchedule runs daily at 05:00, before DART's morning filings
const DefaultRegistryRefreshSchedule = "0 0 5 * * *"

// RegistryRefresher is satisfied by *registry.Manager
type RegistryRefresher interface {
	Refresh(ctx context.Context) (*registry.Snapshot, error)
}

// RegistryRefreshJob re-downloads the corp code catalog and swaps in a new snapshot
type RegistryRefreshJob struct {
	refresher RegistryRefresher
	schedule  string
	logger    *logger.Logger
}

// NewRegistryRefreshJob creates a registry refresh job; empty schedule uses the default
func NewRegistryRefreshJob(refresher RegistryRefresher, schedule string, log *logger.Logger) *RegistryRefreshJob {
	if schedule == "" {
		schedule = DefaultRegistryRefreshSchedule
	}

	return &RegistryRefreshJob{
		refresher: refresher,
		schedule:  schedule,
		logger:    log,
	}
}

// Name returns the job name
func (j *RegistryRefreshJob) Name() string {
	return "registry_refresh"
}

// Schedule returns the cron schedule
func (j *RegistryRefreshJob) Schedule() string {
	return j.schedule
}

// Run executes the refresh. A failure leaves the previous snapshot serving.
func (j *RegistryRefreshJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled registry refresh")

	snap, err := j.refresher.Refresh(ctx)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"version": snap.Version,
		"count":   snap.Len(),
	}).Info("Registry refresh completed")

	return nil
}
