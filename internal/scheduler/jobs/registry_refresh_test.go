package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dartfin/internal/registry"
	"github.com/wonny/dartfin/internal/scheduler"
	"github.com/wonny/dartfin/pkg/logger"
)

type fakeRefresher struct {
	snap *registry.Snapshot
	err  error
}

func (f *fakeRefresher) Refresh(ctx context.Context) (*registry.Snapshot, error) {
	return f.snap, f.err
}

func TestRegistryRefreshJob(t *testing.T) {
	snap := registry.NewIndex().Replace([]registry.Company{{CorpCode: "00126380", CorpName: "삼성전자"}}, registry.SourceCatalog)
	job := NewRegistryRefreshJob(&fakeRefresher{snap: snap}, "", logger.Nop())

	var _ scheduler.Job = job
	assert.Equal(t, "registry_refresh", job.Name())
	assert.Equal(t, DefaultRegistryRefreshSchedule, job.Schedule())
	require.NoError(t, job.Run(context.Background()))
}

func TestRegistryRefreshJob_Error(t *testing.T) {
	job := NewRegistryRefreshJob(&fakeRefresher{err: errors.New("download failed")}, "@hourly", logger.Nop())

	assert.Equal(t, "@hourly", job.Schedule())
	assert.EqualError(t, job.Run(context.Background()), "download failed")
}
