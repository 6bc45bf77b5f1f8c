package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wonny/dartfin/pkg/logger"
)

// CatalogSource supplies the zipped corpCode.xml
type CatalogSource interface {
	DownloadCorpCodes(ctx context.Context) ([]byte, error)
}

// Stats summarizes the current snapshot
type Stats struct {
	Version int64     `json:"version"`
	Count   int       `json:"count"`
	Listed  int       `json:"listed"`
	BuiltAt time.Time `json:"built_at"`
	Source  string    `json:"source"`
}

// Manager ties the index to its persistence and the DART catalog.
// ⭐ SSOT: 레지스트리 적재/갱신은 이 매니저에서만
type Manager struct {
	index  *Index
	store  Store
	source CatalogSource
	logger *logger.Logger

	refreshMu sync.Mutex
}

// NewManager creates a registry manager. source may be nil for offline use.
func NewManager(index *Index, store Store, source CatalogSource, log *logger.Logger) *Manager {
	return &Manager{
		index:  index,
		store:  store,
		source: source,
		logger: log,
	}
}

// Index returns the managed index
func (m *Manager) Index() *Index {
	return m.index
}

// Init loads the persisted snapshot, downloading the catalog when nothing is stored yet
func (m *Manager) Init(ctx context.Context) error {
	companies, err := m.store.Load(ctx)
	if err == nil {
		snap := m.index.Replace(companies, SourceStore)
		m.logger.WithFields(map[string]interface{}{
			"version": snap.Version,
			"count":   snap.Len(),
		}).Info("Registry loaded from store")
		return nil
	}

	if !errors.Is(err, ErrStoreEmpty) {
		return fmt.Errorf("load registry: %w", err)
	}

	m.logger.Info("Registry store is empty, downloading corp code catalog")
	if _, err := m.Refresh(ctx); err != nil {
		return err
	}
	return nil
}

// Refresh downloads the catalog, rebuilds the index and persists the result.
// A failed download or rebuild keeps the previous snapshot.
func (m *Manager) Refresh(ctx context.Context) (*Snapshot, error) {
	if m.source == nil {
		return nil, errors.New("no catalog source configured")
	}

	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	start := time.Now()
	archive, err := m.source.DownloadCorpCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("download catalog: %w", err)
	}

	return m.rebuild(ctx, archive, start)
}

// RebuildFrom rebuilds from an already-fetched archive (e.g. a local corpCode.zip)
func (m *Manager) RebuildFrom(ctx context.Context, archive []byte) (*Snapshot, error) {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	return m.rebuild(ctx, archive, time.Now())
}

// rebuild must be called with refreshMu held
func (m *Manager) rebuild(ctx context.Context, archive []byte, start time.Time) (*Snapshot, error) {
	companies, snap, err := m.index.rebuild(archive)
	if err != nil {
		m.logger.WithError(err).WithField("bytes", len(archive)).
			Error("Registry rebuild failed, keeping previous snapshot")
		return nil, fmt.Errorf("rebuild registry: %w", err)
	}

	if err := m.store.Save(ctx, companies); err != nil {
		// In-memory snapshot is already live; next refresh retries persistence
		m.logger.WithError(err).Warn("Failed to persist registry snapshot")
	}

	m.logger.WithFields(map[string]interface{}{
		"version":  snap.Version,
		"count":    snap.Len(),
		"duration": time.Since(start),
	}).Info("Registry rebuilt")

	return snap, nil
}

// Stats describes the current snapshot
func (m *Manager) Stats() Stats {
	snap := m.index.Snapshot()

	listed := 0
	for _, c := range snap.companies {
		if c.IsListed() {
			listed++
		}
	}

	return Stats{
		Version: snap.Version,
		Count:   snap.Len(),
		Listed:  listed,
		BuiltAt: snap.BuiltAt,
		Source:  snap.Source,
	}
}
