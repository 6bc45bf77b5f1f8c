package registry

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MaxSearchResults caps every name search
const MaxSearchResults = 10

// Snapshot sources
const (
	SourceEmpty   = "empty"
	SourceCatalog = "catalog"
	SourceStore   = "store"
)

// Snapshot is one immutable generation of the registry.
// Never mutated after construction; readers may hold it indefinitely.
type Snapshot struct {
	Version int64
	BuiltAt time.Time
	Source  string

	companies []Company
	byCode    map[string]int
}

func newSnapshot(companies []Company, version int64, source string) *Snapshot {
	owned := make([]Company, len(companies))
	copy(owned, companies)

	byCode := make(map[string]int, len(owned))
	for i, c := range owned {
		if c.CorpCode == "" {
			continue
		}
		// 중복 고유번호는 카탈로그상 첫 항목으로 조회
		if _, dup := byCode[c.CorpCode]; !dup {
			byCode[c.CorpCode] = i
		}
	}

	return &Snapshot{
		Version:   version,
		BuiltAt:   time.Now(),
		Source:    source,
		companies: owned,
		byCode:    byCode,
	}
}

// Len returns the number of companies in the snapshot
func (s *Snapshot) Len() int {
	return len(s.companies)
}

// Companies returns a copy of all companies in registry order
func (s *Snapshot) Companies() []Company {
	out := make([]Company, len(s.companies))
	copy(out, s.companies)
	return out
}

// Search returns up to limit companies whose name contains query (case-sensitive),
// in registry order. Blank queries match nothing.
func (s *Snapshot) Search(query string, limit int) []Company {
	results := make([]Company, 0)
	if strings.TrimSpace(query) == "" || limit <= 0 {
		return results
	}

	for _, c := range s.companies {
		if strings.Contains(c.CorpName, query) {
			results = append(results, c)
			if len(results) == limit {
				break
			}
		}
	}
	return results
}

// Lookup finds a company by exact corp code
func (s *Snapshot) Lookup(corpCode string) (Company, bool) {
	i, ok := s.byCode[corpCode]
	if !ok {
		return Company{}, false
	}
	return s.companies[i], true
}

// Index serves search/lookup from the current snapshot and swaps in new ones.
// ⭐ SSOT: 회사 레지스트리 상태는 이 인덱스에서만 관리
type Index struct {
	mu      sync.Mutex // serializes rebuilds
	version int64
	current atomic.Pointer[Snapshot]
}

// NewIndex creates an index holding an empty snapshot
func NewIndex() *Index {
	x := &Index{}
	x.current.Store(newSnapshot(nil, 0, SourceEmpty))
	return x
}

// Rebuild parses a zipped catalog and, on success, replaces the snapshot.
// On failure the current snapshot is left untouched.
func (x *Index) Rebuild(archive []byte) ([]Company, error) {
	companies, _, err := x.rebuild(archive)
	return companies, err
}

func (x *Index) rebuild(archive []byte) ([]Company, *Snapshot, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	companies, err := ParseCatalog(archive)
	if err != nil {
		return nil, nil, err
	}

	return companies, x.swap(companies, SourceCatalog), nil
}

// Replace installs companies (e.g. loaded from a store) as the new snapshot
func (x *Index) Replace(companies []Company, source string) *Snapshot {
	x.mu.Lock()
	defer x.mu.Unlock()

	return x.swap(companies, source)
}

// swap must be called with mu held
func (x *Index) swap(companies []Company, source string) *Snapshot {
	x.version++
	snap := newSnapshot(companies, x.version, source)
	x.current.Store(snap)
	return snap
}

// Snapshot returns the current snapshot
func (x *Index) Snapshot() *Snapshot {
	return x.current.Load()
}

// Search returns at most MaxSearchResults companies whose name contains query
func (x *Index) Search(query string) []Company {
	return x.Snapshot().Search(query, MaxSearchResults)
}

// GetByCode returns the company with the exact corp code or ErrNotFound
func (x *Index) GetByCode(corpCode string) (Company, error) {
	c, ok := x.Snapshot().Lookup(corpCode)
	if !ok {
		return Company{}, ErrNotFound
	}
	return c, nil
}
