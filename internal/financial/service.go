// Package financial serves a company's key accounts enriched with derived ratios.
package financial

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/dartfin/internal/external/dart"
	"github.com/wonny/dartfin/internal/ratio"
	"github.com/wonny/dartfin/pkg/logger"
	"github.com/wonny/dartfin/pkg/redis"
)

// Source is the subset of the DART client the service needs
type Source interface {
	FetchSingleAccounts(ctx context.Context, corpCode, year string, report dart.ReportCode) (*dart.FinancialResponse, error)
	GetCompanyInfo(ctx context.Context, corpCode string) (*dart.CompanyInfo, error)
	FetchDisclosures(ctx context.Context, corpCode string, from, to time.Time) ([]dart.Disclosure, error)
}

// Request selects one filing
type Request struct {
	CorpCode string
	Year     string
	Report   dart.ReportCode
	FSDiv    string // CFS / OFS / "" (all)
}

// Report is the DART envelope plus computed ratios
type Report struct {
	Status  string               `json:"status"`
	Message string               `json:"message"`
	List    []dart.FinancialItem `json:"list"`
	Ratios  ratio.Result         `json:"ratios"`
}

// Service fetches statements (cached) and computes ratios per request.
// ⭐ SSOT: 재무정보 + 비율 응답 조립은 이 서비스에서만
type Service struct {
	source Source
	cache  *redis.Cache
	engine *ratio.Engine
	logger *logger.Logger
}

// NewService creates a financial service. cache may be nil.
func NewService(source Source, cache *redis.Cache, engine *ratio.Engine, log *logger.Logger) *Service {
	return &Service{
		source: source,
		cache:  cache,
		engine: engine,
		logger: log,
	}
}

// Engine returns the ratio engine in use
func (s *Service) Engine() *ratio.Engine {
	return s.engine
}

// GetReport returns the filing's key accounts and ratios
func (s *Service) GetReport(ctx context.Context, req Request) (*Report, error) {
	resp, err := s.statements(ctx, req)
	if err != nil {
		return nil, err
	}

	items := dart.FilterFS(resp.List, req.FSDiv)
	ratios, err := s.engine.Compute(LineItems(items))
	if err != nil {
		return nil, fmt.Errorf("compute ratios for %s: %w", req.CorpCode, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"corp_code":  req.CorpCode,
		"bsns_year":  req.Year,
		"reprt_code": req.Report,
		"items":      len(items),
		"ratios":     len(ratios),
	}).Debug("Financial report assembled")

	return &Report{
		Status:  resp.Status,
		Message: resp.Message,
		List:    items,
		Ratios:  ratios,
	}, nil
}

// statements reads through the cache. Empty (013) responses are not cached:
// a filing published later must become visible without waiting for the TTL.
func (s *Service) statements(ctx context.Context, req Request) (*dart.FinancialResponse, error) {
	key := redis.FinancialKey(req.CorpCode, req.Year, string(req.Report))

	if s.cache != nil {
		var cached dart.FinancialResponse
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("Ignoring unreadable cache entry")
		}
		if found && err == nil {
			return &cached, nil
		}
	}

	resp, err := s.source.FetchSingleAccounts(ctx, req.CorpCode, req.Year, req.Report)
	if err != nil {
		return nil, fmt.Errorf("fetch key accounts %s/%s/%s: %w", req.CorpCode, req.Year, req.Report, err)
	}

	if s.cache != nil && len(resp.List) > 0 {
		if err := s.cache.Set(ctx, key, resp, redis.TTLDaily); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("Failed to cache key accounts")
		}
	}
	return resp, nil
}

// Profile returns the company.json profile, cached for an hour
func (s *Service) Profile(ctx context.Context, corpCode string) (*dart.CompanyInfo, error) {
	if s.cache == nil {
		return s.source.GetCompanyInfo(ctx, corpCode)
	}

	var info dart.CompanyInfo
	err := s.cache.GetOrSet(ctx, redis.CompanyProfileKey(corpCode), &info, redis.TTLLong, func() (interface{}, error) {
		return s.source.GetCompanyInfo(ctx, corpCode)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Disclosures returns filings of the last `days` days, newest first as DART orders them
func (s *Service) Disclosures(ctx context.Context, corpCode string, days int) ([]dart.Disclosure, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	return s.source.FetchDisclosures(ctx, corpCode, from, to)
}

// LineItems converts DART rows to ratio engine input
func LineItems(items []dart.FinancialItem) []ratio.StatementLineItem {
	out := make([]ratio.StatementLineItem, len(items))
	for i, item := range items {
		out[i] = ratio.StatementLineItem{
			AccountName:   item.AccountNm,
			Division:      ratio.Division(item.SjDiv),
			CurrentAmount: item.ThstrmAmount,
		}
	}
	return out
}
