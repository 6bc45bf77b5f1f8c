package financial

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dartfin/internal/external/dart"
	"github.com/wonny/dartfin/internal/ratio"
	"github.com/wonny/dartfin/pkg/logger"
	"github.com/wonny/dartfin/pkg/redis"
)

type fakeSource struct {
	resp  *dart.FinancialResponse
	info  *dart.CompanyInfo
	err   error
	calls int

	from, to time.Time
}

func (f *fakeSource) FetchSingleAccounts(ctx context.Context, corpCode, year string, report dart.ReportCode) (*dart.FinancialResponse, error) {
	f.calls++
	return f.resp, f.err
}

func (f *fakeSource) GetCompanyInfo(ctx context.Context, corpCode string) (*dart.CompanyInfo, error) {
	f.calls++
	return f.info, f.err
}

func (f *fakeSource) FetchDisclosures(ctx context.Context, corpCode string, from, to time.Time) ([]dart.Disclosure, error) {
	f.from, f.to = from, to
	return []dart.Disclosure{{CorpCode: corpCode, ReportNm: "사업보고서 (2023.12)"}}, f.err
}

func newTestService(t *testing.T, src *fakeSource) *Service {
	t.Helper()
	engine, err := ratio.NewDefaultEngine()
	require.NoError(t, err)
	return NewService(src, redis.NewCache(redis.Disabled(), "dartfin"), engine, logger.Nop())
}

func item(fs, sj, account, amount string) dart.FinancialItem {
	return dart.FinancialItem{FsDiv: fs, SjDiv: sj, AccountNm: account, ThstrmAmount: amount}
}

func TestGetReport(t *testing.T) {
	src := &fakeSource{resp: &dart.FinancialResponse{
		Status:  dart.StatusOK,
		Message: "정상",
		List: []dart.FinancialItem{
			item("CFS", "BS", "유동자산", "1,200,000"),
			item("CFS", "BS", "유동부채", "600,000"),
			item("OFS", "BS", "유동자산", "900,000"),
			item("OFS", "BS", "유동부채", "900,000"),
		},
	}}
	svc := newTestService(t, src)

	req := Request{CorpCode: "00126380", Year: "2023", Report: dart.ReportAnnual}

	// All statements: the later OFS rows win
	report, err := svc.GetReport(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, dart.StatusOK, report.Status)
	assert.Len(t, report.List, 4)
	assert.Equal(t, 100.0, report.Ratios["current_ratio"].Value)

	req.FSDiv = dart.FSConsolidated
	report, err = svc.GetReport(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, report.List, 2)
	assert.Equal(t, ratio.Value{DisplayName: "유동비율", Value: 200.0, Unit: "%"}, report.Ratios["current_ratio"])
}

func TestGetReport_NoData(t *testing.T) {
	src := &fakeSource{resp: &dart.FinancialResponse{
		Status:  dart.StatusNoData,
		Message: "조회된 데이타가 없습니다.",
		List:    []dart.FinancialItem{},
	}}

	report, err := newTestService(t, src).GetReport(context.Background(), Request{CorpCode: "00000000", Year: "2023", Report: dart.ReportAnnual})
	require.NoError(t, err)
	assert.Equal(t, dart.StatusNoData, report.Status)
	assert.NotNil(t, report.Ratios)
	assert.Empty(t, report.Ratios)
}

func TestGetReport_SourceError(t *testing.T) {
	src := &fakeSource{err: &dart.APIError{Status: "020", Message: "요청 제한을 초과하였습니다."}}

	_, err := newTestService(t, src).GetReport(context.Background(), Request{CorpCode: "00126380", Year: "2023", Report: dart.ReportAnnual})
	var apiErr *dart.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestGetReport_MalformedItems(t *testing.T) {
	src := &fakeSource{resp: &dart.FinancialResponse{
		Status: dart.StatusOK,
		List:   []dart.FinancialItem{item("CFS", "", "유동자산", "1")},
	}}

	_, err := newTestService(t, src).GetReport(context.Background(), Request{CorpCode: "00126380", Year: "2023", Report: dart.ReportAnnual})
	assert.ErrorIs(t, err, ratio.ErrMalformedLineItem)
}

func TestProfile_DisabledCachePassesThrough(t *testing.T) {
	src := &fakeSource{info: &dart.CompanyInfo{Status: "000", CorpName: "삼성전자(주)"}}
	svc := newTestService(t, src)

	info, err := svc.Profile(context.Background(), "00126380")
	require.NoError(t, err)
	assert.Equal(t, "삼성전자(주)", info.CorpName)

	_, err = svc.Profile(context.Background(), "00126380")
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls, "disabled cache never stores")
}

func TestProfile_Error(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	_, err := newTestService(t, src).Profile(context.Background(), "00126380")
	assert.Error(t, err)
}

func TestDisclosuresWindow(t *testing.T) {
	src := &fakeSource{}
	list, err := newTestService(t, src).Disclosures(context.Background(), "00126380", 30)
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.InDelta(t, 30*24*time.Hour, src.to.Sub(src.from), float64(2*time.Hour))
}

func TestLineItems(t *testing.T) {
	items := LineItems([]dart.FinancialItem{item("CFS", "IS", "매출액", "1,000")})
	assert.Equal(t, []ratio.StatementLineItem{{
		AccountName:   "매출액",
		Division:      ratio.DivisionIS,
		CurrentAmount: "1,000",
	}}, items)
}
