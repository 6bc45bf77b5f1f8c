package dart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Financial statement (fs_div) kinds
const (
	FSConsolidated = "CFS" // 연결재무제표
	FSSeparate     = "OFS" // 재무제표
)

// FinancialResponse is the fnlttSinglAcnt.json envelope
type FinancialResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	List    []FinancialItem `json:"list"`
}

// FinancialItem is one key account row of a single company
type FinancialItem struct {
	RceptNo         string `json:"rcept_no"`          // 접수번호
	BsnsYear        string `json:"bsns_year"`         // 사업연도
	CorpCode        string `json:"corp_code"`         // 고유번호
	StockCode       string `json:"stock_code"`        // 종목코드
	ReprtCode       string `json:"reprt_code"`        // 보고서코드
	AccountNm       string `json:"account_nm"`        // 계정명
	FsDiv           string `json:"fs_div"`            // CFS / OFS
	FsNm            string `json:"fs_nm"`             // 연결재무제표 / 재무제표
	SjDiv           string `json:"sj_div"`            // BS / IS
	SjNm            string `json:"sj_nm"`             // 재무상태표 / 손익계산서
	ThstrmNm        string `json:"thstrm_nm"`         // 당기명
	ThstrmDt        string `json:"thstrm_dt"`         // 당기일자
	ThstrmAmount    string `json:"thstrm_amount"`     // 당기금액
	ThstrmAddAmount string `json:"thstrm_add_amount"` // 당기누적금액 (분/반기)
	FrmtrmNm        string `json:"frmtrm_nm"`         // 전기명
	FrmtrmDt        string `json:"frmtrm_dt"`
	FrmtrmAmount    string `json:"frmtrm_amount"`
	FrmtrmAddAmount string `json:"frmtrm_add_amount"`
	BfefrmtrmNm     string `json:"bfefrmtrm_nm"` // 전전기명 (사업보고서만)
	BfefrmtrmDt     string `json:"bfefrmtrm_dt"`
	BfefrmtrmAmount string `json:"bfefrmtrm_amount"`
	Ord             string `json:"ord"`
	Currency        string `json:"currency"`
}

// FetchSingleAccounts fetches key accounts for one company/year/report.
// Status 013 (no data) is returned as a successful envelope with an empty list.
// ⭐ SSOT: 단일회사 주요계정 호출은 이 함수에서만
func (c *Client) FetchSingleAccounts(ctx context.Context, corpCode, year string, report ReportCode) (*FinancialResponse, error) {
	params := url.Values{}
	params.Set("corp_code", corpCode)
	params.Set("bsns_year", year)
	params.Set("reprt_code", string(report))

	var resp FinancialResponse
	err := c.withRetry(ctx, "fnlttSinglAcnt.json", func() error {
		body, err := c.fetch(ctx, "fnlttSinglAcnt.json", params)
		if err != nil {
			return err
		}
		resp = FinancialResponse{}
		if err := json.Unmarshal(body, &resp); err != nil {
			return fmt.Errorf("%w: decode fnlttSinglAcnt.json: %v", ErrUnexpectedPayload, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Status == StatusNoData {
		resp.List = []FinancialItem{}
		return &resp, nil
	}
	if err := checkStatus(resp.Status, resp.Message); err != nil {
		return nil, err
	}
	if resp.List == nil {
		resp.List = []FinancialItem{}
	}

	c.logger.WithFields(map[string]interface{}{
		"corp_code":  corpCode,
		"bsns_year":  year,
		"reprt_code": report,
		"items":      len(resp.List),
	}).Debug("Fetched DART key accounts")

	return &resp, nil
}

// FilterFS keeps only items of the given statement kind (CFS/OFS); empty keeps all
func FilterFS(items []FinancialItem, fsDiv string) []FinancialItem {
	if fsDiv == "" {
		return items
	}

	out := make([]FinancialItem, 0, len(items))
	for _, item := range items {
		if item.FsDiv == fsDiv {
			out = append(out, item)
		}
	}
	return out
}
