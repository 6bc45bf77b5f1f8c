package dart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// CompanyInfo is the company.json profile (기업개황)
type CompanyInfo struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	CorpCode    string `json:"corp_code"`
	CorpName    string `json:"corp_name"`
	CorpNameEng string `json:"corp_name_eng"`
	StockName   string `json:"stock_name"`
	StockCode   string `json:"stock_code"`
	CeoNm       string `json:"ceo_nm"`
	CorpCls     string `json:"corp_cls"` // Y: 유가, K: 코스닥, N: 코넥스, E: 기타
	JurirNo     string `json:"jurir_no"` // 법인등록번호
	BizrNo      string `json:"bizr_no"`  // 사업자등록번호
	Adres       string `json:"adres"`
	HmURL       string `json:"hm_url"`
	IrURL       string `json:"ir_url"`
	PhnNo       string `json:"phn_no"`
	FaxNo       string `json:"fax_no"`
	IndutyCode  string `json:"induty_code"`
	EstDt       string `json:"est_dt"` // 설립일 (YYYYMMDD)
	AccMt       string `json:"acc_mt"` // 결산월 (MM)
}

// GetCompanyInfo fetches the company profile
func (c *Client) GetCompanyInfo(ctx context.Context, corpCode string) (*CompanyInfo, error) {
	params := url.Values{}
	params.Set("corp_code", corpCode)

	var info CompanyInfo
	err := c.withRetry(ctx, "company.json", func() error {
		body, err := c.fetch(ctx, "company.json", params)
		if err != nil {
			return err
		}
		info = CompanyInfo{}
		if err := json.Unmarshal(body, &info); err != nil {
			return fmt.Errorf("%w: decode company.json: %v", ErrUnexpectedPayload, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := checkStatus(info.Status, info.Message); err != nil {
		return nil, err
	}
	return &info, nil
}

// Category returns the market of the profile's corp_cls
func (i *CompanyInfo) Category() Category {
	return GetCategory(i.CorpCls)
}
