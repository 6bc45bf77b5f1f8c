package dart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DisclosureResponse represents DART API response for disclosure list
type DisclosureResponse struct {
	Status      string       `json:"status"`
	Message     string       `json:"message"`
	PageNo      int          `json:"page_no"`
	PageCount   int          `json:"page_count"`
	TotalCount  int          `json:"total_count"`
	TotalPage   int          `json:"total_page"`
	Disclosures []Disclosure `json:"list"`
}

// Disclosure represents a single disclosure item
type Disclosure struct {
	CorpCode  string `json:"corp_code"`
	CorpName  string `json:"corp_name"`
	StockCode string `json:"stock_code"`
	CorpCls   string `json:"corp_cls"`
	ReportNm  string `json:"report_nm"` // 공시 제목
	RceptNo   string `json:"rcept_no"`  // 접수번호
	FlrNm     string `json:"flr_nm"`    // 공시 제출인
	RceptDt   string `json:"rcept_dt"`  // 접수일자 (YYYYMMDD)
	Rm        string `json:"rm"`        // 비고
}

// Category represents the listing market
type Category string

const (
	CategoryKOSPI  Category = "KOSPI"
	CategoryKOSDAQ Category = "KOSDAQ"
	CategoryKONEX  Category = "KONEX"
	CategoryETC    Category = "ETC"
)

// MaxDisclosurePage is the largest page_count DART accepts
const MaxDisclosurePage = 100

// FetchDisclosures fetches the first page of a company's disclosures within a date range
func (c *Client) FetchDisclosures(ctx context.Context, corpCode string, from, to time.Time) ([]Disclosure, error) {
	params := url.Values{}
	params.Set("corp_code", corpCode)
	params.Set("bgn_de", from.Format("20060102"))
	params.Set("end_de", to.Format("20060102"))
	params.Set("page_count", fmt.Sprint(MaxDisclosurePage))

	var result DisclosureResponse
	err := c.withRetry(ctx, "list.json", func() error {
		body, err := c.fetch(ctx, "list.json", params)
		if err != nil {
			return err
		}
		result = DisclosureResponse{}
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("%w: decode list.json: %v", ErrUnexpectedPayload, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Status == StatusNoData {
		return []Disclosure{}, nil // No data is not an error
	}
	if err := checkStatus(result.Status, result.Message); err != nil {
		return nil, err
	}
	return result.Disclosures, nil
}

var majorKeywords = []string{
	"사업보고서",
	"분기보고서",
	"반기보고서",
	"주요사항보고서",
	"유상증자",
	"무상증자",
	"합병",
	"분할",
	"영업양수도",
	"자기주식",
	"전환사채",
	"신주인수권부사채",
}

// IsMajor checks if the disclosure is a periodic report or a major corporate event
func (d Disclosure) IsMajor() bool {
	for _, keyword := range majorKeywords {
		if strings.Contains(d.ReportNm, keyword) {
			return true
		}
	}
	return false
}

// URL builds the DART viewer link
func (d Disclosure) URL() string {
	return "https://dart.fss.or.kr/dsaf001/main.do?rcpNo=" + d.RceptNo
}

// GetCategory returns the market for corp_cls
func GetCategory(corpCls string) Category {
	switch corpCls {
	case "Y":
		return CategoryKOSPI
	case "K":
		return CategoryKOSDAQ
	case "N":
		return CategoryKONEX
	default:
		return CategoryETC
	}
}
