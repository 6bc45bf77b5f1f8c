// Package registry holds the DART corporate identifier catalog (corpCode.xml)
// as an immutable, swap-on-rebuild snapshot with name search and code lookup.
package registry

import "errors"

// Company is one entry of the DART corp code catalog
// ⭐ SSOT: 고유번호 레코드 형식은 여기서만 정의
type Company struct {
	CorpCode   string `json:"corp_code"`   // 고유번호 (8자리)
	CorpName   string `json:"corp_name"`   // 정식 회사명
	StockCode  string `json:"stock_code"`  // 종목코드 (비상장: "")
	ModifyDate string `json:"modify_date"` // 최종변경일자 (YYYYMMDD)
}

// IsListed reports whether the company has a market ticker
func (c Company) IsListed() bool {
	return c.StockCode != ""
}

var (
	// ErrArchiveFormat is returned when the catalog bytes are not a zip archive
	ErrArchiveFormat = errors.New("catalog is not a valid zip archive")

	// ErrCatalogNotFound is returned when the archive holds no catalog document
	ErrCatalogNotFound = errors.New("catalog document not found in archive")

	// ErrCatalogMalformed is returned when the catalog document is not well-formed XML
	ErrCatalogMalformed = errors.New("catalog document is malformed")

	// ErrNotFound is returned by lookups when no company has the given code
	ErrNotFound = errors.New("company not found")
)
