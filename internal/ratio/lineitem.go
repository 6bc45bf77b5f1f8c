// Package ratio derives percentage ratios from DART single-account statement
// line items. The engine is stateless; every Compute call is independent.
package ratio

import (
	"errors"
	"fmt"
)

// Division is the statement a line item belongs to (DART sj_div)
type Division string

const (
	DivisionBS Division = "BS" // 재무상태표
	DivisionIS Division = "IS" // 손익계산서
)

// StatementLineItem is one account row as returned by fnlttSinglAcnt.json.
// ⭐ SSOT: 비율 계산 입력 형식은 여기서만 정의
type StatementLineItem struct {
	AccountName   string   `json:"account_nm"`    // 계정명 (예: 유동자산)
	Division      Division `json:"sj_div"`        // BS / IS
	CurrentAmount string   `json:"thstrm_amount"` // 당기금액 (예: "1,234,567")
}

// ErrMalformedLineItem is returned when a line item has no statement division
var ErrMalformedLineItem = errors.New("malformed statement line item")

func validateItems(items []StatementLineItem) error {
	for i, item := range items {
		if item.Division == "" {
			return fmt.Errorf("%w: item %d (%q) has no sj_div", ErrMalformedLineItem, i, item.AccountName)
		}
	}
	return nil
}
