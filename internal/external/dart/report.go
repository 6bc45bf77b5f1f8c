package dart

import (
	"fmt"
	"strconv"
	"time"
)

// ReportCode identifies the periodic report (reprt_code)
type ReportCode string

const (
	ReportAnnual   ReportCode = "11011" // 사업보고서
	ReportHalf     ReportCode = "11012" // 반기보고서
	ReportQuarter1 ReportCode = "11013" // 1분기보고서
	ReportQuarter3 ReportCode = "11014" // 3분기보고서
)

var reportNames = map[ReportCode]string{
	ReportAnnual:   "사업보고서",
	ReportHalf:     "반기보고서",
	ReportQuarter1: "1분기보고서",
	ReportQuarter3: "3분기보고서",
}

// ParseReportCode validates s; empty defaults to the annual report
func ParseReportCode(s string) (ReportCode, error) {
	if s == "" {
		return ReportAnnual, nil
	}

	code := ReportCode(s)
	if _, ok := reportNames[code]; !ok {
		return "", fmt.Errorf("invalid reprt_code %q (11011|11012|11013|11014)", s)
	}
	return code, nil
}

// Name returns the Korean report name
func (r ReportCode) Name() string {
	return reportNames[r]
}

// ParseBusinessYear validates a four-digit fiscal year; empty defaults to last year.
// DART keeps filings from 2015 onward.
func ParseBusinessYear(s string, now time.Time) (string, error) {
	if s == "" {
		return strconv.Itoa(now.Year() - 1), nil
	}

	year, err := strconv.Atoi(s)
	if err != nil || len(s) != 4 {
		return "", fmt.Errorf("invalid bsns_year %q", s)
	}
	if year < 2015 || year > now.Year() {
		return "", fmt.Errorf("bsns_year %d out of range (2015-%d)", year, now.Year())
	}
	return s, nil
}
