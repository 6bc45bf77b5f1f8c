package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/wonny/dartfin/internal/external/dart"
	"github.com/wonny/dartfin/internal/financial"
	"github.com/wonny/dartfin/internal/ratio"
	"github.com/wonny/dartfin/pkg/logger"
)

// FinancialHandler handles key account and ratio endpoints
type FinancialHandler struct {
	service *financial.Service
	logger  *logger.Logger
	now     func() time.Time
}

// NewFinancialHandler creates a new financial handler
func NewFinancialHandler(service *financial.Service, log *logger.Logger) *FinancialHandler {
	return &FinancialHandler{
		service: service,
		logger:  log,
		now:     time.Now,
	}
}

// GetFinancialData returns the DART envelope plus ratios
// GET /get_financial_data?corp_code=00126380&bsns_year=2023&reprt_code=11011&fs_div=CFS
func (h *FinancialHandler) GetFinancialData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	corpCode := strings.TrimSpace(q.Get("corp_code"))
	if corpCode == "" {
		respondError(w, http.StatusBadRequest, "corp_code is required")
		return
	}

	year, err := dart.ParseBusinessYear(q.Get("bsns_year"), h.now())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := dart.ParseReportCode(q.Get("reprt_code"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	fsDiv := strings.ToUpper(q.Get("fs_div"))
	if fsDiv != "" && fsDiv != dart.FSConsolidated && fsDiv != dart.FSSeparate {
		respondError(w, http.StatusBadRequest, "fs_div must be CFS or OFS")
		return
	}

	result, err := h.service.GetReport(r.Context(), financial.Request{
		CorpCode: corpCode,
		Year:     year,
		Report:   report,
		FSDiv:    fsDiv,
	})
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"corp_code":  corpCode,
			"bsns_year":  year,
			"reprt_code": report,
		}).Error("Failed to get financial data")

		if errors.Is(err, ratio.ErrMalformedLineItem) {
			respondError(w, http.StatusBadGateway, "DART returned malformed line items")
			return
		}
		respondUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// ListRatios returns the ratio definitions
// GET /api/ratios
func (h *FinancialHandler) ListRatios(w http.ResponseWriter, r *http.Request) {
	defs := h.service.Engine().Definitions()

	result := make([]map[string]interface{}, len(defs))
	for i, d := range defs {
		result[i] = map[string]interface{}{
			"id":           d.ID,
			"display_name": d.DisplayName,
			"numerator":    map[string]string{"account": d.Numerator.Account, "division": string(d.Numerator.Division)},
			"denominator":  map[string]string{"account": d.Denominator.Account, "division": string(d.Denominator.Division)},
			"unit":         ratio.Unit,
		}
	}

	respondJSON(w, http.StatusOK, result)
}
