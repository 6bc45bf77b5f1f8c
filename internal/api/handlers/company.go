package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/dartfin/internal/external/dart"
	"github.com/wonny/dartfin/internal/financial"
	"github.com/wonny/dartfin/internal/registry"
	"github.com/wonny/dartfin/pkg/logger"
)

// CompanyHandler handles company search and lookup endpoints
// ⭐ SSOT: 회사 조회 API 핸들러는 이 구조체에서만
type CompanyHandler struct {
	index   *registry.Index
	service *financial.Service
	logger  *logger.Logger
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(index *registry.Index, service *financial.Service, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{
		index:   index,
		service: service,
		logger:  log,
	}
}

// Search returns at most 10 companies whose name contains query
// GET /search_company?query=삼성
func (h *CompanyHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	respondJSON(w, http.StatusOK, h.index.Search(query))
}

// Get returns one company by corp code
// GET /api/companies/{corp_code}
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	corpCode := mux.Vars(r)["corp_code"]

	company, err := h.index.GetByCode(corpCode)
	if errors.Is(err, registry.ErrNotFound) {
		respondError(w, http.StatusNotFound, "no such company: "+corpCode)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to look up company")
		return
	}

	respondJSON(w, http.StatusOK, company)
}

// GetProfile returns the DART company profile (기업개황)
// GET /api/companies/{corp_code}/profile
func (h *CompanyHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	corpCode := mux.Vars(r)["corp_code"]

	info, err := h.service.Profile(r.Context(), corpCode)
	if err != nil {
		h.logger.WithError(err).WithField("corp_code", corpCode).Warn("Failed to get company profile")
		respondUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// DisclosureResponse is one disclosure with its viewer link
type DisclosureResponse struct {
	dart.Disclosure
	Major bool   `json:"major"`
	URL   string `json:"url"`
}

// GetDisclosures returns recent filings
// GET /api/companies/{corp_code}/disclosures?days=90
func (h *CompanyHandler) GetDisclosures(w http.ResponseWriter, r *http.Request) {
	corpCode := mux.Vars(r)["corp_code"]

	// Parse days parameter (default: 90)
	days := 90
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 && d <= 3650 {
			days = d
		}
	}

	list, err := h.service.Disclosures(r.Context(), corpCode, days)
	if err != nil {
		h.logger.WithError(err).WithField("corp_code", corpCode).Warn("Failed to get disclosures")
		respondUpstreamError(w, err)
		return
	}

	result := make([]DisclosureResponse, len(list))
	for i, d := range list {
		result[i] = DisclosureResponse{
			Disclosure: d,
			Major:      d.IsMajor(),
			URL:        d.URL(),
		}
	}

	respondJSON(w, http.StatusOK, result)
}
