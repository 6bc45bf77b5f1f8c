package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/dartfin/internal/external/dart"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondUpstreamError maps a DART failure to a response
func respondUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *dart.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadGateway
		if apiErr.Status == dart.StatusNoData {
			status = http.StatusNotFound
		}
		respondJSON(w, status, map[string]string{
			"error":       apiErr.Message,
			"dart_status": apiErr.Status,
		})
		return
	}

	respondError(w, http.StatusBadGateway, "DART request failed")
}
