package handlers

import (
	"net/http"

	"github.com/wonny/dartfin/internal/registry"
	"github.com/wonny/dartfin/pkg/logger"
)

// RegistryHandler exposes registry status and manual refresh
type RegistryHandler struct {
	manager *registry.Manager
	logger  *logger.Logger
}

// NewRegistryHandler creates a new registry handler
func NewRegistryHandler(manager *registry.Manager, log *logger.Logger) *RegistryHandler {
	return &RegistryHandler{
		manager: manager,
		logger:  log,
	}
}

// GetStats returns the current snapshot summary
// GET /api/registry
func (h *RegistryHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.manager.Stats())
}

// Refresh downloads the catalog and rebuilds the index
// POST /api/registry/refresh
func (h *RegistryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if _, err := h.manager.Refresh(r.Context()); err != nil {
		h.logger.WithError(err).Error("Registry refresh failed")
		respondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
			"stats":   h.manager.Stats(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   h.manager.Stats(),
	})
}
