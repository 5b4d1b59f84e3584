// Package api provides HTTP handlers for the motif service.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/motif/internal/models"
)

// MotifHandler serves motif search endpoints.
type MotifHandler struct {
	svc     MotifService
	history SearchHistory
	log     *logrus.Logger
}

// NewMotifHandler creates a MotifHandler. history may be nil, in which case
// the history endpoint answers 404.
func NewMotifHandler(svc MotifService, history SearchHistory, log *logrus.Logger) *MotifHandler {
	return &MotifHandler{svc: svc, history: history, log: log}
}

// Search handles POST /api/v1/motifs/search.
func (h *MotifHandler) Search(c *gin.Context) {
	h.run(c, false)
}

// Count handles POST /api/v1/motifs/count. It accepts the search body and
// always counts.
func (h *MotifHandler) Count(c *gin.Context) {
	h.run(c, true)
}

func (h *MotifHandler) run(c *gin.Context, countOnly bool) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if countOnly {
		req.CountOnly = true
	}

	res, err := h.svc.Search(c.Request.Context(), tenantID, req)
	if err != nil {
		h.log.WithFields(logrus.Fields{
			"tenant_id":  tenantID,
			"request_id": c.GetString("request_id"),
		}).WithError(err).Warn("motif search failed")
		respondSearchError(c, err)

		return
	}

	c.JSON(http.StatusOK, res)
}

// History handles GET /api/v1/motifs/history.
func (h *MotifHandler) History(c *gin.Context) {
	if h.history == nil {
		respondError(c, http.StatusNotFound, "not_found", "search history is not enabled")

		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	limit := parseLimit(c.DefaultQuery("limit", "50"), 50)

	entries, err := h.history.ListSearches(c.Request.Context(), tenantID, limit)
	if err != nil {
		h.log.WithError(err).Error("listing search history")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"searches": entries})
}
