package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/motif/internal/models"
)

// HostHandler serves host graph management endpoints.
type HostHandler struct {
	svc HostService
	log *logrus.Logger
}

// NewHostHandler creates a HostHandler with the given service and logger.
func NewHostHandler(svc HostService, log *logrus.Logger) *HostHandler {
	return &HostHandler{svc: svc, log: log}
}

// Import handles POST /api/v1/hosts/import.
func (h *HostHandler) Import(c *gin.Context) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	var req models.ImportHostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	res, err := h.svc.ImportHost(c.Request.Context(), tenantID, req)
	if err != nil {
		h.log.WithField("tenant_id", tenantID).WithError(err).Warn("host import failed")
		respondSearchError(c, err)

		return
	}

	h.log.WithFields(logrus.Fields{
		"action":    "host.import",
		"tenant_id": tenantID,
		"nodes":     res.Nodes,
		"edges":     res.Edges,
		"replaced":  res.Replaced,
	}).Info("audit")

	c.JSON(http.StatusOK, res)
}

// Invalidate handles POST /api/v1/hosts/invalidate.
func (h *HostHandler) Invalidate(c *gin.Context) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	h.svc.Invalidate(tenantID)

	h.log.WithFields(logrus.Fields{"action": "host.invalidate", "tenant_id": tenantID}).Info("audit")

	c.Status(http.StatusNoContent)
}
