package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"freight-matching-service/internal/api/dto"
	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/platform/logger"
	"freight-matching-service/internal/ports"
	"freight-matching-service/internal/services"
)

type ComplianceHandler struct {
	Auditor           *services.FleetComplianceValidator
	Snapshots         ports.SnapshotRepository
	BaselineDailyLoss float64
	Log               logger.Logger
}

// Audit runs every requirement check over the snapshot in the request body.
func (h *ComplianceHandler) Audit(c *gin.Context) {
	var req dto.ComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json body: "+err.Error())
		return
	}

	baseline := h.BaselineDailyLoss
	if req.BaselineDailyLoss != nil {
		baseline = *req.BaselineDailyLoss
	}

	c.JSON(http.StatusOK, h.audit(req.Snapshot(), baseline))
}

// AuditStored audits the snapshot held by the configured repository.
// The baseline can be overridden with ?baseline=.
func (h *ComplianceHandler) AuditStored(c *gin.Context) {
	if h.Snapshots == nil {
		writeError(c, http.StatusServiceUnavailable, "no snapshot source configured")
		return
	}

	baseline := h.BaselineDailyLoss
	if raw := c.Query("baseline"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			writeError(c, http.StatusBadRequest, "baseline must be a non-negative number")
			return
		}
		baseline = v
	}

	snap, err := h.Snapshots.LoadSnapshot(c.Request.Context())
	if errors.Is(err, ports.ErrSnapshotNotFound) {
		writeError(c, http.StatusNotFound, "fleet snapshot not found")
		return
	}
	if err != nil {
		h.Log.Errorf("load snapshot failed: %v", err)
		writeError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, h.audit(snap, baseline))
}

func (h *ComplianceHandler) audit(snap domain.FleetSnapshot, baseline float64) dto.ComplianceResponse {
	reports := h.Auditor.ValidateAllRequirements(snap, baseline)
	return dto.ComplianceResponse{
		Reports: reports,
		Summary: h.Auditor.GenerateSummaryReport(reports),
	}
}
