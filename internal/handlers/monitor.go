package handlers

import (
	"errors"
	"net/http"

	"envmonitor/internal/models"
	"envmonitor/internal/monitor"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK             = "ok"
	statusSignedOut      = "signed_out"
	statusRefreshQueued  = "refresh_queued"
	statusRangeSet       = "range_set"
	statusAcknowledged   = "acknowledged"
	statusAppliedLocally = "applied_locally"

	errPollingPaused   = "polling is paused: no active session"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

type rangeRequest struct {
	Range models.TimeRange `json:"range" binding:"required"`
}

// SetRangeRequest is an exported model for Swagger docs of the setRange payload.
type SetRangeRequest struct {
	// History window. Allowed: 24h, 7d, 30d
	Range string `json:"range" example:"7d"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get monitor state
// @Description  Connection status, latest sample, active breaches, thresholds and unacknowledged incident count.
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  models.Snapshot
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/monitor/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.State())
}

// @Summary      Get history
// @Description  Samples of the selected range from the last successful poll, oldest first.
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "range, count, samples"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/monitor/history [get]
// @Security     BearerAuth
func (h *Handler) getHistory(c *gin.Context) {
	samples := h.services.Monitoring.History()
	c.JSON(http.StatusOK, gin.H{
		"range":   h.services.Monitoring.State().Range,
		"count":   len(samples),
		"samples": samples,
	})
}

// @Summary      Refresh now
// @Description  Requests a poll outside the fixed cadence. Requests made while one is pending coalesce.
// @Tags         monitor
// @Produce      json
// @Success      202  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/monitor/refresh [post]
// @Security     BearerAuth
func (h *Handler) refresh(c *gin.Context) {
	if !h.services.Monitoring.Refresh() {
		c.JSON(http.StatusConflict, gin.H{"error": errPollingPaused})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": statusRefreshQueued})
}

// @Summary      Set history range
// @Tags         monitor
// @Accept       json
// @Produce      json
// @Param        body  body      SetRangeRequest  true  "Range payload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/monitor/range [put]
// @Security     BearerAuth
func (h *Handler) setRange(c *gin.Context) {
	var req rangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Monitoring.SetRange(req.Range); err != nil {
		if errors.Is(err, monitor.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to set range", "monitor_set_range_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusRangeSet, "range": req.Range})
}
