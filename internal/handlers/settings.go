package handlers

import (
	"errors"
	"net/http"

	"envmonitor/internal/models"
	"envmonitor/internal/service"

	"github.com/gin-gonic/gin"
)

// thresholdsRequest uses pointers so a missing bound is a 400, not a zero.
type thresholdsRequest struct {
	TempHigh *float64 `json:"temp_high" binding:"required"`
	TempLow  *float64 `json:"temp_low" binding:"required"`
	HumHigh  *float64 `json:"hum_high" binding:"required"`
	HumLow   *float64 `json:"hum_low" binding:"required"`
}

// UpdateThresholdsRequest is an exported model for Swagger docs of the threshold payload.
type UpdateThresholdsRequest struct {
	TempHigh float64 `json:"temp_high" example:"30"`
	TempLow  float64 `json:"temp_low" example:"15"`
	HumHigh  float64 `json:"hum_high" example:"75"`
	HumLow   float64 `json:"hum_low" example:"30"`
}

// UpdatePreferencesRequest toggles notification channels; omitted fields are unchanged.
type UpdatePreferencesRequest struct {
	SoundEnabled         *bool `json:"sound_enabled,omitempty" example:"true"`
	NotificationsEnabled *bool `json:"notifications_enabled,omitempty" example:"false"`
}

// @Summary      Get thresholds
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.Thresholds
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/thresholds [get]
// @Security     BearerAuth
func (h *Handler) getThresholds(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Thresholds.Current())
}

// @Summary      Update thresholds
// @Description  Applied immediately. If the store rejects the write the new values stay live locally and 202 is returned with status applied_locally.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateThresholdsRequest  true  "Thresholds"
// @Success      200   {object}  map[string]interface{}
// @Success      202   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/thresholds [put]
// @Security     BearerAuth
func (h *Handler) updateThresholds(c *gin.Context) {
	var req thresholdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	actor, _ := identityFrom(c)

	t, err := h.services.Thresholds.Update(c.Request.Context(), actor, models.Thresholds{
		TempHigh: *req.TempHigh,
		TempLow:  *req.TempLow,
		HumHigh:  *req.HumHigh,
		HumLow:   *req.HumLow,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": statusOK, "thresholds": t})
	case errors.Is(err, service.ErrThresholdsNotPersisted):
		if h.log != nil {
			h.log.Warnw("thresholds_not_persisted", "user_id", actor.UserID, "err", err)
		}
		c.JSON(http.StatusAccepted, gin.H{
			"status":     statusAppliedLocally,
			"error":      err.Error(),
			"thresholds": t,
		})
	case errors.Is(err, service.ErrInvalidThreshold):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to update thresholds", "thresholds_update_failed", err)
	}
}

// @Summary      Get notification preferences
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.Preferences
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/preferences [get]
// @Security     BearerAuth
func (h *Handler) getPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Preferences.Current())
}

// @Summary      Update notification preferences
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      UpdatePreferencesRequest  true  "Toggles"
// @Success      200   {object}  models.Preferences
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/preferences [put]
// @Security     BearerAuth
func (h *Handler) updatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if req.SoundEnabled == nil && req.NotificationsEnabled == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}
	p, err := h.services.Preferences.Update(c.Request.Context(), service.PreferenceUpdate{
		SoundEnabled:         req.SoundEnabled,
		NotificationsEnabled: req.NotificationsEnabled,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to save preferences", "preferences_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, p)
}
