package handlers

import (
	"net/http"

	"envmonitor/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary      List incidents
// @Description  The bounded incident log, newest first.
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, unacknowledged, incidents"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/alerts [get]
// @Security     BearerAuth
func (h *Handler) listAlerts(c *gin.Context) {
	list := h.services.Alerts.List()
	unacked := 0
	for _, inc := range list {
		if inc.Status == models.StatusActive {
			unacked++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":          len(list),
		"unacknowledged": unacked,
		"incidents":      list,
	})
}

// @Summary      Acknowledge incident
// @Description  Repeating the call for an acknowledged incident is a no-op.
// @Tags         alerts
// @Produce      json
// @Param        id   path      string  true  "Incident ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/alerts/{id}/ack [post]
// @Security     BearerAuth
func (h *Handler) acknowledgeAlert(c *gin.Context) {
	id := c.Param("id")
	changed := h.services.Alerts.Acknowledge(id)
	if !changed && !h.incidentExists(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  statusAcknowledged,
		"id":      id,
		"changed": changed,
	})
}

func (h *Handler) incidentExists(id string) bool {
	for _, inc := range h.services.Alerts.List() {
		if inc.ID == id {
			return true
		}
	}
	return false
}
