package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"envmonitor/internal/metrics"
	"envmonitor/internal/service"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	id, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// a valid token keeps its session (and polling) alive
	h.services.Sessions.Open(id.UserID, id.ExpiresAt)

	// store in Gin context
	c.Set(identityKey, id)
	c.Next()
}

// adminOnly must run after userIdMiddleware.
func (h *Handler) adminOnly(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok || !id.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "admin role required",
		})
		return
	}
	c.Next()
}

func identityFrom(c *gin.Context) (service.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return service.Identity{}, false
	}
	id, ok := v.(service.Identity)
	return id, ok
}

func (h *Handler) metricsMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
}
