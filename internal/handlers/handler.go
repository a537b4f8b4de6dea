package handlers

import (
	"envmonitor/internal/logger"
	"envmonitor/internal/service"
	"envmonitor/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Stream hands out subscriptions to broadcast messages (incidents, cues,
// notifications) for the live WebSocket.
type Stream interface {
	Subscribe() *websocket.Subscription
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	stream   Stream
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. stream may be
// nil, in which case /ws only carries state snapshots.
func NewHandler(services *service.Service, stream Stream, log *logger.Logger) *Handler {
	return &Handler{services: services, stream: stream, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.metricsMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live stream; the token travels in the query string
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.POST("/auth/sign-out", h.signOut)
		h.registerMonitorRoutes(api)
		h.registerAlertRoutes(api)
		h.registerSettingsRoutes(api)
		h.registerAuditRoutes(api)
	}
}

func (h *Handler) registerMonitorRoutes(api *gin.RouterGroup) {
	monitor := api.Group("/monitor")
	{
		monitor.GET("/state", h.getState)
		monitor.GET("/history", h.getHistory)
		monitor.POST("/refresh", h.refresh)
		// Body example: {"range":"7d"}
		monitor.PUT("/range", h.setRange)
	}
}

func (h *Handler) registerAlertRoutes(api *gin.RouterGroup) {
	alerts := api.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.POST("/:id/ack", h.acknowledgeAlert)
	}
}

func (h *Handler) registerSettingsRoutes(api *gin.RouterGroup) {
	api.GET("/thresholds", h.getThresholds)
	api.PUT("/thresholds", h.adminOnly, h.updateThresholds)
	api.GET("/preferences", h.getPreferences)
	api.PUT("/preferences", h.updatePreferences)
}

func (h *Handler) registerAuditRoutes(api *gin.RouterGroup) {
	api.GET("/audit", h.adminOnly, h.getAudit)
}
