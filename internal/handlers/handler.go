package handlers

import (
	"net/http"

	"thermostat_panel/internal/logger"
	"thermostat_panel/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  http.Handler
}

// Option customizes a Handler.
type Option func(*Handler)

// WithMetrics exposes h at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(hd *Handler) { hd.metrics = h }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Page stream, same port. Snapshots include form values, so the
	// upgrade needs the same token as /api/v1.
	router.GET("/ws", h.wsTokenFromQuery, h.userIdMiddleware, h.wsConnect)

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
		h.registerPanelRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerPanelRoutes(api *gin.RouterGroup) {
	panel := api.Group("/panel")
	{
		panel.GET("/page", h.getPage)
		panel.PUT("/fields", h.putFields)
		panel.PUT("/forms/:id", h.putForm)

		panel.POST("/poll", h.poll)
		panel.POST("/reload", h.reload)
		// Body example: {"setpoint":"22.5"}
		panel.POST("/setpoint", h.setSetpoint)
		panel.POST("/mode", h.setMode)
		// Body example: {"kp":"2.5","ki":"0.1","kd":"1","active":true}
		panel.POST("/pid", h.updatePid)
		panel.POST("/save", h.saveConfig)
		// Body example: {"confirm":true}
		panel.POST("/factory-reset", h.factoryReset)
		panel.POST("/reboot", h.reboot)

		panel.GET("/config", h.getConfig)
		panel.POST("/config", h.showConfig)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
