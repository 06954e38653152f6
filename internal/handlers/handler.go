package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"walletapp/internal/logger"
	"walletapp/internal/service"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// User endpoints (signup/signin/bulk public; update and me need a token)
	h.registerUserRoutes(router)

	// Audit trail (protected)
	router.GET("/api/v1/audit", h.userIdMiddleware, h.listAudit)

	// Live audit feed over WebSocket — same port
	router.GET("/ws", h.wsFeed)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	user := r.Group("/api/v1/user")
	{
		user.POST("/signup", h.signUp)
		user.POST("/signin", h.signIn)
		user.GET("/bulk", h.bulkSearch)

		authed := user.Group("", h.userIdMiddleware)
		{
			authed.PUT("", h.updateProfile)
			authed.GET("/me", h.profile)
		}
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}
