package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/phrase-sort-service/internal/services"
	"github.com/SAP-F-2025/phrase-sort-service/internal/utils"
	"github.com/SAP-F-2025/phrase-sort-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	sessionHandler *SessionHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		sessionHandler: NewSessionHandler(serviceManager.Session(), serviceManager.Import(), validator, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.CreateSession)
			sessions.POST("/import", hm.sessionHandler.ImportSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.GET("/:id/current", hm.sessionHandler.GetCurrentQuestion)
			sessions.POST("/:id/actions", hm.sessionHandler.DispatchAction)
			sessions.GET("/:id/response", hm.sessionHandler.GetResponse)
			sessions.DELETE("/:id", hm.sessionHandler.CloseSession)
		}

		qsets := v1.Group("/qsets")
		{
			qsets.POST("/export", hm.sessionHandler.ExportQSet)
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "phrase-sort-service",
	})
}
