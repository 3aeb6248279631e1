package handlers

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed web/admin.html
var adminPage []byte

func NewRouter(whatsappHandler *WhatsAppHandler, apiHandler *APIHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(logger))

	router.GET("/health", apiHandler.Health)
	router.POST("/webhook", whatsappHandler.HandleWebhook)
	router.GET("/admin", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", adminPage)
	})

	api := router.Group("/api")
	{
		api.GET("/orders", apiHandler.ListOrders)
		api.POST("/orders/:phone/status", apiHandler.UpdateOrderStatus)
		api.POST("/messages", apiHandler.SendMessage)
	}

	return router
}
