package handlers

import (
	"errors"
	"net/http"
	"strings"

	"order_bot/internal/models"
	"order_bot/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIHandler struct {
	adminService    services.AdminService
	whatsappService services.WhatsAppService
	logger          *zap.Logger
}

func NewAPIHandler(
	adminService services.AdminService,
	whatsappService services.WhatsAppService,
	logger *zap.Logger,
) *APIHandler {
	return &APIHandler{
		adminService:    adminService,
		whatsappService: whatsappService,
		logger:          logger,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SendMessageRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ListOrders returns every stored order, oldest first.
func (h *APIHandler) ListOrders(c *gin.Context) {
	orders, err := h.adminService.ListOrders(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus sets the status of the most recent order of :phone and
// notifies the customer.
func (h *APIHandler) UpdateOrderStatus(c *gin.Context) {
	phone := c.Param("phone")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format"})
		return
	}
	status := models.OrderStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Status is required"})
		return
	}

	notified, err := h.adminService.SetOrderStatus(c.Request.Context(), phone, status)
	switch {
	case errors.Is(err, services.ErrInvalidPhone):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid phone"})
		return
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
		return
	case err != nil:
		h.logger.Error("failed to update order status",
			zap.String("phone", phone),
			zap.String("status", string(status)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notified": notified})
}

// SendMessage lets staff write to a customer directly.
func (h *APIHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format"})
		return
	}

	if err := h.whatsappService.SendMessage(c.Request.Context(), req.Phone, req.Message); err != nil {
		h.logger.Error("failed to send message", zap.String("phone", req.Phone), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
