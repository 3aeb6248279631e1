package handlers

import (
	"context"
	"net/http"

	"order_bot/internal/conversation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Conversation handles one inbound customer message.
type Conversation interface {
	HandleInbound(ctx context.Context, in conversation.Inbound) error
}

type WhatsAppHandler struct {
	conversation Conversation
	logger       *zap.Logger
}

func NewWhatsAppHandler(conv Conversation, logger *zap.Logger) *WhatsAppHandler {
	return &WhatsAppHandler{conversation: conv, logger: logger}
}

// WebhookRequest carries the fields of an inbound message callback. The
// gateway posts them form encoded; JSON is accepted too.
type WebhookRequest struct {
	MessageSID  string `form:"MessageSid" json:"MessageSid"`
	From        string `form:"From" json:"From"`
	ProfileName string `form:"ProfileName" json:"ProfileName"`
	Body        string `form:"Body" json:"Body"`
	NumMedia    int    `form:"NumMedia" json:"NumMedia"`
	MediaURL    string `form:"MediaUrl0" json:"MediaUrl0"`
	MediaType   string `form:"MediaContentType0" json:"MediaContentType0"`
}

// HandleWebhook always acknowledges with 200 so the gateway never retries;
// processing failures are reported to the customer and logged.
func (h *WhatsAppHandler) HandleWebhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid webhook payload", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}
	if req.From == "" {
		h.logger.Warn("webhook without sender", zap.String("message_sid", req.MessageSID))
		c.Status(http.StatusOK)
		return
	}

	in := conversation.Inbound{
		From:        req.From,
		ProfileName: req.ProfileName,
		Body:        req.Body,
		MediaURL:    req.MediaURL,
		MediaType:   req.MediaType,
	}

	// A disconnecting gateway must not abort a half-processed message.
	ctx := context.WithoutCancel(c.Request.Context())
	if err := h.conversation.HandleInbound(ctx, in); err != nil {
		h.logger.Error("inbound message failed",
			zap.String("message_sid", req.MessageSID),
			zap.String("from", req.From),
			zap.Error(err))
	}

	c.Status(http.StatusOK)
}
