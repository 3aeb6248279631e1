package conversation

import (
	"context"

	"order_bot/internal/format"
	"order_bot/internal/models"

	"go.uber.org/zap"
)

// processOrder turns the session cart into an order, persists it and resets
// the session. A persistence failure is logged and the customer is still
// sent the confirmation.
func (e *Engine) processOrder(ctx context.Context, t *turn, method models.PaymentMethod) *models.Order {
	s := t.session

	name := t.in.ProfileName
	if name == "" {
		name = "Cliente"
	}

	order := &models.Order{
		OrderNumber:   e.nextOrderNumber(),
		Timestamp:     e.now(),
		CustomerPhone: s.Phone,
		CustomerName:  name,
		Items:         s.Cart.Snapshot(),
		Total:         s.Cart.Total(),
		DeliveryType:  s.DeliveryType,
		PaymentMethod: method,
		PaymentStatus: models.PaymentConfirmed,
		Status:        models.OrderPending,
	}
	if order.DeliveryType == "" {
		order.DeliveryType = models.DeliveryPickup
	}
	if order.DeliveryType == models.DeliveryHome {
		order.Address = s.Address
	}
	if method == models.PaymentOnline {
		order.PaymentStatus = models.PaymentPending
	}

	if err := e.orders.SaveOrder(ctx, order); err != nil {
		e.logger.Error("order was not persisted",
			zap.String("order_number", order.OrderNumber),
			zap.String("phone", s.Phone),
			zap.Float64("total", order.Total),
			zap.Error(err))
	} else {
		e.logger.Info("order created",
			zap.String("order_number", order.OrderNumber),
			zap.String("phone", s.Phone),
			zap.String("delivery_type", string(order.DeliveryType)),
			zap.String("payment_method", string(order.PaymentMethod)),
			zap.Float64("total", order.Total))
	}

	s.Reset()
	t.reply(format.OrderConfirmation(order))
	return order
}
