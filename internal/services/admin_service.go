package services

import (
	"context"

	"order_bot/internal/models"
	"order_bot/internal/repository"

	"go.uber.org/zap"
)

// StatusNotifier tells a customer their order changed status. It reports
// whether a notification was sent.
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, phone string, status models.OrderStatus) bool
}

type AdminService interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	// SetOrderStatus returns ErrInvalidPhone when phone carries no number and
	// ErrOrderNotFound when the phone has no orders.
	SetOrderStatus(ctx context.Context, phone string, status models.OrderStatus) (notified bool, err error)
}

type adminService struct {
	orders   OrderService
	notifier StatusNotifier
	logger   *zap.Logger
}

func NewAdminService(orders OrderService, notifier StatusNotifier, logger *zap.Logger) AdminService {
	return &adminService{orders: orders, notifier: notifier, logger: logger}
}

func (s *adminService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListOrders(ctx)
}

func (s *adminService) SetOrderStatus(ctx context.Context, phone string, status models.OrderStatus) (bool, error) {
	digits := repository.NormalizePhone(phone)
	if digits == "" {
		return false, ErrInvalidPhone
	}
	phone = "+" + digits

	found, err := s.orders.UpdateOrderStatus(ctx, phone, status)
	if err != nil {
		return false, err
	}
	if !found {
		return false, ErrOrderNotFound
	}

	notified := s.notifier.NotifyStatusChange(ctx, phone, status)
	s.logger.Info("order status updated",
		zap.String("phone", phone),
		zap.String("status", string(status)),
		zap.Bool("notified", notified))
	return notified, nil
}
