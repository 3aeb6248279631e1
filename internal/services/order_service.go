package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"order_bot/internal/models"
	"order_bot/internal/repository"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidPhone  = errors.New("phone has no digits")
)

type OrderService interface {
	SaveOrder(ctx context.Context, order *models.Order) error
	ListOrders(ctx context.Context) ([]models.Order, error)
	// UpdateOrderStatus changes the status of the phone's most recent order
	// and reports whether one existed.
	UpdateOrderStatus(ctx context.Context, phone string, status models.OrderStatus) (bool, error)
	MarkPaymentReceived(ctx context.Context, phone string) (bool, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	timeout   time.Duration
}

func NewOrderService(orderRepo repository.OrderRepository, timeout time.Duration) OrderService {
	return &orderService{orderRepo: orderRepo, timeout: timeout}
}

func (s *orderService) SaveOrder(ctx context.Context, order *models.Order) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return fmt.Errorf("failed to save order %s: %w", order.OrderNumber, err)
	}
	return nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, phone string, status models.OrderStatus) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	found, err := s.orderRepo.UpdateLatestStatus(ctx, phone, status)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return found, nil
}

func (s *orderService) MarkPaymentReceived(ctx context.Context, phone string) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	found, err := s.orderRepo.UpdateLatestPaymentStatus(ctx, phone, models.PaymentReceived)
	if err != nil {
		return false, fmt.Errorf("failed to update payment status: %w", err)
	}
	return found, nil
}
