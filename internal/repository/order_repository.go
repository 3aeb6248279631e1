package repository

import (
	"context"
	"errors"

	"order_bot/internal/models"

	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Order("id asc").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateLatestStatus(ctx context.Context, phone string, status models.OrderStatus) (bool, error) {
	return r.updateLatest(ctx, phone, "status", string(status))
}

func (r *orderRepository) UpdateLatestPaymentStatus(ctx context.Context, phone string, status models.PaymentStatus) (bool, error) {
	return r.updateLatest(ctx, phone, "payment_status", string(status))
}

func (r *orderRepository) updateLatest(ctx context.Context, phone, column, value string) (bool, error) {
	if NormalizePhone(phone) == "" {
		return false, nil
	}

	var order models.Order
	err := r.db.WithContext(ctx).
		Where("customer_phone = ?", phone).
		Order("id desc").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = r.db.WithContext(ctx).Model(&order).Update(column, value).Error
	if err != nil {
		return false, err
	}
	return true, nil
}
