package repository

import (
	"context"
	"strings"

	"order_bot/internal/models"
)

// CatalogRepository reads product rows from the catalog store.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// OrderRepository appends orders and mutates the most recent order of a phone.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetAll(ctx context.Context) ([]models.Order, error)
	UpdateLatestStatus(ctx context.Context, phone string, status models.OrderStatus) (bool, error)
	UpdateLatestPaymentStatus(ctx context.Context, phone string, status models.PaymentStatus) (bool, error)
}

// NormalizePhone strips the channel prefix and a leading plus sign so the
// same customer matches however the address was written.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.TrimPrefix(phone, "whatsapp:")
	phone = strings.TrimPrefix(phone, "+")
	return phone
}
