package services

import (
	"context"

	"order_bot/internal/models"
)

type fakeCatalogRepo struct {
	products []models.Product
	err      error
}

func (f *fakeCatalogRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	return f.products, f.err
}

type fakeOrderRepo struct {
	orders  []models.Order
	err     error
	updated []string
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	return f.orders, f.err
}

func (f *fakeOrderRepo) UpdateLatestStatus(ctx context.Context, phone string, status models.OrderStatus) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].CustomerPhone == phone {
			f.orders[i].Status = status
			f.updated = append(f.updated, phone)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrderRepo) UpdateLatestPaymentStatus(ctx context.Context, phone string, status models.PaymentStatus) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].CustomerPhone == phone {
			f.orders[i].PaymentStatus = status
			return true, nil
		}
	}
	return false, nil
}

type fakeNotifier struct {
	calls []models.OrderStatus
}

func (f *fakeNotifier) NotifyStatusChange(ctx context.Context, phone string, status models.OrderStatus) bool {
	f.calls = append(f.calls, status)
	return status != "DESCONOCIDO"
}
