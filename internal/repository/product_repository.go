package repository

import (
	"context"
	"sort"
	"strconv"

	"order_bot/internal/models"

	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) CatalogRepository {
	return &productRepository{db: db}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	SortByID(products)
	return products, nil
}

// SortByID orders products numerically by id when both ids are numbers and
// lexically otherwise.
func SortByID(products []models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		a, errA := strconv.Atoi(products[i].ID)
		b, errB := strconv.Atoi(products[j].ID)
		if errA == nil && errB == nil {
			return a < b
		}
		if errA == nil {
			return true
		}
		if errB == nil {
			return false
		}
		return products[i].ID < products[j].ID
	})
}
