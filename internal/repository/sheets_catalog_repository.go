package repository

import (
	"context"

	"order_bot/internal/models"
	"order_bot/internal/sheets"

	"go.uber.org/zap"
)

// Catalog columns: id, name, description, price, category, available.
const (
	productColID = iota
	productColName
	productColDescription
	productColPrice
	productColCategory
	productColAvailable
)

type sheetsCatalogRepository struct {
	values sheets.Values
	rng    string
	logger *zap.Logger
}

func NewSheetsCatalogRepository(values sheets.Values, rng string, logger *zap.Logger) CatalogRepository {
	return &sheetsCatalogRepository{values: values, rng: rng, logger: logger}
}

// ListProducts returns every well-formed row, available or not. Rows without
// an id or name, or with an unparseable price, are skipped and logged.
func (r *sheetsCatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := r.values.Get(ctx, r.rng)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(rows))
	for i, row := range rows {
		id := sheets.Cell(row, productColID)
		name := sheets.Cell(row, productColName)
		if id == "" || name == "" {
			if len(row) > 0 {
				r.logger.Warn("skipping catalog row without id or name", zap.Int("row", i))
			}
			continue
		}

		price, err := sheets.Float(row, productColPrice)
		if err != nil {
			r.logger.Warn("skipping catalog row with invalid price",
				zap.Int("row", i), zap.String("product_id", id), zap.Error(err))
			continue
		}

		products = append(products, models.Product{
			ID:          id,
			Name:        name,
			Description: sheets.Cell(row, productColDescription),
			Price:       price,
			Category:    sheets.Cell(row, productColCategory),
			Available:   sheets.Bool(row, productColAvailable),
		})
	}

	return products, nil
}
