package migrations

import (
	"fmt"

	"order_bot/internal/database"
	"order_bot/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultCatalog seeds an empty products table so the bot has a menu to show.
var DefaultCatalog = []models.Product{
	{ID: "1", Name: "Hamburguesa clásica", Description: "Carne, queso, lechuga y tomate", Price: 8500, Category: "Hamburguesas", Available: true},
	{ID: "2", Name: "Hamburguesa doble", Description: "Doble carne y doble cheddar", Price: 11000, Category: "Hamburguesas", Available: true},
	{ID: "3", Name: "Papas fritas", Description: "Porción grande", Price: 4000, Category: "Acompañamientos", Available: true},
	{ID: "4", Name: "Aros de cebolla", Price: 4500, Category: "Acompañamientos", Available: true},
	{ID: "5", Name: "Gaseosa 500ml", Price: 2000, Category: "Bebidas", Available: true},
	{ID: "6", Name: "Agua mineral", Price: 1500, Category: "Bebidas", Available: true},
}

// RunMigrations migrates the schema and seeds the default catalog when the
// products table is empty. With reset set, existing tables are dropped first.
func RunMigrations(db *gorm.DB, reset bool, logger *zap.Logger) error {
	if reset {
		logger.Warn("dropping existing tables")
		if err := db.Migrator().DropTable(&models.Product{}, &models.Order{}); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
	}

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	seeded, err := seedCatalog(db)
	if err != nil {
		return err
	}
	logger.Info("database migrations completed", zap.Int("seeded_products", seeded))
	return nil
}

func seedCatalog(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	products := make([]models.Product, len(DefaultCatalog))
	copy(products, DefaultCatalog)
	if err := db.Create(&products).Error; err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}
	return len(products), nil
}
