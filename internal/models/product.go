package models

type Product struct {
	ID          string  `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"not null"`
	Category    string  `json:"category"`
	Available   bool    `json:"available" gorm:"not null"`
}

func (Product) TableName() string {
	return "products"
}
