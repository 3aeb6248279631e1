package models

import (
	"time"
)

type Order struct {
	ID            uint          `json:"-" gorm:"primaryKey"`
	OrderNumber   string        `json:"order_number" gorm:"index"`
	Timestamp     time.Time     `json:"timestamp" gorm:"not null"`
	CustomerPhone string        `json:"customer_phone" gorm:"index;not null"`
	CustomerName  string        `json:"customer_name"`
	Items         []OrderItem   `json:"items" gorm:"serializer:json;type:text"`
	Total         float64       `json:"total" gorm:"not null"`
	DeliveryType  DeliveryType  `json:"delivery_type"`
	Address       string        `json:"address"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Status        OrderStatus   `json:"status" gorm:"default:'PENDIENTE'"`
	CreatedAt     time.Time     `json:"-"`
	UpdatedAt     time.Time     `json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type DeliveryType string

const (
	DeliveryHome   DeliveryType = "DELIVERY"
	DeliveryPickup DeliveryType = "RETIRO"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "EFECTIVO"
	PaymentOnline PaymentMethod = "ONLINE"
)

type PaymentStatus string

const (
	PaymentConfirmed PaymentStatus = "CONFIRMADO"
	PaymentPending   PaymentStatus = "PENDIENTE"
	PaymentReceived  PaymentStatus = "RECIBIDO"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDIENTE"
	OrderPreparing OrderStatus = "PREPARANDO"
	OrderReady     OrderStatus = "LISTO"
	OrderOnTheWay  OrderStatus = "EN_DELIVERY"
	OrderDelivered OrderStatus = "ENTREGADO"
	OrderFinished  OrderStatus = "FINALIZADO"
	OrderCancelled OrderStatus = "CANCELADO"
)
