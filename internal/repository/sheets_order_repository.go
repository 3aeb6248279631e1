package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"order_bot/internal/models"
	"order_bot/internal/sheets"
)

// TimestampLayout is how order timestamps are written to the sheet.
const TimestampLayout = "2006-01-02 15:04:05"

// Order columns: timestamp, phone, customer name, items, total, delivery
// type, address, payment method, payment status, status.
const (
	orderColTimestamp = iota
	orderColPhone
	orderColCustomerName
	orderColItems
	orderColTotal
	orderColDeliveryType
	orderColAddress
	orderColPaymentMethod
	orderColPaymentStatus
	orderColStatus
	orderColumns
)

type sheetsOrderRepository struct {
	values   sheets.Values
	sheet    string
	location *time.Location
}

func NewSheetsOrderRepository(values sheets.Values, sheet string) OrderRepository {
	return &sheetsOrderRepository{values: values, sheet: sheet, location: time.Local}
}

// dataRange skips the header row.
func (r *sheetsOrderRepository) dataRange() string {
	return fmt.Sprintf("%s!A2:%s", r.sheet, sheets.ColumnLetter(orderColumns-1))
}

func (r *sheetsOrderRepository) Create(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	row := make([]interface{}, orderColumns)
	row[orderColTimestamp] = order.Timestamp.In(r.location).Format(TimestampLayout)
	row[orderColPhone] = order.CustomerPhone
	row[orderColCustomerName] = order.CustomerName
	row[orderColItems] = string(items)
	row[orderColTotal] = order.Total
	row[orderColDeliveryType] = string(order.DeliveryType)
	row[orderColAddress] = order.Address
	row[orderColPaymentMethod] = string(order.PaymentMethod)
	row[orderColPaymentStatus] = string(order.PaymentStatus)
	row[orderColStatus] = string(order.Status)

	return r.values.Append(ctx, r.dataRange(), [][]interface{}{row})
}

// GetAll parses every order row; missing optional cells fall back to defaults.
func (r *sheetsOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	rows, err := r.values.Get(ctx, r.dataRange())
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		orders = append(orders, r.parseRow(row))
	}
	return orders, nil
}

func (r *sheetsOrderRepository) parseRow(row []interface{}) models.Order {
	var items []models.OrderItem
	if raw := sheets.Cell(row, orderColItems); raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			items = nil
		}
	}
	if items == nil {
		items = []models.OrderItem{}
	}

	total, err := sheets.Float(row, orderColTotal)
	if err != nil {
		total = 0
	}

	status := models.OrderStatus(sheets.Cell(row, orderColStatus))
	if status == "" {
		status = models.OrderPending
	}

	return models.Order{
		Timestamp:     sheets.Time(row, orderColTimestamp, TimestampLayout, r.location),
		CustomerPhone: sheets.Cell(row, orderColPhone),
		CustomerName:  sheets.Cell(row, orderColCustomerName),
		Items:         items,
		Total:         total,
		DeliveryType:  models.DeliveryType(sheets.Cell(row, orderColDeliveryType)),
		Address:       sheets.Cell(row, orderColAddress),
		PaymentMethod: models.PaymentMethod(sheets.Cell(row, orderColPaymentMethod)),
		PaymentStatus: models.PaymentStatus(sheets.Cell(row, orderColPaymentStatus)),
		Status:        status,
	}
}

func (r *sheetsOrderRepository) UpdateLatestStatus(ctx context.Context, phone string, status models.OrderStatus) (bool, error) {
	return r.updateLatest(ctx, phone, orderColStatus, string(status))
}

func (r *sheetsOrderRepository) UpdateLatestPaymentStatus(ctx context.Context, phone string, status models.PaymentStatus) (bool, error) {
	return r.updateLatest(ctx, phone, orderColPaymentStatus, string(status))
}

// updateLatest scans from the bottom of the sheet up and overwrites one cell
// of the first row whose phone matches. Rows without a phone never match.
func (r *sheetsOrderRepository) updateLatest(ctx context.Context, phone string, col int, value string) (bool, error) {
	rows, err := r.values.Get(ctx, r.dataRange())
	if err != nil {
		return false, err
	}

	want := NormalizePhone(phone)
	if want == "" {
		return false, nil
	}
	for i := len(rows) - 1; i >= 0; i-- {
		got := NormalizePhone(sheets.Cell(rows[i], orderColPhone))
		if got == "" || got != want {
			continue
		}
		cell := fmt.Sprintf("%s!%s%d", r.sheet, sheets.ColumnLetter(col), i+2)
		if err := r.values.Update(ctx, cell, [][]interface{}{{value}}); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
