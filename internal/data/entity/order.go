package entity

import (
	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// ValidOrderStatus cek string status dari query param
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	BaseSimple
	UserID      uuid.UUID   `db:"user_id"`
	ProductName string      `db:"product_name"`
	Amount      float64     `db:"amount"`
	Status      OrderStatus `db:"status"`
}
