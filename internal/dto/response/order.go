package response

import (
	"time"

	"order-management/internal/data/entity"
)

type OrderResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	ProductName string             `json:"product_name"`
	Amount      float64            `json:"amount"`
	Status      entity.OrderStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID.String(),
		UserID:      order.UserID.String(),
		ProductName: order.ProductName,
		Amount:      order.Amount,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
	}
}
