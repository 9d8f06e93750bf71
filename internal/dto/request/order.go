package request

type CreateOrderRequest struct {
	ProductName string  `json:"product_name" validate:"required,min=1"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}
