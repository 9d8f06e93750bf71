package usecase

import (
	"context"
	"fmt"
	"time"

	"order-management/internal/data/entity"
	"order-management/internal/data/repository"
	"order-management/internal/dto/request"
	"order-management/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderEnqueuer menyerahkan order id ke antrian job background.
// Create tidak menunggu dan tidak peduli hasil jobnya.
type OrderEnqueuer interface {
	EnqueueOrder(ctx context.Context, orderID string) error
}

type OrderService interface {
	CreateOrder(ctx context.Context, user *entity.User, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	GetUserOrders(ctx context.Context, user *entity.User, status *entity.OrderStatus) ([]response.OrderResponse, error)
	CancelOrder(ctx context.Context, user *entity.User, orderID string) (*response.OrderResponse, error)
}

type orderService struct {
	repo  *repository.Repository
	queue OrderEnqueuer
	log   *zap.Logger
}

func NewOrderService(repo *repository.Repository, queue OrderEnqueuer, log *zap.Logger) OrderService {
	return &orderService{
		repo:  repo,
		queue: queue,
		log:   log.With(zap.String("service", "order")),
	}
}

func (s *orderService) CreateOrder(ctx context.Context, user *entity.User, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	// 1. Buat order status PENDING milik caller
	order := &entity.Order{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		UserID:      user.ID,
		ProductName: req.ProductName,
		Amount:      req.Amount,
		Status:      entity.OrderStatusPending,
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("product", order.ProductName),
		zap.Float64("amount", order.Amount),
	)

	// 2. Serahkan ke worker, fire-and-forget. Gagal enqueue tidak
	// membatalkan order; paling banter order diam di PENDING.
	if err := s.queue.EnqueueOrder(ctx, order.ID.String()); err != nil {
		s.log.Error("Failed to enqueue order for processing",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) GetUserOrders(ctx context.Context, user *entity.User, status *entity.OrderStatus) ([]response.OrderResponse, error) {
	orders, err := s.repo.Order.FindByUserID(ctx, user.ID, status)
	if err != nil {
		return nil, err
	}

	resps := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		resps[i] = response.OrderToResponse(order)
	}

	s.log.Info("User orders retrieved",
		zap.String("user_id", user.ID.String()),
		zap.Int("count", len(resps)),
	)

	return resps, nil
}

// CancelOrder hanya boleh PENDING -> CANCELLED, oleh pemilik order.
// Order milik user lain dan order yang tidak ada sama-sama ErrOrderNotFound
// supaya keberadaan order orang lain tidak bocor.
func (s *orderService) CancelOrder(ctx context.Context, user *entity.User, orderID string) (*response.OrderResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		// id yang bukan uuid tidak mungkin match order manapun
		return nil, ErrOrderNotFound
	}

	order, err := s.repo.Order.FindByIDAndUser(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		s.log.Warn("Cancel rejected, order not found for user",
			zap.String("order_id", orderID),
			zap.String("user_id", user.ID.String()),
		)
		return nil, ErrOrderNotFound
	}

	if order.Status != entity.OrderStatusPending {
		s.log.Warn("Cancel rejected, order not pending",
			zap.String("order_id", orderID),
			zap.String("status", string(order.Status)),
		)
		return nil, ErrInvalidTransition
	}

	// Conditional update: kalau worker keburu klaim order ini,
	// update kena 0 baris dan cancel ditolak.
	updated, err := s.repo.Order.UpdateStatusFrom(ctx, id, entity.OrderStatusPending, entity.OrderStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel order %s: %w", orderID, err)
	}
	if !updated {
		s.log.Warn("Cancel lost race with worker", zap.String("order_id", orderID))
		return nil, ErrInvalidTransition
	}

	order.Status = entity.OrderStatusCancelled

	s.log.Info("Order cancelled",
		zap.String("order_id", orderID),
		zap.String("user_id", user.ID.String()),
	)

	resp := response.OrderToResponse(order)
	return &resp, nil
}
