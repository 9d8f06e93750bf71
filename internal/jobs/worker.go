package jobs

import (
	"context"
	"errors"
	"time"

	"order-management/internal/data/entity"
	"order-management/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Worker memproses order PENDING di background:
// PENDING -> PROCESSING -> COMPLETED. Order yang hilang atau sudah
// di-cancel sebelum job jalan cuma di-log, tidak pernah mematikan proses.
type Worker struct {
	orders repository.OrderRepository
	queue  *Queue
	log    *zap.Logger

	concurrency     int
	processingDelay time.Duration
}

func NewWorker(orders repository.OrderRepository, queue *Queue, concurrency int, processingDelay time.Duration, log *zap.Logger) *Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Worker{
		orders:          orders,
		queue:           queue,
		log:             log.With(zap.String("component", "order_worker")),
		concurrency:     concurrency,
		processingDelay: processingDelay,
	}
}

// Run menjalankan consumer loop sampai context dibatalkan
func (w *Worker) Run(ctx context.Context) {
	w.log.Info("Order worker starting", zap.Int("concurrency", w.concurrency))

	done := make(chan struct{})
	for i := 0; i < w.concurrency; i++ {
		go func(id int) {
			defer func() { done <- struct{}{} }()
			w.consume(ctx, id)
		}(i)
	}

	for i := 0; i < w.concurrency; i++ {
		<-done
	}
	w.log.Info("Order worker stopped")
}

func (w *Worker) consume(ctx context.Context, id int) {
	log := w.log.With(zap.Int("consumer", id))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		orderID, err := w.queue.Dequeue(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			log.Error("Failed to dequeue order job", zap.Error(err))
			// jangan spin kalau redis lagi down
			time.Sleep(time.Second)
			continue
		}
		if orderID == "" {
			continue
		}

		if err := w.ProcessOrder(ctx, orderID); err != nil {
			log.Error("Failed to process order", zap.Error(err), zap.String("order_id", orderID))
		}
	}
}

// ProcessOrder satu langkah progression untuk satu order.
// Tiap transisi adalah satu conditional update yang atomik; kalau order
// sudah tidak PENDING (keburu di-cancel) job jadi no-op.
func (w *Worker) ProcessOrder(ctx context.Context, orderID string) error {
	id, err := uuid.Parse(orderID)
	if err != nil {
		w.log.Warn("Dropping job with malformed order id", zap.String("order_id", orderID))
		return nil
	}

	claimed, err := w.orders.UpdateStatusFrom(ctx, id, entity.OrderStatusPending, entity.OrderStatusProcessing)
	if err != nil {
		return err
	}
	if !claimed {
		// order hilang, sudah di-cancel, atau sudah diproses: no-op
		w.log.Info("Order not claimable, skipping",
			zap.String("order_id", orderID))
		return nil
	}

	w.log.Info("Processing order", zap.String("order_id", orderID))

	if w.processingDelay > 0 {
		select {
		case <-time.After(w.processingDelay):
		case <-ctx.Done():
			// biarkan di PROCESSING; recovery-nya urusan operasional
			return ctx.Err()
		}
	}

	completed, err := w.orders.UpdateStatusFrom(ctx, id, entity.OrderStatusProcessing, entity.OrderStatusCompleted)
	if err != nil {
		return err
	}
	if !completed {
		w.log.Warn("Order left PROCESSING unexpectedly", zap.String("order_id", orderID))
		return nil
	}

	w.log.Info("Order completed", zap.String("order_id", orderID))
	return nil
}
