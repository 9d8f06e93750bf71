package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const orderQueueKey = "orders:process"

// Queue antrian order berbasis Redis list, pengganti broker task eksternal.
// Producer LPUSH, worker BRPOP; job yang sudah di-push tetap ada walau
// proses restart.
type Queue struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewQueue(rdb *redis.Client, log *zap.Logger) *Queue {
	return &Queue{
		rdb: rdb,
		log: log.With(zap.String("component", "order_queue")),
	}
}

// EnqueueOrder menaruh order id di antrian. Dipanggil fire-and-forget
// setelah create order.
func (q *Queue) EnqueueOrder(ctx context.Context, orderID string) error {
	if err := q.rdb.LPush(ctx, orderQueueKey, orderID).Err(); err != nil {
		return fmt.Errorf("enqueue order %s: %w", orderID, err)
	}

	q.log.Debug("Order enqueued", zap.String("order_id", orderID))
	return nil
}

// Dequeue block sampai ada job atau timeout. Return "" tanpa error
// kalau antrian kosong selama timeout.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (string, error) {
	vals, err := q.rdb.BRPop(ctx, timeout, orderQueueKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("dequeue order: %w", err)
	}

	// BRPop balikin [key, value]
	if len(vals) != 2 {
		return "", nil
	}
	return vals[1], nil
}
