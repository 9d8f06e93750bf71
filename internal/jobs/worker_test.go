package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"order-management/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*entity.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (m *memOrderRepo) Create(_ context.Context, order *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func (m *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderRepo) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.UserID != userID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Order
	for _, o := range m.orders {
		if o.UserID != userID {
			continue
		}
		if status != nil && o.Status != *status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memOrderRepo) UpdateStatusFrom(_ context.Context, id uuid.UUID, from, to entity.OrderStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (m *memOrderRepo) seed(status entity.OrderStatus) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.orders[id] = &entity.Order{
		BaseSimple:  entity.BaseSimple{ID: id, CreatedAt: time.Now().UTC()},
		UserID:      uuid.New(),
		ProductName: "Keyboard",
		Amount:      100,
		Status:      status,
	}
	return id
}

func newTestWorker(repo *memOrderRepo) *Worker {
	return NewWorker(repo, nil, 1, 0, zap.NewNop())
}

func TestProcessOrderCompletesPending(t *testing.T) {
	repo := newMemOrderRepo()
	id := repo.seed(entity.OrderStatusPending)

	w := newTestWorker(repo)
	require.NoError(t, w.ProcessOrder(context.Background(), id.String()))

	order, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
}

func TestProcessOrderSkipsCancelled(t *testing.T) {
	repo := newMemOrderRepo()
	id := repo.seed(entity.OrderStatusCancelled)

	w := newTestWorker(repo)
	require.NoError(t, w.ProcessOrder(context.Background(), id.String()))

	// order yang keburu di-cancel tidak boleh diproses
	order, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, order.Status)
}

func TestProcessOrderSkipsCompleted(t *testing.T) {
	repo := newMemOrderRepo()
	id := repo.seed(entity.OrderStatusCompleted)

	w := newTestWorker(repo)
	require.NoError(t, w.ProcessOrder(context.Background(), id.String()))

	order, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
}

func TestProcessOrderMissing(t *testing.T) {
	repo := newMemOrderRepo()
	w := newTestWorker(repo)

	// order hilang dan id rusak dua-duanya no-op, bukan error
	assert.NoError(t, w.ProcessOrder(context.Background(), uuid.New().String()))
	assert.NoError(t, w.ProcessOrder(context.Background(), "bukan-uuid"))
}

func TestProcessOrderOnlyOneClaimWins(t *testing.T) {
	repo := newMemOrderRepo()
	id := repo.seed(entity.OrderStatusPending)

	w := newTestWorker(repo)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, w.ProcessOrder(context.Background(), id.String()))
		}()
	}
	wg.Wait()

	order, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
}

func TestProcessOrderCancelledDuringDelay(t *testing.T) {
	repo := newMemOrderRepo()
	id := repo.seed(entity.OrderStatusPending)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWorker(repo, nil, 1, time.Second, zap.NewNop())
	err := w.ProcessOrder(ctx, id.String())
	assert.ErrorIs(t, err, context.Canceled)

	// shutdown di tengah proses meninggalkan order di PROCESSING
	order, ferr := repo.FindByID(context.Background(), id)
	require.NoError(t, ferr)
	assert.Equal(t, entity.OrderStatusProcessing, order.Status)
}
