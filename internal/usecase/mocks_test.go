package usecase

import (
	"context"
	"sync"

	"order-management/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory stand-in untuk repository, cukup untuk behavior service.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			// meniru unique constraint di kolom email
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeRefreshTokenRepo struct {
	mu sync.Mutex
	// keyed user_id, sama seperti unique constraint di tabelnya
	byUser map[uuid.UUID]*entity.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{byUser: make(map[uuid.UUID]*entity.RefreshToken)}
}

func (f *fakeRefreshTokenRepo) Upsert(_ context.Context, token *entity.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *token
	f.byUser[token.UserID] = &cp
	return nil
}

func (f *fakeRefreshTokenRepo) FindByToken(_ context.Context, token string) (*entity.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rt := range f.byUser {
		if rt.Token == token {
			cp := *rt
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRefreshTokenRepo) DeleteByToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for userID, rt := range f.byUser {
		if rt.Token == token {
			delete(f.byUser, userID)
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byUser, userID)
	return nil
}

func (f *fakeRefreshTokenRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byUser)
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *order
	f.orders = append(f.orders, &cp)
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id && o.UserID == userID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Order
	for _, o := range f.orders {
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

func (f *fakeOrderRepo) UpdateStatusFrom(_ context.Context, id uuid.UUID, from, to entity.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id && o.Status == from {
			o.Status = to
			return true, nil
		}
	}
	return false, nil
}

// setStatus langsung menimpa status, dipakai test untuk menyiapkan skenario
func (f *fakeOrderRepo) setStatus(id uuid.UUID, status entity.OrderStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = status
		}
	}
}

type fakeQueue struct {
	mu       sync.Mutex
	enqueued []string
	fail     bool
}

func (f *fakeQueue) EnqueueOrder(_ context.Context, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errEnqueueDown
	}
	f.enqueued = append(f.enqueued, orderID)
	return nil
}

var errEnqueueDown = &queueDownError{}

type queueDownError struct{}

func (*queueDownError) Error() string { return "queue unavailable" }
