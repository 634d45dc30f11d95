package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	repo "github.com/Yash24242424/cloneverse-express/internal/repository"
)

type OrderMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]model.Order
}

func NewOrderMemoryRepository() *OrderMemoryRepository {
	return &OrderMemoryRepository{orders: map[string]model.Order{}}
}

func (r *OrderMemoryRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return copyOrder(o), nil
}

func (r *OrderMemoryRepository) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, copyOrder(o))
		}
	}
	newestFirst(out)
	return out, nil
}

func (r *OrderMemoryRepository) Create(ctx context.Context, order model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return fmt.Errorf("order %s already exists", order.ID)
	}
	r.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *OrderMemoryRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, payment *model.PaymentStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	if payment != nil {
		o.PaymentStatus = *payment
	}
	o.UpdatedAt = at
	r.orders[orderID] = o
	return nil
}

func (r *OrderMemoryRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	r.mu.RLock()
	all := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		//status 絞り込み
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		all = append(all, copyOrder(o))
	}
	r.mu.RUnlock()

	newestFirst(all)

	total := int64(len(all))
	start := (f.Page - 1) * f.Limit
	if start >= len(all) {
		return []model.Order{}, total, nil
	}
	end := start + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func newestFirst(orders []model.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// 明細スライスを共有しない
func copyOrder(o model.Order) model.Order {
	o.Items = append([]model.OrderItem(nil), o.Items...)
	return o
}
