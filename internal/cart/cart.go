// Package cart owns the cart aggregate: ordered line items keyed by product id,
// the four mutations on them, and the write-through to a persistence slot.
package cart

import (
	"context"
	"math"
	"sync"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	"github.com/Yash24242424/cloneverse-express/internal/pricing"

	"github.com/shopspring/decimal"
)

// Store is the persistence boundary of a cart. Neither method reports errors:
// a missing or unreadable snapshot loads as "not found" and failed writes are
// dropped by the implementation.
type Store interface {
	Load(ctx context.Context, key string) (model.Cart, bool)
	Save(ctx context.Context, key string, c model.Cart)
}

// カートに入れる商品（価格はこの時点で確定）
type ProductRef struct {
	ID        string
	UnitPrice decimal.Decimal
	Name      string
	Image     string
	Brand     string
}

// セール価格があればそれを単価にする
func RefFromProduct(p model.Product) ProductRef {
	return ProductRef{
		ID:        p.ID,
		UnitPrice: p.EffectivePrice(),
		Name:      p.Name,
		Image:     p.Image,
		Brand:     p.Brand,
	}
}

// Cart is one session's cart. Its methods are safe for concurrent use; each
// mutation runs to completion, including the snapshot write, before the next.
type Cart struct {
	mu     sync.Mutex
	key    string
	items  []model.LineItem
	policy pricing.Policy
	store  Store
}

// 空のカート
func New(key string, policy pricing.Policy, store Store) *Cart {
	return &Cart{
		key:    key,
		items:  []model.LineItem{},
		policy: policy,
		store:  store,
	}
}

// 保存済みのスナップショットがあれば復元する
func Open(ctx context.Context, key string, policy pricing.Policy, store Store) *Cart {
	c := New(key, policy, store)
	if saved, ok := store.Load(ctx, key); ok {
		c.items = saved.Clone().Items
	}
	return c
}

func (c *Cart) Key() string {
	return c.key
}

// AddItem appends a new line or increases the quantity of an existing one.
// The unit price and display fields of an existing line are kept as they were
// when it was first added.
func (c *Cart) AddItem(ctx context.Context, p ProductRef, quantity int64) error {
	return c.AddItemCapped(ctx, p, quantity, math.MaxInt64)
}

// AddItemCapped is AddItem with an upper bound on the resulting line quantity.
// A line that would exceed limit is left untouched and nothing is persisted.
func (c *Cart) AddItemCapped(ctx context.Context, p ProductRef, quantity int64, limit int64) error {
	if p.ID == "" {
		return ErrInvalidProduct
	}
	if p.UnitPrice.IsNegative() {
		return ErrInvalidPrice
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if quantity > limit {
		return ErrQuantityTooLarge
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	snap := model.Cart{Items: c.items}
	if i := snap.IndexOf(p.ID); i >= 0 {
		// 桁あふれで数量がマイナスにならないようにする
		if c.items[i].Quantity > limit-quantity {
			return ErrQuantityTooLarge
		}
		c.items[i].Quantity += quantity
	} else {
		c.items = append(c.items, model.LineItem{
			ProductID: p.ID,
			UnitPrice: p.UnitPrice,
			Quantity:  quantity,
			Name:      p.Name,
			Image:     p.Image,
			Brand:     p.Brand,
		})
	}

	c.persist(ctx)
	return nil
}

// 無い商品IDは何もしない
func (c *Cart) RemoveItem(ctx context.Context, productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(productID)
	c.persist(ctx)
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line; an unknown product id is ignored.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID)
	} else if i := (model.Cart{Items: c.items}).IndexOf(productID); i >= 0 {
		c.items[i].Quantity = quantity
	}

	c.persist(ctx)
}

func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = []model.LineItem{}
	c.persist(ctx)
}

// 呼び出し側に渡すコピー
func (c *Cart) Snapshot() model.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()

	return model.Cart{Items: c.items}.Clone()
}

// 保存しない。毎回計算する。
func (c *Cart) Totals() model.Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	return pricing.ComputeTotals(c.items, c.policy)
}

// スナップショットと合計を同じ時点で取る
func (c *Cart) View() (model.Cart, model.Totals) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return model.Cart{Items: c.items}.Clone(), pricing.ComputeTotals(c.items, c.policy)
}

// Drain passes the current items and totals to fn with the cart locked, then
// clears the cart if fn returns nil. On error the cart is left as it was.
func (c *Cart) Drain(ctx context.Context, fn func(model.Cart, model.Totals) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := model.Cart{Items: c.items}.Clone()
	if err := fn(snap, pricing.ComputeTotals(c.items, c.policy)); err != nil {
		return err
	}

	c.items = []model.LineItem{}
	c.persist(ctx)
	return nil
}

func (c *Cart) removeLocked(productID string) {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

func (c *Cart) persist(ctx context.Context) {
	c.store.Save(ctx, c.key, model.Cart{Items: c.items}.Clone())
}
