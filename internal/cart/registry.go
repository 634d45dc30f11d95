package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/Yash24242424/cloneverse-express/internal/pricing"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Registry keeps hydrated carts in memory, one per session key. Carts pushed
// out of the LRU are hydrated again from the store on their next use, but a
// cart that is in use by a request stays pinned until that request releases
// it, so a key never has two live instances.
type Registry struct {
	store  Store
	policy pricing.Policy
	carts  *lru.Cache
	sfg    singleflight.Group // 同じキーの復元は1回だけ
	log    *zap.Logger

	mu       sync.Mutex
	pinned   map[string]*pin // 使用中のカート
	installs uint64          // 登録のたびに増える
}

type pin struct {
	cart *Cart
	refs int
}

func NewRegistry(store Store, policy pricing.Policy, size int, log *zap.Logger) (*Registry, error) {
	carts, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("cart registry: %w", err)
	}
	return &Registry{
		store:  store,
		policy: policy,
		carts:  carts,
		log:    log,
		pinned: map[string]*pin{},
	}, nil
}

// With runs fn with the session's cart pinned in memory. The cart is hydrated
// from the store on first use.
func (r *Registry) With(ctx context.Context, key string, fn func(c *Cart) error) error {
	c := r.acquire(ctx, key)
	defer r.release(key)
	return fn(c)
}

func (r *Registry) acquire(ctx context.Context, key string) *Cart {
	// リクエストがキャンセルされても復元は最後まで行う
	hydrateCtx := context.WithoutCancel(ctx)

	for {
		r.mu.Lock()
		if c, ok := r.pinLocked(key); ok {
			r.mu.Unlock()
			return c
		}
		seen := r.installs
		r.mu.Unlock()

		v, _, _ := r.sfg.Do(key, func() (interface{}, error) {
			if c, ok := r.lookup(key); ok {
				return c, nil
			}
			c := Open(hydrateCtx, key, r.policy, r.store)
			r.log.Debug("cart hydrated", zap.String("key", key), zap.Int("items", len(c.items)))
			return c, nil
		})
		fresh := v.(*Cart)

		r.mu.Lock()
		if c, ok := r.pinLocked(key); ok {
			r.mu.Unlock()
			return c
		}
		// 復元中に他のカートが登録されていたら読み直す
		if r.installs != seen {
			r.mu.Unlock()
			continue
		}
		r.installs++
		r.carts.Add(key, fresh)
		r.pinned[key] = &pin{cart: fresh, refs: 1}
		r.mu.Unlock()
		return fresh
	}
}

// 使用中またはLRUにあるカート（固定はしない）
func (r *Registry) lookup(key string) (*Cart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.pinned[key]; ok {
		return p.cart, true
	}
	if v, ok := r.carts.Peek(key); ok {
		return v.(*Cart), true
	}
	return nil, false
}

// 使用中またはLRUにあるカートを固定する
func (r *Registry) pinLocked(key string) (*Cart, bool) {
	if p, ok := r.pinned[key]; ok {
		p.refs++
		return p.cart, true
	}
	if v, ok := r.carts.Get(key); ok {
		c := v.(*Cart)
		r.pinned[key] = &pin{cart: c, refs: 1}
		return c, true
	}
	return nil, false
}

func (r *Registry) release(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pinned[key]
	if !ok {
		return
	}
	p.refs--
	if p.refs == 0 {
		delete(r.pinned, key)
	}
}

// メモリ上のカートを捨てる（保存先はそのまま）
// 使用中のカートは解放されるまで残る
func (r *Registry) Forget(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts.Remove(key)
}
