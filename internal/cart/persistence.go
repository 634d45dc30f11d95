package cart

import (
	"context"
	"errors"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	"github.com/Yash24242424/cloneverse-express/internal/infra/snapshot"
	repo "github.com/Yash24242424/cloneverse-express/internal/repository"

	"go.uber.org/zap"
)

// Persistence stores cart snapshots in a slot. Failures are logged and
// swallowed so a cart keeps working when its slot does not.
type Persistence struct {
	slot repo.CartSlot
	log  *zap.Logger
}

// DI
func NewPersistence(slot repo.CartSlot, log *zap.Logger) *Persistence {
	return &Persistence{slot: slot, log: log}
}

// Load returns false when there is nothing usable in the slot. A snapshot
// that cannot be decoded is deleted so the next load starts clean.
func (p *Persistence) Load(ctx context.Context, key string) (model.Cart, bool) {
	raw, err := p.slot.Get(ctx, key)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, false
	}
	if err != nil {
		p.log.Error("cart slot read failed", zap.String("key", key), zap.Error(err))
		return model.Cart{}, false
	}

	c, err := snapshot.Decode(raw)
	if err != nil {
		p.log.Warn("discarding malformed cart snapshot", zap.String("key", key), zap.Error(err))
		if delErr := p.slot.Delete(ctx, key); delErr != nil {
			p.log.Error("cart slot delete failed", zap.String("key", key), zap.Error(delErr))
		}
		return model.Cart{}, false
	}
	return c, true
}

// 上書き保存（失敗してもログだけ）
func (p *Persistence) Save(ctx context.Context, key string, c model.Cart) {
	raw, err := snapshot.Encode(c)
	if err != nil {
		p.log.Error("cart snapshot encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := p.slot.Set(ctx, key, raw); err != nil {
		p.log.Error("cart slot write failed", zap.String("key", key), zap.Error(err))
	}
}
