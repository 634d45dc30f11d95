package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	repo "github.com/Yash24242424/cloneverse-express/internal/repository"
)

// DATA_STORE=memory 用の商品カタログ
type ProductMemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]model.Product
	order []string // 登録順
}

// DI
func NewProductMemoryRepository() *ProductMemoryRepository {
	return &ProductMemoryRepository{byID: map[string]model.Product{}}
}

func (r *ProductMemoryRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(q.Q))
	matched := make([]model.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.byID[id]
		if !p.IsActive {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, q.Sort)

	total := int64(len(matched))
	start := (q.Page - 1) * q.Limit
	if start < 0 || start >= len(matched) {
		return []model.Product{}, total, nil
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *ProductMemoryRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

// 公開商品のカテゴリをID順で
func (r *ProductMemoryRepository) ListCategories(ctx context.Context) ([]repo.CategoryCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[string]int64{}
	for _, id := range r.order {
		p := r.byID[id]
		if p.IsActive && p.Category != "" {
			counts[p.Category]++
		}
	}

	out := make([]repo.CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, repo.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *ProductMemoryRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; ok {
		return model.Product{}, fmt.Errorf("product %s already exists", p.ID)
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return p, nil
}

// 並び順はGORM実装と同じ
func sortProducts(ps []model.Product, by string) {
	switch by {
	case "price_asc":
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].EffectivePrice().LessThan(ps[j].EffectivePrice())
		})
	case "price_desc":
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].EffectivePrice().GreaterThan(ps[j].EffectivePrice())
		})
	case "rating":
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Rating > ps[j].Rating
		})
	case "new":
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].IsNew && !ps[j].IsNew
		})
	default:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Featured && !ps[j].Featured
		})
	}
}
