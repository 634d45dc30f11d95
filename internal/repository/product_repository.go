package repository

import (
	"context"
	"errors"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Sort     string // price_asc / price_desc / rating / new（空ならおすすめ順）
}

// カテゴリごとの公開商品数
type CategoryCount struct {
	Category string
	Count    int64
}

// 商品の取得だけを約束（管理画面の編集は対象外）
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	ListCategories(ctx context.Context) ([]CategoryCount, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
}
