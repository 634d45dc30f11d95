package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	repo "github.com/Yash24242424/cloneverse-express/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開商品のみを、検索/カテゴリ/ソート/ページング付きで返す。
func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// 公開（is_active=true）かつ、商品削除されていないものだけ
	tx = tx.Where("is_active = ?", true)

	// q nameを対象
	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("name ILIKE ?", like)
	}

	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	//sort（セール価格があればそれで比べる）
	switch q.Sort {
	case "price_asc":
		tx = tx.Order("COALESCE(sale_price, price) asc").Order("id asc")
	case "price_desc":
		tx = tx.Order("COALESCE(sale_price, price) desc").Order("id desc")
	case "rating":
		tx = tx.Order("rating desc").Order("id asc")
	case "new":
		tx = tx.Order("is_new desc").Order("created_at desc").Order("id asc")
	default:
		tx = tx.Order("featured desc").Order("id asc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 公開商品のカテゴリと件数
func (r *ProductGormRepository) ListCategories(ctx context.Context) ([]repo.CategoryCount, error) {
	out := []repo.CategoryCount{}
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("category, COUNT(*) AS count").
		Where("is_active = ?", true).
		Where("category <> ?", "").
		Group("category").
		Order("category asc").
		Scan(&out).Error
	if err != nil {
		return []repo.CategoryCount{}, err
	}
	return out, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}
