package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          string              `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string              `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string              `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description string              `gorm:"type:text" json:"description"`
	Price       decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"price"`
	SalePrice   decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"sale_price"`
	Rating      float64             `gorm:"not null;default:0" json:"rating"`
	Image       string              `gorm:"type:text" json:"image"`
	Badges      pq.StringArray      `gorm:"type:text[]" json:"badges"`
	Category    string              `gorm:"type:varchar(100);not null;index" json:"category"`
	Featured    bool                `gorm:"not null;default:false" json:"featured"`
	IsNew       bool                `gorm:"not null;default:false" json:"is_new"`
	Brand       string              `gorm:"type:varchar(255)" json:"brand"`
	IsActive    bool                `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time           `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`
}

// 請求に使う価格（セール価格が無ければ定価）
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.Valid {
		return p.SalePrice.Decimal
	}
	return p.Price
}
