package model

import "github.com/shopspring/decimal"

// カートの明細
// UnitPriceは追加時点の価格（セール価格があればそちら）で固定。
type LineItem struct {
	ProductID string          `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`

	// 表示用（価格計算には使わない）
	Name  string `json:"name"`
	Image string `json:"image"`
	Brand string `json:"brand,omitempty"`
}

// 小計（丸めない）
func (it LineItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
}
