package model

import "github.com/shopspring/decimal"

// カートから毎回計算する値（保存しない）
type Totals struct {
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Shipping       decimal.Decimal
	Total          decimal.Decimal
	TotalItemCount int64
}
