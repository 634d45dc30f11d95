package cart

import "errors"

var (
	// 追加数量が1未満
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// 合計数量が大きすぎる
	ErrQuantityTooLarge = errors.New("quantity too large")
	// 商品IDが空
	ErrInvalidProduct = errors.New("product id is required")
	// 単価がマイナス
	ErrInvalidPrice = errors.New("unit price must not be negative")
)
