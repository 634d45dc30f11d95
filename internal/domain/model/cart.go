package model

// 1セッションにつきカートは1つ
// Itemsは追加順。同じProductIDは1行だけ。
type Cart struct {
	Items []LineItem `json:"items"`
}

// 商品IDで明細の位置を探す（無ければ -1）
func (c Cart) IndexOf(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// 呼び出し側が書き換えても影響しないコピー
func (c Cart) Clone() Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
