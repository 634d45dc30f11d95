package repository

import "context"

// カートスナップショットの保存先（セッションキーごとに1枠）
// 中身はバイト列のまま扱い、解釈はsnapshotパッケージに任せる。
type CartSlot interface {
	// 空なら ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// 前の値は上書き
	Set(ctx context.Context, key string, payload []byte) error
	// 無くてもエラーにしない
	Delete(ctx context.Context, key string) error
}
