package repository

import (
	"context"
	"errors"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// メール重複
var ErrEmailAlreadyUsed = errors.New("email already used")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（メール重複は ErrEmailAlreadyUsed）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// 最後のログインなどの更新
	Update(ctx context.Context, user *model.User) error
}
