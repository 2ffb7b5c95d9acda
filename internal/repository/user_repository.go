package repository

import (
	"context"
	"errors"

	"github.com/DipakKumarChauhan/SubStream/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	// usernameかemailのどちらか一致で1件取得する。
	FindByUsernameOrEmail(ctx context.Context, username string, email string) (*model.User, error)
	// ユーザー情報の更新=>フルネーム変更・画像URL差し替え・パスワード変更など
	Update(ctx context.Context, user *model.User) error
	// refresh_token列だけを書き換える（nilでunset）。
	// バリデーションやhookを通さない単一列更新であること。
	UpdateRefreshToken(ctx context.Context, userID string, token *string) error
}
