package repository

import (
	"context"
	"errors"

	"github.com/DipakKumarChauhan/SubStream/internal/domain/model"
	domainrepo "github.com/DipakKumarChauhan/SubStream/internal/repository"

	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB //DB接続（GORM）
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}
	return nil
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}

// usernameかemailでユーザーを1件取得
func (r *userGormRepository) FindByUsernameOrEmail(ctx context.Context, username string, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}

// ユーザーを更新。
func (r *userGormRepository) Update(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return err
	}
	return nil
}

// refresh_token列だけを更新します（nilならNULL=失効）。
// UpdateColumnなのでhookもバリデーションも通らない。
func (r *userGormRepository) UpdateRefreshToken(ctx context.Context, id string, token *string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("refresh_token", token)

	if res.Error != nil {
		return res.Error
	}

	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}
