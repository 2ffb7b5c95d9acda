package model

import "time"

type User struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	Username      string    `json:"username" gorm:"uniqueIndex;not null"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName      string    `json:"fullName" gorm:"not null"`
	AvatarURL     string    `json:"avatarUrl" gorm:"not null"` // Cloudinary URL（必須）
	CoverImageURL string    `json:"coverImageUrl"`             // 任意
	PasswordHash  string    `json:"-" gorm:"column:password_hash;not null"`
	RefreshToken  *string   `json:"-" gorm:"column:refresh_token"` // 有効なrefreshは1ユーザー1本。NULLで失効
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// APIに返す前に秘密情報を落とす（password hashとrefresh token）
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.RefreshToken = nil
	return u
}
