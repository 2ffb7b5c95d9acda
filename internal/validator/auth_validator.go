package validator

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"github.com/DipakKumarChauhan/SubStream/internal/usecase"
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, in usecase.RegisterInput) error {
	// 必須チェック（全項目）
	for _, field := range []string{in.FullName, in.Email, in.Username, in.Password} {
		if strings.TrimSpace(field) == "" {
			return usecase.NewHTTPError(http.StatusBadRequest, "All fields are required")
		}
	}

	// email形式
	if !isEmailLike(in.Email) {
		return usecase.NewHTTPError(http.StatusBadRequest, "Invalid email format")
	}

	// avatar画像は必須
	if in.AvatarLocalPath == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "Avatar is required")
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, in usecase.LoginInput) error {
	// usernameかemailのどちらかは必要
	if strings.TrimSpace(in.Username) == "" && strings.TrimSpace(in.Email) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "Username or email is required")
	}

	if in.Password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "Password is required")
	}

	return nil
}

// パスワード変更の入力を検証
func (v *authValidator) ValidateChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	// 新パスワードと確認の一致
	if newPassword != confirmPassword {
		return usecase.NewHTTPError(http.StatusBadRequest, "Confirm password and new password not equal")
	}

	return nil
}

// アカウント更新の入力を検証
func (v *authValidator) ValidateUpdateAccount(ctx context.Context, fullName, email string) error {
	if strings.TrimSpace(fullName) == "" || strings.TrimSpace(email) == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "All fields are required")
	}

	if !isEmailLike(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, "Invalid email format")
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	_, err := mail.ParseAddress(strings.TrimSpace(s))
	return err == nil
}
