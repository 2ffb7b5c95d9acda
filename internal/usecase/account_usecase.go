package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/DipakKumarChauhan/SubStream/internal/domain/model"
	"github.com/DipakKumarChauhan/SubStream/internal/repository"
)

// プロフィール系の更新を担当。
type AccountUsecase struct {
	users     repository.UserRepository
	media     MediaUploader
	validator AuthValidator
}

// DI
func NewAccountUsecase(
	users repository.UserRepository,
	media MediaUploader,
	validator AuthValidator,
) *AccountUsecase {
	return &AccountUsecase{
		users:     users,
		media:     media,
		validator: validator,
	}
}

// フルネームとemailを更新する。どちらも必須。
func (u *AccountUsecase) UpdateAccountDetails(ctx context.Context, userID, fullName, email string) (*model.User, error) {
	if err := u.validator.ValidateUpdateAccount(ctx, fullName, email); err != nil {
		return nil, err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if user == nil {
		return nil, ErrNotFound
	}

	user.FullName = strings.TrimSpace(fullName)
	user.Email = normalize(email)

	if err := u.users.Update(ctx, user); err != nil {
		return nil, ErrInternal
	}

	safe := user.Sanitized()
	return &safe, nil
}

// avatarを差し替える。旧画像はURLからpublic IDを割り出して
// ベストエフォートで消す。
func (u *AccountUsecase) UpdateAvatar(ctx context.Context, userID, localPath string) (*model.User, error) {
	if localPath == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "Avatar file missing")
	}

	url, err := u.media.Upload(ctx, localPath)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "Error while uploading avatar")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if user == nil {
		return nil, ErrNotFound
	}

	oldURL := user.AvatarURL
	user.AvatarURL = url

	if err := u.users.Update(ctx, user); err != nil {
		return nil, ErrInternal
	}

	if oldURL != "" {
		_ = u.media.Destroy(ctx, oldURL)
	}

	safe := user.Sanitized()
	return &safe, nil
}

// cover imageを差し替える。
func (u *AccountUsecase) UpdateCoverImage(ctx context.Context, userID, localPath string) (*model.User, error) {
	if localPath == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "Cover image file missing")
	}

	url, err := u.media.Upload(ctx, localPath)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "Error while uploading cover image")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if user == nil {
		return nil, ErrNotFound
	}

	oldURL := user.CoverImageURL
	user.CoverImageURL = url

	if err := u.users.Update(ctx, user); err != nil {
		return nil, ErrInternal
	}

	if oldURL != "" {
		_ = u.media.Destroy(ctx, oldURL)
	}

	safe := user.Sanitized()
	return &safe, nil
}
