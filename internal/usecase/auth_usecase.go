package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/DipakKumarChauhan/SubStream/internal/domain/model"
	"github.com/DipakKumarChauhan/SubStream/internal/repository"

	"github.com/google/uuid"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, in RegisterInput) error
	ValidateLogin(ctx context.Context, in LoginInput) error
	ValidateChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) error
	ValidateUpdateAccount(ctx context.Context, fullName, email string) error
}

// Cloudinaryなどのメディアホスティングの約束
type MediaUploader interface {
	// ローカルファイルをアップロードしてURLを返す。リトライなし。
	Upload(ctx context.Context, localPath string) (string, error)
	// URLから割り出した画像を削除する（ベストエフォート）。
	Destroy(ctx context.Context, assetURL string) error
}

type RegisterInput struct {
	FullName        string
	Email           string
	Username        string
	Password        string
	AvatarLocalPath string // 必須
	CoverLocalPath  string // 任意
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}

// Loginの結果。cookieに載せる素材もここに持つ
type LoginResult struct {
	User   model.User
	Tokens TokenPair
}

type AuthUsecase struct {
	users     repository.UserRepository
	tokens    *TokenUsecase
	hasher    PasswordHasher
	verifier  PasswordVerifier
	media     MediaUploader
	validator AuthValidator
}

// DI
func NewAuthUsecase(
	users repository.UserRepository,
	tokens *TokenUsecase,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	media MediaUploader,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		verifier:  verifier,
		media:     media,
		validator: validator,
	}
}

// 会員登録。avatar必須、coverは任意。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in); err != nil {
		return nil, err
	}

	username := normalize(in.Username)
	email := normalize(in.Email)

	//username/email重複チェック
	existing, err := u.users.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, ErrInternal
	}
	if existing != nil {
		return nil, NewHTTPError(http.StatusConflict, "User with email or username already exists")
	}

	//avatarアップロード（必須なので失敗は即エラー）
	avatarURL, err := u.media.Upload(ctx, in.AvatarLocalPath)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "Failed to upload avatar")
	}

	//coverは任意。失敗しても空のまま続行
	coverURL := ""
	if in.CoverLocalPath != "" {
		if url, err := u.media.Upload(ctx, in.CoverLocalPath); err == nil {
			coverURL = url
		}
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	//hookではなく書き込み経路で明示的にハッシュする
	pwHash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, ErrInternal
	}

	user := &model.User{
		ID:            uuid.NewString(),
		Username:      username,
		Email:         email,
		FullName:      strings.TrimSpace(in.FullName),
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
		PasswordHash:  pwHash,
	}

	//保存（unique違反の取りこぼしはここで競合扱い）
	if err := u.users.Create(ctx, user); err != nil {
		return nil, ErrConflict
	}

	safe := user.Sanitized()
	return &safe, nil
}

// ログイン。usernameかemailのどちらかで探す。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := u.validator.ValidateLogin(ctx, in); err != nil {
		return nil, err
	}

	user, err := u.users.FindByUsernameOrEmail(ctx, normalize(in.Username), normalize(in.Email))
	if err != nil {
		return nil, ErrInternal
	}
	if user == nil {
		return nil, NewHTTPError(http.StatusNotFound, "User does not exist")
	}

	//パスワード照合（bcrypt）
	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return nil, NewHTTPError(http.StatusUnauthorized, "Invalid user credentials")
	}

	//発行と同時に新しいrefreshがユーザー行へ保存される
	pair, err := u.tokens.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, ErrInternal
	}

	return &LoginResult{
		User:   user.Sanitized(),
		Tokens: *pair,
	}, nil
}

// ログアウト。保存済みrefreshをNULLにして失効させる。
// 呼び出し前にSession Boundaryを通っていること。
func (u *AuthUsecase) Logout(ctx context.Context, userID string) error {
	if err := u.users.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return ErrInternal
	}
	return nil
}

// refreshトークンからトークンペアを再発行する。
// 検証も再発行もまとめて、失敗は理由を問わず401に正規化する
// （内部の失敗詳細をクライアントへ漏らさない）。
func (u *AuthUsecase) RefreshAccessToken(ctx context.Context, incoming string) (*TokenPair, error) {
	if strings.TrimSpace(incoming) == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "Unauthorized request")
	}

	claims, err := u.tokens.VerifyRefreshToken(ctx, incoming)
	if err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}

	//accessだけでなくrefreshも作り直す（rotation。保存値が置き換わり
	//旧トークンは以後の検証で弾かれる）
	pair, err := u.tokens.IssueTokenPair(ctx, claims.Subject)
	if err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "Invalid refresh token")
	}

	return pair, nil
}

// パスワード変更。旧パスワード照合のうえ明示的に再ハッシュする。
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error {
	if err := u.validator.ValidateChangePassword(ctx, oldPassword, newPassword, confirmPassword); err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return ErrInternal
	}
	if user == nil {
		return ErrNotFound
	}

	if !u.verifier.Verify(oldPassword, user.PasswordHash) {
		return NewHTTPError(http.StatusBadRequest, "Invalid old password")
	}

	//平文が変わるときだけ再ハッシュ
	pwHash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return ErrInternal
	}
	user.PasswordHash = pwHash

	if err := u.users.Update(ctx, user); err != nil {
		return ErrInternal
	}
	return nil
}

// usernameとemailは小文字・trimで正規化して保存する
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
