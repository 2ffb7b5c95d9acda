package usecase

import (
	"context"
	"time"

	"github.com/DipakKumarChauhan/SubStream/internal/config"
	"github.com/DipakKumarChauhan/SubStream/internal/domain/model"
	"github.com/DipakKumarChauhan/SubStream/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// accessトークンのclaims。サーバー側には保存しない。
type AccessTokenClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// refreshトークンのclaims。subだけ持つ。
// 有効性は署名+期限に加えてDB上の値との一致で決まる。
type RefreshTokenClaims struct {
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenUsecaseはトークンの発行・検証・rotationを担当。
type TokenUsecase struct {
	cfg   config.TokenConfig
	users repository.UserRepository
}

// DI
func NewTokenUsecase(cfg config.TokenConfig, users repository.UserRepository) *TokenUsecase {
	return &TokenUsecase{cfg: cfg, users: users}
}

// accessトークンを発行。副作用なし。
func (u *TokenUsecase) IssueAccessToken(user *model.User) (string, error) {
	now := time.Now()

	claims := AccessTokenClaims{
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.cfg.AccessTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(u.cfg.AccessSecret))
}

// refreshトークンを発行。これ自体はDBに触らない。
func (u *TokenUsecase) IssueRefreshToken(user *model.User) (string, error) {
	now := time.Now()

	// jtiを入れて同時刻の発行でも毎回別のトークンになるようにする
	// （rotationの新旧比較が文字列一致なので同一だと困る）
	claims := RefreshTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.cfg.RefreshTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(u.cfg.RefreshSecret))
}

// 両トークンを発行して、新しいrefreshをユーザー行へ保存する。
// 呼ぶたびに保存値が置き換わる（rotation）。同一ユーザーの並行呼び出しは
// last-write-winsで、最後に保存された値だけが以後有効。
func (u *TokenUsecase) IssueTokenPair(ctx context.Context, userID string) (*TokenPair, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if user == nil {
		return nil, ErrNotFound
	}

	accessToken, err := u.IssueAccessToken(user)
	if err != nil {
		return nil, ErrInternal
	}

	refreshToken, err := u.IssueRefreshToken(user)
	if err != nil {
		return nil, ErrInternal
	}

	// 単一列更新（バリデーションを通さない）
	if err := u.users.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, ErrInternal
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// accessトークンを検証してclaimsを返す。署名と期限だけを見る。
// 失敗理由は区別せず一律ErrUnauthorized。
func (u *TokenUsecase) VerifyAccessToken(tokenString string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	if err := u.parse(tokenString, claims, u.cfg.AccessSecret); err != nil {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// refreshトークンを検証してclaimsを返す。
// 署名・期限に加えて「DB上の保存値と完全一致」を要求する。
// rotationで上書きされた旧トークンやlogout済みはここで弾かれる。
// 対象ユーザーが消えていてもErrNotFoundではなくErrUnauthorized
// （アカウントの存在有無を漏らさない）。
func (u *TokenUsecase) VerifyRefreshToken(ctx context.Context, tokenString string) (*RefreshTokenClaims, error) {
	claims := &RefreshTokenClaims{}
	if err := u.parse(tokenString, claims, u.cfg.RefreshSecret); err != nil {
		return nil, ErrUnauthorized
	}

	user, err := u.users.FindByID(ctx, claims.Subject)
	if err != nil || user == nil {
		return nil, ErrUnauthorized
	}

	// 文字列の完全一致。一致しない＝rotation済みか失効済み
	if user.RefreshToken == nil || *user.RefreshToken != tokenString {
		return nil, ErrUnauthorized
	}

	return claims, nil
}

// HS256固定でパースする
func (u *TokenUsecase) parse(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return ErrUnauthorized
	}
	return nil
}
