package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DipakKumarChauhan/SubStream/internal/config"
	"github.com/DipakKumarChauhan/SubStream/internal/domain/model"
	"github.com/DipakKumarChauhan/SubStream/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		AccessSecret:  "test-access-secret",
		AccessTTL:     15 * time.Minute,
		RefreshSecret: "test-refresh-secret",
		RefreshTTL:    time.Hour,
	}
}

func testUser() *model.User {
	return &model.User{
		ID:        "11111111-1111-1111-1111-111111111111",
		Username:  "alice",
		Email:     "alice@example.com",
		FullName:  "Alice Example",
		AvatarURL: "https://cdn.test/avatar.png",
	}
}

// =====================
// IssueTokenPair + VerifyRefreshToken
// =====================

func TestTokenUsecase_IssuePairThenVerifyRefresh(t *testing.T) {
	ctx := context.Background()

	user := testUser()
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	trackRefreshToken(users, user)

	uc := usecase.NewTokenUsecase(testTokenConfig(), users)

	pair, err := uc.IssueTokenPair(ctx, user.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// 発行したrefreshはそのまま検証を通り、subjectが一致する
	claims, err := uc.VerifyRefreshToken(ctx, pair.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)

	users.AssertExpectations(t)
}

// rotation：2回目の発行で1本目のrefreshは無効になる
func TestTokenUsecase_RotationInvalidatesPreviousRefresh(t *testing.T) {
	ctx := context.Background()

	user := testUser()
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	trackRefreshToken(users, user)

	uc := usecase.NewTokenUsecase(testTokenConfig(), users)

	first, err := uc.IssueTokenPair(ctx, user.ID)
	assert.NoError(t, err)

	second, err := uc.IssueTokenPair(ctx, user.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// 旧トークンは署名上は有効でもDBの保存値と違うので401相当
	_, err = uc.VerifyRefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)

	// 新しい方は通る
	claims, err := uc.VerifyRefreshToken(ctx, second.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
}

// accessはstateless：rotationしても発行済みのaccessは生きている
func TestTokenUsecase_AccessTokenSurvivesRotation(t *testing.T) {
	ctx := context.Background()

	user := testUser()
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	trackRefreshToken(users, user)

	uc := usecase.NewTokenUsecase(testTokenConfig(), users)

	first, err := uc.IssueTokenPair(ctx, user.ID)
	assert.NoError(t, err)

	_, err = uc.IssueTokenPair(ctx, user.ID)
	assert.NoError(t, err)

	claims, err := uc.VerifyAccessToken(first.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Username, claims.Username)
}

// logout相当：保存値をNULLにしたらrefreshは通らない
func TestTokenUsecase_UnsetStoredTokenRejectsRefresh(t *testing.T) {
	ctx := context.Background()

	user := testUser()
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	trackRefreshToken(users, user)

	uc := usecase.NewTokenUsecase(testTokenConfig(), users)

	pair, err := uc.IssueTokenPair(ctx, user.ID)
	assert.NoError(t, err)

	user.RefreshToken = nil

	_, err = uc.VerifyRefreshToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

// =====================
// Verify：改ざん・別シークレット・期限切れ
// =====================

func TestTokenUsecase_VerifyAccess_Tampered(t *testing.T) {
	user := testUser()
	users := new(MockUserRepository)

	uc := usecase.NewTokenUsecase(testTokenConfig(), users)

	token, err := uc.IssueAccessToken(user)
	assert.NoError(t, err)

	// payload部分の1文字を入れ替えると署名が合わなくなる
	mid := len(token) / 2
	flipped := "A"
	if token[mid] == 'A' {
		flipped = "B"
	}
	tampered := token[:mid] + flipped + token[mid+1:]
	assert.NotEqual(t, token, tampered)

	_, err = uc.VerifyAccessToken(tampered)
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

// accessシークレットで署名されていないトークンはaccessとして通らない
func TestTokenUsecase_VerifyAccess_WrongSecret(t *testing.T) {
	user := testUser()
	users := new(MockUserRepository)

	uc := usecase.NewTokenUsecase(testTokenConfig(), users)

	refreshToken, err := uc.IssueRefreshToken(user)
	assert.NoError(t, err)

	_, err = uc.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestTokenUsecase_Verify_Garbage(t *testing.T) {
	users := new(MockUserRepository)
	uc := usecase.NewTokenUsecase(testTokenConfig(), users)

	for _, tok := range []string{"", "not-a-jwt", strings.Repeat("x", 300)} {
		_, err := uc.VerifyAccessToken(tok)
		assert.ErrorIs(t, err, usecase.ErrUnauthorized)

		_, err = uc.VerifyRefreshToken(context.Background(), tok)
		assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	}
}

// 負のTTLで発行（=発行時点で期限切れ）は署名が正しくても弾く
func TestTokenUsecase_Verify_Expired(t *testing.T) {
	ctx := context.Background()

	user := testUser()
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	trackRefreshToken(users, user)

	cfg := testTokenConfig()
	cfg.AccessTTL = -time.Minute
	cfg.RefreshTTL = -time.Minute

	uc := usecase.NewTokenUsecase(cfg, users)

	pair, err := uc.IssueTokenPair(ctx, user.ID)
	assert.NoError(t, err)

	_, err = uc.VerifyAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)

	_, err = uc.VerifyRefreshToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

// =====================
// 対象ユーザー不在
// =====================

func TestTokenUsecase_IssuePair_UserNotFound(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	uc := usecase.NewTokenUsecase(testTokenConfig(), users)

	_, err := uc.IssueTokenPair(context.Background(), "missing")
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

// subjectのユーザーが消えている場合はNotFoundではなく401
// （アカウントの存在有無を漏らさない）
func TestTokenUsecase_VerifyRefresh_SubjectGone(t *testing.T) {
	user := testUser()

	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, user.ID).Return(nil, nil)

	uc := usecase.NewTokenUsecase(testTokenConfig(), users)

	token, err := uc.IssueRefreshToken(user)
	assert.NoError(t, err)

	_, err = uc.VerifyRefreshToken(context.Background(), token)
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	assert.NotErrorIs(t, err, usecase.ErrNotFound)
}

// 保存に失敗したらpairは返さない
func TestTokenUsecase_IssuePair_StoreWriteFails(t *testing.T) {
	user := testUser()

	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	users.On("UpdateRefreshToken", mock.Anything, user.ID, mock.Anything).Return(assert.AnError)

	uc := usecase.NewTokenUsecase(testTokenConfig(), users)

	_, err := uc.IssueTokenPair(context.Background(), user.ID)
	assert.ErrorIs(t, err, usecase.ErrInternal)
}
