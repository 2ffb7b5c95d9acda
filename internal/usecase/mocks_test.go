package usecase_test

import (
	"context"
	"testing"

	"github.com/DipakKumarChauhan/SubStream/internal/domain/model"
	"github.com/DipakKumarChauhan/SubStream/internal/usecase"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, username string, email string) (*model.User, error) {
	args := m.Called(ctx, username, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, id string, token *string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

// rotationをmockで再現する：保存された値をuserに反映させる
func trackRefreshToken(repo *MockUserRepository, user *model.User) {
	repo.On("UpdateRefreshToken", mock.Anything, user.ID, mock.Anything).
		Run(func(args mock.Arguments) {
			tok, _ := args.Get(2).(*string)
			user.RefreshToken = tok
		}).
		Return(nil)
}

// =====================
// Mock: MediaUploader
// =====================

type MockMediaUploader struct {
	mock.Mock
}

func (m *MockMediaUploader) Upload(ctx context.Context, localPath string) (string, error) {
	args := m.Called(ctx, localPath)
	return args.String(0), args.Error(1)
}

func (m *MockMediaUploader) Destroy(ctx context.Context, assetURL string) error {
	args := m.Called(ctx, assetURL)
	return args.Error(0)
}

// =====================
// Mock: AuthValidator
// =====================

type MockAuthValidator struct {
	mock.Mock
}

func (m *MockAuthValidator) ValidateRegister(ctx context.Context, in usecase.RegisterInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockAuthValidator) ValidateLogin(ctx context.Context, in usecase.LoginInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockAuthValidator) ValidateChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) error {
	args := m.Called(ctx, oldPassword, newPassword, confirmPassword)
	return args.Error(0)
}

func (m *MockAuthValidator) ValidateUpdateAccount(ctx context.Context, fullName, email string) error {
	args := m.Called(ctx, fullName, email)
	return args.Error(0)
}

// 何でも通すvalidator
func permissiveValidator() *MockAuthValidator {
	v := new(MockAuthValidator)
	v.On("ValidateRegister", mock.Anything, mock.Anything).Return(nil).Maybe()
	v.On("ValidateLogin", mock.Anything, mock.Anything).Return(nil).Maybe()
	v.On("ValidateChangePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	v.On("ValidateUpdateAccount", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return v
}

// =====================
// Helper
// =====================

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return string(b)
}
