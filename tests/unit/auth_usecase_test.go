package unit

import (
	"context"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type RefreshTokenRepoMock struct{ mock.Mock }

func (m *RefreshTokenRepoMock) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	rt, _ := args.Get(0).(*model.RefreshToken)
	return rt, args.Error(1)
}

func (m *RefreshTokenRepoMock) DeleteByID(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteAllByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// validatorは素通し/拒否だけ返すモック
type ValidatorMock struct{ mock.Mock }

func (m *ValidatorMock) ValidateRegister(ctx context.Context, name, email, password string) error {
	args := m.Called(ctx, name, email, password)
	return args.Error(0)
}

func (m *ValidatorMock) ValidateLogin(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func testConfig() config.Config {
	return config.Config{JWTSecret: "unit-test-secret"}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash failed: %v", err)
	}
	return string(h)
}

func TestAuthLogin_OK(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	validator := new(ValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, rts, validator)

	user := &model.User{
		ID: 1, Email: "taro@example.com", Name: "taro",
		PasswordHash: mustHash(t, "password123"),
		Role:         model.RoleUser, IsActive: true,
	}

	validator.On("ValidateLogin", mock.Anything, "taro@example.com", "password123").Return(nil)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(user, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)
	rts.On("Create", mock.Anything, mock.MatchedBy(func(rt *model.RefreshToken) bool {
		//DBには平文ではなくhashが入る
		return rt.UserID == 1 && rt.TokenHash != "" && rt.ID != ""
	})).Return(nil)

	got, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email: "taro@example.com", Password: "password123",
	}, "unit-test-agent")

	assert.NoError(t, err)
	assert.NotEmpty(t, got.Body.Token.AccessToken)
	assert.NotEmpty(t, got.RefreshTokenPlain)
	assert.Equal(t, int64(1), got.Body.User.ID)
	rts.AssertExpectations(t)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	validator := new(ValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, rts, validator)

	user := &model.User{
		ID: 1, Email: "taro@example.com",
		PasswordHash: mustHash(t, "password123"),
		Role:         model.RoleUser, IsActive: true,
	}

	validator.On("ValidateLogin", mock.Anything, "taro@example.com", "wrong").Return(nil)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(user, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email: "taro@example.com", Password: "wrong",
	}, "unit-test-agent")

	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	rts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthLogin_InactiveUserForbidden(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	validator := new(ValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, rts, validator)

	user := &model.User{
		ID: 1, Email: "taro@example.com",
		PasswordHash: mustHash(t, "password123"),
		Role:         model.RoleUser, IsActive: false,
	}

	validator.On("ValidateLogin", mock.Anything, "taro@example.com", "password123").Return(nil)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(user, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email: "taro@example.com", Password: "password123",
	}, "unit-test-agent")

	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestAuthRegister_HashesPassword(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	validator := new(ValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, rts, validator)

	validator.On("ValidateRegister", mock.Anything, "taro", "taro@example.com", "password123").Return(nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//平文を保存しない
		return u.PasswordHash != "password123" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Return(nil)

	got, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{
		Name: "taro", Email: "taro@example.com", Password: "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, "taro@example.com", got.User.Email)
	users.AssertExpectations(t)
}

func TestAuthRegister_ValidatorRejects(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	validator := new(ValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, rts, validator)

	validator.On("ValidateRegister", mock.Anything, "taro", "bad", "pw").Return(usecase.ErrValidation)

	_, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{
		Name: "taro", Email: "bad", Password: "pw",
	})
	assert.ErrorIs(t, err, usecase.ErrValidation)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthLogout_UnknownRefreshToken(t *testing.T) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	validator := new(ValidatorMock)
	uc := usecase.NewAuthUsecase(testConfig(), users, rts, validator)

	rts.On("FindByTokenHash", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := uc.Logout(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}
