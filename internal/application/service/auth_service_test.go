package service

import (
	"context"
	"testing"
	"time"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/pkg/apperror"
	"github.com/dukapos/dukapos-api/pkg/oauth"
	"github.com/dukapos/dukapos-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func newAuthFixture() (*AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(userRepo, jwtManager), userRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Jane Wanjiru",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCashier, user.Role)
	assert.NotEqual(t, "secret123", user.Password)

	out, err := svc.Login(context.Background(), &LoginInput{
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, user.ID, out.User.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email: "jane@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email: "nobody@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	input := &RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "secret123"}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), &RegisterInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	out, err := svc.Login(context.Background(), &LoginInput{
		Email: "jane@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), out.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshed.User.ID)

	_, err = svc.RefreshToken(context.Background(), "garbage-token")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), &RegisterInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), &ChangePasswordInput{
		UserID: user.ID, CurrentPassword: "wrong", NewPassword: "newpass456",
	})
	require.Error(t, err)

	err = svc.ChangePassword(context.Background(), &ChangePasswordInput{
		UserID: user.ID, CurrentPassword: "secret123", NewPassword: "newpass456",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email: "jane@example.com", Password: "newpass456",
	})
	assert.NoError(t, err)
}

func TestLoginWithGoogle(t *testing.T) {
	svc, userRepo := newAuthFixture()

	_, err := svc.LoginWithGoogle(context.Background(), &oauth.GoogleUserInfo{
		ID: "g-1", Email: "jane@example.com", Name: "Jane", VerifiedEmail: false,
	})
	require.Error(t, err)

	// First verified sign-in creates a cashier account
	out, err := svc.LoginWithGoogle(context.Background(), &oauth.GoogleUserInfo{
		ID: "g-1", Email: "jane@example.com", Name: "Jane", VerifiedEmail: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "google", out.User.Provider)
	assert.Equal(t, entity.RoleCashier, out.User.Role)

	// Second sign-in reuses the account
	again, err := svc.LoginWithGoogle(context.Background(), &oauth.GoogleUserInfo{
		ID: "g-1", Email: "jane@example.com", Name: "Jane", VerifiedEmail: true,
	})
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, again.User.ID)
	assert.Len(t, userRepo.users, 1)
}
