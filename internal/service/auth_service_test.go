package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autohub-api/internal/core/apperr"
	"autohub-api/internal/core/auth"
	"autohub-api/internal/domain"
	"autohub-api/pkg/utils"
)

func newTestJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "autohub-test", TTL: time.Hour}
}

func TestAuthService_Register(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, &fakeAdminRepo{}, newTestJWTer())
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{
		Email:     "Jane@Example.com",
		Password:  "s3cret-pw",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.NotEmpty(t, res.Token)

	assert.Equal(t, "jane@example.com", res.User.Email)
	assert.Equal(t, 100, res.User.LoyaltyPoints)
	assert.Equal(t, "bronze", res.User.MembershipTier)

	// the stored hash must verify against the plaintext but never equal it
	assert.NotEqual(t, "s3cret-pw", res.User.PasswordHash)
	assert.True(t, utils.CheckPassword("s3cret-pw", res.User.PasswordHash))

	claims, err := newTestJWTer().Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UID)
	assert.Equal(t, "user", claims.Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, &fakeAdminRepo{}, newTestJWTer())
	ctx := context.Background()

	in := RegisterInput{Email: "jane@example.com", Password: "pw", FirstName: "Jane", LastName: "Doe"}
	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	_, err = svc.Register(ctx, in)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, http.StatusConflict))
	assert.Len(t, users.users, 1)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{}, &fakeAdminRepo{}, newTestJWTer())
	_, err := svc.Register(context.Background(), RegisterInput{Email: "x@y.com"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, http.StatusBadRequest))
}

func TestAuthService_Login(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, &fakeAdminRepo{}, newTestJWTer())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "right-pw", FirstName: "Jane", LastName: "Doe"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, "jane@example.com", "right-pw")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotNil(t, users.users[0].LastLogin)
}

func TestAuthService_Login_WrongCredentials(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, &fakeAdminRepo{}, newTestJWTer())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "right-pw", FirstName: "Jane", LastName: "Doe"})
	require.NoError(t, err)

	// wrong password and unknown email must be indistinguishable
	_, errWrongPw := svc.Login(ctx, "jane@example.com", "wrong-pw")
	_, errNoUser := svc.Login(ctx, "ghost@example.com", "whatever")
	require.Error(t, errWrongPw)
	require.Error(t, errNoUser)
	assert.Equal(t, errWrongPw.Error(), errNoUser.Error())
	assert.True(t, apperr.IsCode(errWrongPw, http.StatusUnauthorized))
	assert.True(t, apperr.IsCode(errNoUser, http.StatusUnauthorized))
}

func TestAuthService_LoginGoogle_CreatesVerifiedUser(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, &fakeAdminRepo{}, newTestJWTer())
	ctx := context.Background()

	res, err := svc.LoginGoogle(ctx, GoogleLoginInput{
		GoogleID:  "g-123",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.True(t, res.User.EmailVerified)
	require.NotNil(t, res.User.GoogleID)
	assert.Equal(t, "g-123", *res.User.GoogleID)
	assert.Equal(t, 100, res.User.LoyaltyPoints)
}

func TestAuthService_LoginGoogle_LinksExistingEmail(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, &fakeAdminRepo{}, newTestJWTer())
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "pw", FirstName: "Jane", LastName: "Doe"})
	require.NoError(t, err)

	res, err := svc.LoginGoogle(ctx, GoogleLoginInput{GoogleID: "g-123", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	require.NotNil(t, res.User.GoogleID)
	assert.Equal(t, "g-123", *res.User.GoogleID)
	assert.Len(t, users.users, 1)
}

func TestAuthService_LoginGoogle_Idempotent(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, &fakeAdminRepo{}, newTestJWTer())
	ctx := context.Background()

	in := GoogleLoginInput{GoogleID: "g-123", Email: "jane@example.com", FirstName: "Jane"}
	first, err := svc.LoginGoogle(ctx, in)
	require.NoError(t, err)
	second, err := svc.LoginGoogle(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, users.users, 1)
}

func TestAuthService_AdminLogin(t *testing.T) {
	admins := &fakeAdminRepo{admins: []*domain.Admin{{
		ID:           7,
		Email:        "ops@example.com",
		PasswordHash: utils.HashPassword("admin-pw"),
		Active:       true,
	}}}
	svc := NewAuthService(&fakeUserRepo{}, admins, newTestJWTer())
	ctx := context.Background()

	res, err := svc.AdminLogin(ctx, "ops@example.com", "admin-pw")
	require.NoError(t, err)
	require.NotNil(t, res.Admin)

	claims, err := newTestJWTer().Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, uint(7), claims.UID)
}

func TestAuthService_AdminLogin_InactiveRejected(t *testing.T) {
	admins := &fakeAdminRepo{admins: []*domain.Admin{{
		ID:           7,
		Email:        "ops@example.com",
		PasswordHash: utils.HashPassword("admin-pw"),
		Active:       false,
	}}}
	svc := NewAuthService(&fakeUserRepo{}, admins, newTestJWTer())

	_, err := svc.AdminLogin(context.Background(), "ops@example.com", "admin-pw")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, http.StatusUnauthorized))
}
