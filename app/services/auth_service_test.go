package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/paddock-dev/paddock/app/models"
	"github.com/paddock-dev/paddock/app/repositories"
	"github.com/paddock-dev/paddock/app/services"
	"github.com/paddock-dev/paddock/pkg/auth"
	"github.com/paddock-dev/paddock/pkg/testkit"
)

func newAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	db := testkit.NewDB(t)
	return services.NewAuthService(repositories.NewUserRepository(db))
}

func TestRegister_IssuesWorkingSession(t *testing.T) {
	svc := newAuthService(t)

	user, token, err := svc.Register(context.Background(), services.RegisterForm{
		Email:    "rider@example.com",
		Password: "stirrups88",
		Role:     "seller",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, models.RoleSeller, user.Role)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "seller", claims.Role)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc := newAuthService(t)

	user, _, err := svc.Register(context.Background(), services.RegisterForm{
		Email:    "  Rider@Example.COM ",
		Password: "stirrups88",
	})
	require.NoError(t, err)
	assert.Equal(t, "rider@example.com", user.Email)

	// The same address in different casing is the same account.
	_, _, err = svc.Register(context.Background(), services.RegisterForm{
		Email:    "RIDER@example.com",
		Password: "stirrups88",
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestRegister_DuplicateEmailTranslatesAcrossDriver(t *testing.T) {
	// Register's race fallback relies on the driver translating a unique
	// index violation into gorm.ErrDuplicatedKey. Pin that translation by
	// writing through the repository, below the FindByEmail pre-check.
	db := testkit.NewDB(t)
	users := repositories.NewUserRepository(db)

	require.NoError(t, users.Create(&models.User{
		Email: "rider@example.com", Password: "x", Role: models.RoleBuyer,
	}))

	err := users.Create(&models.User{
		Email: "rider@example.com", Password: "x", Role: models.RoleBuyer,
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRegister_UnknownRoleDefaultsToBuyer(t *testing.T) {
	svc := newAuthService(t)

	for i, role := range []string{"", "admin", "wrangler"} {
		user, _, err := svc.Register(context.Background(), services.RegisterForm{
			Email:    fmt.Sprintf("buyer%d@example.com", i),
			Password: "stirrups88",
			Role:     role,
		})
		require.NoError(t, err, "role %q", role)
		assert.Equal(t, models.RoleBuyer, user.Role, "role %q", role)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Register(context.Background(), services.RegisterForm{
		Email:    "not-an-email",
		Password: "short",
	})

	ve, ok := services.AsValidation(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "password")
}

func TestLogin_UniformFailure(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Register(context.Background(), services.RegisterForm{
		Email:    "rider@example.com",
		Password: "stirrups88",
	})
	require.NoError(t, err)

	// Unknown account and wrong password must be indistinguishable.
	_, _, unknownErr := svc.Login(context.Background(), "ghost@example.com", "stirrups88")
	_, _, wrongErr := svc.Login(context.Background(), "rider@example.com", "wrong-password")

	assert.ErrorIs(t, unknownErr, services.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, services.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLogin_Success(t *testing.T) {
	svc := newAuthService(t)

	registered, _, err := svc.Register(context.Background(), services.RegisterForm{
		Email:    "rider@example.com",
		Password: "stirrups88",
	})
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "Rider@Example.com", "stirrups88")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
}

func TestLogout_RevokesSession(t *testing.T) {
	svc := newAuthService(t)

	_, token, err := svc.Register(context.Background(), services.RegisterForm{
		Email:    "rider@example.com",
		Password: "stirrups88",
	})
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims))

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}
