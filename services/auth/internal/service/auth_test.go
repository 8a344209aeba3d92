package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrnaufal/perpustakaan/pkg/hash"
	"github.com/andrnaufal/perpustakaan/pkg/tokens"
	"github.com/andrnaufal/perpustakaan/services/auth/internal/models"
	"github.com/andrnaufal/perpustakaan/services/auth/internal/repo"
)

var testSecret = []byte("test-jwt-secret")

func newTestAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	svc := &AuthService{
		Repo:      &repo.GormRepo{DB: db},
		JWTSecret: testSecret,
	}
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, username, password, role string) models.User {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := models.User{Username: username, PasswordHash: pwHash, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestLogin_Success(t *testing.T) {
	svc, db := newTestAuthService(t)
	user := seedUser(t, db, "budi", "budi123", "user")

	res, err := svc.Login(context.Background(), "budi", "budi123")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, user.ID, res.UserID)
	assert.Equal(t, "budi", res.Username)
	assert.Equal(t, "user", res.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.Exp, 5*time.Second)

	claims, err := tokens.AccessClaimsFromToken(res.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "budi", claims.Username)
	assert.Equal(t, "user", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, res.Exp, claims.ExpiresAt.Time, time.Second)
}

func TestLogin_AdminRoleInClaims(t *testing.T) {
	svc, db := newTestAuthService(t)
	seedUser(t, db, "admin", "admin", "admin")

	res, err := svc.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)

	claims, err := tokens.AccessClaimsFromToken(res.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(t)

	res, err := svc.Login(context.Background(), "siapa", "rahasia")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, db := newTestAuthService(t)
	seedUser(t, db, "budi", "budi123", "user")

	res, err := svc.Login(context.Background(), "budi", "salah")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_TokenRejectedWithWrongSecret(t *testing.T) {
	svc, db := newTestAuthService(t)
	seedUser(t, db, "budi", "budi123", "user")

	res, err := svc.Login(context.Background(), "budi", "budi123")
	require.NoError(t, err)

	_, err = tokens.AccessClaimsFromToken(res.Token, []byte("secret-lain"))
	require.Error(t, err)
}
