package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/andrnaufal/perpustakaan/pkg/hash"
	"github.com/andrnaufal/perpustakaan/pkg/logging"
	"github.com/andrnaufal/perpustakaan/pkg/tokens"
	"github.com/andrnaufal/perpustakaan/services/auth/internal/repo"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

type LoginResult struct {
	Token    string
	Exp      time.Time
	UserID   uint
	Username string
	Role     string
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "unknown user")
			return nil, ErrUserNotFound
		}
		l.Error("login_failed", "reason", "store error", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "password mismatch")
		return nil, ErrWrongPassword
	}

	exp := time.Now().Add(tokens.AccessTTL)
	token, err := tokens.NewAccessToken(user.ID, user.Username, user.Role, s.JWTSecret, exp)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	l.Info("login_successful")
	return &LoginResult{
		Token:    token,
		Exp:      exp,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
