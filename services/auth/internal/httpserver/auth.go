package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/andrnaufal/perpustakaan/pkg/logging"
	"github.com/andrnaufal/perpustakaan/services/auth/internal/seed"
	"github.com/andrnaufal/perpustakaan/services/auth/internal/service"
	"github.com/andrnaufal/perpustakaan/services/auth/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
	DB  *gorm.DB
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusUnauthorized, "User tidak ditemukan")
		case errors.Is(err, service.ErrWrongPassword):
			return echo.NewHTTPError(http.StatusUnauthorized, "Password salah")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Server Error")
		}
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		Message: "Login Berhasil!",
		Token:   res.Token,
		User: transport.UserInfo{
			ID:       res.UserID,
			Username: res.Username,
			Role:     res.Role,
		},
	})
}

func (h *AuthHTTP) InitDB(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.init_db")

	if err := seed.Reset(ctx, h.DB); err != nil {
		l.Error("init_db_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot reseed user database")
	}

	l.Info("init_db_success")
	return c.String(http.StatusOK, "Database User Siap! (Admin & User dibuat)")
}
