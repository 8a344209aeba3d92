package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/andrnaufal/perpustakaan/pkg/logging"
	middleware "github.com/andrnaufal/perpustakaan/pkg/middleware/auth"
	"github.com/andrnaufal/perpustakaan/services/library/internal/service"
	"github.com/andrnaufal/perpustakaan/services/library/internal/transport"
)

func (h *LibraryHTTP) Borrow(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "loan.borrow")

	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Akses ditolak: Butuh Token")
	}

	var req transport.BorrowRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("borrow_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	remaining, err := h.Svc.Borrow(ctx, req.BookID, claims.UserID, claims.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			l.Warn("borrow_failed", "status", 404, "book_id", req.BookID)
			return echo.NewHTTPError(http.StatusNotFound, "Buku tidak ditemukan")
		case errors.Is(err, service.ErrOutOfStock):
			l.Warn("borrow_failed", "status", 400, "reason", "out of stock", "book_id", req.BookID)
			return echo.NewHTTPError(http.StatusBadRequest, "Stok buku habis!")
		}
		l.Error("borrow_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Gagal memproses peminjaman")
	}

	l.Info("borrow_success", "book_id", req.BookID, "user_id", claims.UserID, "remaining", remaining)
	return c.JSON(http.StatusOK, transport.BorrowResponse{
		Message:        "Peminjaman Berhasil!",
		RemainingStock: remaining,
	})
}

func (h *LibraryHTTP) Return(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "loan.return")

	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Akses ditolak: Butuh Token")
	}

	var req transport.ReturnRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("return_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Return(ctx, req.BookID, claims.UserID); err != nil {
		if errors.Is(err, service.ErrNoActiveLoan) {
			l.Warn("return_failed", "status", 400, "reason", "no active loan", "book_id", req.BookID)
			return echo.NewHTTPError(http.StatusBadRequest, "Anda tidak sedang meminjam buku ini.")
		}
		l.Error("return_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Gagal mengembalikan buku")
	}

	l.Info("return_success", "book_id", req.BookID, "user_id", claims.UserID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Buku berhasil dikembalikan."})
}
