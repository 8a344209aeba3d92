package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/andrnaufal/perpustakaan/pkg/logging"
	"github.com/andrnaufal/perpustakaan/services/library/internal/models"
	"github.com/andrnaufal/perpustakaan/services/library/internal/seed"
	"github.com/andrnaufal/perpustakaan/services/library/internal/service"
	"github.com/andrnaufal/perpustakaan/services/library/internal/transport"
)

type LibraryHTTP struct {
	Svc *service.LibraryService
	DB  *gorm.DB
}

func (h *LibraryHTTP) GetBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.get_books")

	books, err := h.Svc.ListBooks(ctx)
	if err != nil {
		l.Error("get_books_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Database Error")
	}

	return c.JSON(http.StatusOK, books)
}

func (h *LibraryHTTP) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.create_book")

	var req transport.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_book_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	book := models.Book{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		Stock:    req.Stock,
	}

	if err := h.Svc.CreateBook(ctx, &book); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_book_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("create_book_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Gagal menambah buku")
	}

	l.Info("create_book_success", "book_id", book.ID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Buku berhasil ditambahkan!"})
}

func (h *LibraryHTTP) UpdateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.update_book")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_book_failed", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	var req transport.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_book_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	book := models.Book{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		Stock:    req.Stock,
	}

	if err := h.Svc.UpdateBook(ctx, uint(id), book); err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			l.Warn("update_book_failed", "status", 404, "book_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Buku tidak ditemukan")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_book_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		l.Error("update_book_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Gagal mengupdate buku")
	}

	l.Info("update_book_success", "book_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Data buku berhasil diperbarui!"})
}

func (h *LibraryHTTP) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.delete_book")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("delete_book_failed", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	if err := h.Svc.DeleteBook(ctx, uint(id)); err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			l.Warn("delete_book_failed", "status", 404, "book_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Buku tidak ditemukan")
		}
		l.Error("delete_book_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Gagal menghapus buku (Server Error)")
	}

	l.Info("delete_book_success", "book_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: "Buku berhasil dihapus beserta riwayat peminjamannya!",
	})
}

func (h *LibraryHTTP) InitDB(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.init_db")

	if err := seed.Reset(ctx, h.DB); err != nil {
		l.Error("init_db_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot reseed book database")
	}

	l.Info("init_db_success")
	return c.String(http.StatusOK, "Database berhasil di-reset dengan kategori buku!")
}
