package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrnaufal/perpustakaan/pkg/tokens"
	"github.com/andrnaufal/perpustakaan/services/library/internal/models"
	"github.com/andrnaufal/perpustakaan/services/library/internal/repo"
	"github.com/andrnaufal/perpustakaan/services/library/internal/service"
	"github.com/andrnaufal/perpustakaan/services/library/internal/transport"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Book{}, &models.Loan{}))

	e := echo.New()
	Register(e, &Deps{
		LibraryHandler: &LibraryHTTP{
			Svc: &service.LibraryService{Repo: &repo.GormRepo{DB: db}},
			DB:  db,
		},
		JWTSecret: testSecret,
	})

	return &testEnv{E: e, DB: db}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func userToken(t *testing.T, id uint, username, role string) string {
	t.Helper()

	token, err := tokens.NewAccessToken(id, username, role, testSecret, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return token
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp transport.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Message
}

func TestGetBooks_NoAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	book := models.Book{Title: "Belajar Microservices", Author: "Fulan", Category: "Teknologi", Stock: 5}
	require.NoError(t, env.DB.Create(&book).Error)

	rec := env.do(t, http.MethodGet, "/books", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var books []models.Book
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &books))
	require.Len(t, books, 1)
	assert.Equal(t, book.Title, books[0].Title)
}

func TestBorrow_MissingToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/borrow", "", transport.BorrowRequest{BookID: 1})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Akses ditolak: Butuh Token", message(t, rec))
}

func TestBorrow_InvalidToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/borrow", "not-a-jwt", transport.BorrowRequest{BookID: 1})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Token tidak valid", message(t, rec))
}

func TestBorrow_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)

	expired, err := tokens.NewAccessToken(7, "budi", "user", testSecret, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, "/borrow", expired, transport.BorrowRequest{BookID: 1})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Token tidak valid", message(t, rec))
}

func TestBorrowAndReturn_Flow(t *testing.T) {
	env := newTestEnv(t)
	token := userToken(t, 7, "budi", "user")

	book := models.Book{Title: "Dasar-Dasar Python", Author: "Andi", Category: "Teknologi", Stock: 1}
	require.NoError(t, env.DB.Create(&book).Error)

	rec := env.do(t, http.MethodPost, "/borrow", token, transport.BorrowRequest{BookID: book.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	var borrowResp transport.BorrowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &borrowResp))
	assert.Equal(t, "Peminjaman Berhasil!", borrowResp.Message)
	assert.Equal(t, 0, borrowResp.RemainingStock)

	rec = env.do(t, http.MethodPost, "/borrow", token, transport.BorrowRequest{BookID: book.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Stok buku habis!", message(t, rec))

	rec = env.do(t, http.MethodPost, "/return", token, transport.ReturnRequest{BookID: book.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Buku berhasil dikembalikan.", message(t, rec))

	var got models.Book
	require.NoError(t, env.DB.First(&got, book.ID).Error)
	assert.Equal(t, 1, got.Stock)
}

func TestBorrow_UnknownBook(t *testing.T) {
	env := newTestEnv(t)
	token := userToken(t, 7, "budi", "user")

	rec := env.do(t, http.MethodPost, "/borrow", token, transport.BorrowRequest{BookID: 42})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Buku tidak ditemukan", message(t, rec))
}

func TestReturn_WithoutLoan(t *testing.T) {
	env := newTestEnv(t)
	token := userToken(t, 7, "budi", "user")

	book := models.Book{Title: "Mastering React JS", Author: "Siti", Category: "Teknologi", Stock: 5}
	require.NoError(t, env.DB.Create(&book).Error)

	rec := env.do(t, http.MethodPost, "/return", token, transport.ReturnRequest{BookID: book.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Anda tidak sedang meminjam buku ini.", message(t, rec))
}

func TestAdminRoutes_RejectNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	token := userToken(t, 7, "budi", "user")

	body := transport.CreateBookRequest{Title: "Keamanan Jaringan", Author: "Joko", Category: "Teknologi", Stock: 4}

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{name: "create", method: http.MethodPost, path: "/books", body: body},
		{name: "update", method: http.MethodPut, path: "/books/1", body: body},
		{name: "delete", method: http.MethodDelete, path: "/books/1", body: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, token, tt.body)
			require.Equal(t, http.StatusForbidden, rec.Code)
			assert.Equal(t, "Hanya Admin!", message(t, rec))
		})
	}
}

func TestCreateBook_AsAdmin(t *testing.T) {
	env := newTestEnv(t)
	admin := userToken(t, 1, "admin", "admin")

	rec := env.do(t, http.MethodPost, "/books", admin, transport.CreateBookRequest{
		Title:    "Kecerdasan Buatan (AI)",
		Author:   "Eko",
		Category: "Sains",
		Stock:    6,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Buku berhasil ditambahkan!", message(t, rec))

	var book models.Book
	require.NoError(t, env.DB.Where("title = ?", "Kecerdasan Buatan (AI)").First(&book).Error)
	assert.Equal(t, 6, book.Stock)
}

func TestCreateBook_NegativeStock(t *testing.T) {
	env := newTestEnv(t)
	admin := userToken(t, 1, "admin", "admin")

	rec := env.do(t, http.MethodPost, "/books", admin, transport.CreateBookRequest{
		Title: "Resep Masakan Padang",
		Stock: -2,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBook_AsAdmin(t *testing.T) {
	env := newTestEnv(t)
	admin := userToken(t, 1, "admin", "admin")

	book := models.Book{Title: "Desain UI/UX", Author: "Dian", Category: "Desain", Stock: 7}
	require.NoError(t, env.DB.Create(&book).Error)

	rec := env.do(t, http.MethodPut, "/books/1", admin, transport.UpdateBookRequest{
		Title:    "Desain UI/UX Modern",
		Author:   "Dian",
		Category: "Desain",
		Stock:    9,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Data buku berhasil diperbarui!", message(t, rec))

	var got models.Book
	require.NoError(t, env.DB.First(&got, book.ID).Error)
	assert.Equal(t, "Desain UI/UX Modern", got.Title)
	assert.Equal(t, 9, got.Stock)
}

func TestUpdateBook_UnknownID(t *testing.T) {
	env := newTestEnv(t)
	admin := userToken(t, 1, "admin", "admin")

	rec := env.do(t, http.MethodPut, "/books/42", admin, transport.UpdateBookRequest{Title: "X"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Buku tidak ditemukan", message(t, rec))
}

func TestDeleteBook_AsAdmin(t *testing.T) {
	env := newTestEnv(t)
	admin := userToken(t, 1, "admin", "admin")
	user := userToken(t, 7, "budi", "user")

	book := models.Book{Title: "Algoritma & Struktur Data", Author: "Rina", Category: "Edukasi", Stock: 12}
	require.NoError(t, env.DB.Create(&book).Error)

	rec := env.do(t, http.MethodPost, "/borrow", user, transport.BorrowRequest{BookID: book.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/books/1", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Buku berhasil dihapus beserta riwayat peminjamannya!", message(t, rec))

	var loans int64
	require.NoError(t, env.DB.Model(&models.Loan{}).Count(&loans).Error)
	assert.EqualValues(t, 0, loans)

	rec = env.do(t, http.MethodDelete, "/books/1", admin, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInitDB_SeedsCatalog(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/init-db", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var books []models.Book
	require.NoError(t, env.DB.Order("id ASC").Find(&books).Error)
	require.Len(t, books, 9)
	assert.Equal(t, "Belajar Microservices", books[0].Title)
	assert.Equal(t, 0, books[2].Stock)
}
