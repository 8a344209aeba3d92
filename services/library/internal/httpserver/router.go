package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/andrnaufal/perpustakaan/pkg/middleware/auth"
)

type Deps struct {
	LibraryHandler *LibraryHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.NewBearerMiddleware(d.JWTSecret)

	e.GET("/books", d.LibraryHandler.GetBooks)
	e.GET("/init-db", d.LibraryHandler.InitDB)

	e.POST("/borrow", d.LibraryHandler.Borrow, authMW.RequireAuth)
	e.POST("/return", d.LibraryHandler.Return, authMW.RequireAuth)

	e.POST("/books", d.LibraryHandler.CreateBook, authMW.RequireAdmin)
	e.PUT("/books/:id", d.LibraryHandler.UpdateBook, authMW.RequireAdmin)
	e.DELETE("/books/:id", d.LibraryHandler.DeleteBook, authMW.RequireAdmin)
}
