package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/andrnaufal/perpustakaan/pkg/tokens"
)

const claimsKey = "claims"

type BearerMiddleware struct {
	JWTSecret []byte
}

func NewBearerMiddleware(secret []byte) *BearerMiddleware {
	return &BearerMiddleware{JWTSecret: secret}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *BearerMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *BearerMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "Hanya Admin!")
		}
		return nil
	})
}

func (m *BearerMiddleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if tokenStr == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Akses ditolak: Butuh Token")
		}

		claims, err := tokens.AccessClaimsFromToken(tokenStr, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusForbidden, "Token tidak valid")
		}

		if validator != nil {
			if validationErr := validator(claims); validationErr != nil {
				return validationErr
			}
		}

		setUserContext(c, claims)
		return next(c)
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(claimsKey, claims)
	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
}

// ClaimsFromContext returns the claims stored by RequireAuth/RequireAdmin.
func ClaimsFromContext(c echo.Context) (*tokens.AccessClaims, bool) {
	claims, ok := c.Get(claimsKey).(*tokens.AccessClaims)
	return claims, ok
}
