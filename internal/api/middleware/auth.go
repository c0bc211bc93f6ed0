package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jbinformatica/pedidos-api/internal/core/token"
)

// claimsKey is the echo context key under which Auth stores verified claims.
const claimsKey = "auth_claims"

// Auth validates the bearer token and injects its claims into the context.
// Missing, malformed, and expired tokens all answer 401; the body
// distinguishes an expired token so clients can re-authenticate.
func Auth(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				if errors.Is(err, token.ErrExpiredToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom extracts the claims injected by Auth. The second return is
// false when the middleware did not run or verification never happened.
func ClaimsFrom(c echo.Context) (*token.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*token.Claims)
	return claims, ok
}

// SetClaims injects claims directly; intended for tests.
func SetClaims(c echo.Context, claims *token.Claims) {
	c.Set(claimsKey, claims)
}
