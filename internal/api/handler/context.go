package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jbinformatica/pedidos-api/internal/api/middleware"
	"github.com/jbinformatica/pedidos-api/internal/core/token"
)

// ctxClaims extracts the claims injected by the Auth middleware. Their
// absence means the middleware never ran on this route; answer 401 rather
// than panic downstream.
func ctxClaims(c echo.Context) (*token.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// pathID parses the numeric :id route parameter.
func pathID(c echo.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
