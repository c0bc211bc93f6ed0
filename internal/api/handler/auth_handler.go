package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
	"github.com/jbinformatica/pedidos-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	// Identifier accepts an email, a username, or a client name. Email is
	// kept as an alias for older callers.
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type authResponse struct {
	Token string               `json:"token"`
	User  *ports.PublicProfile `json:"user"`
}

// Login authenticates with one of the three credential kinds (master,
// user, client name) and returns a signed token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Email
	}

	result, err := h.authService.Login(c.Request().Context(), identifier, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

// Register creates a USER-role account and logs it in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{Token: result.Token, User: result.User})
}

// Profile returns the acting identity. Master and client-name sessions have
// no stored user record, so their profile is rebuilt from the claims.
func (h *AuthHandler) Profile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	subject := claims.SubjectID()
	if subject <= 0 {
		return c.JSON(http.StatusOK, &ports.PublicProfile{
			ID:       subject,
			Email:    claims.Identity,
			Role:     domain.NormalizeRole(claims.Role),
			ClientID: claims.ClientID,
		})
	}

	user, err := h.authService.Profile(c.Request().Context(), uint(subject))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword updates the caller's own password. Only stored users have
// one; master and client sessions get a 403.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	subject := claims.SubjectID()
	if subject <= 0 {
		return domain.ErrForbidden
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.ChangePassword(c.Request().Context(), uint(subject), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "password updated"})
}

// Navigation returns the menu entries the caller's plan unlocks.
func (h *AuthHandler) Navigation(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	menu, err := h.authService.Navigation(c.Request().Context(), claims.Role, claims.SubjectID(), claims.ClientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string][]string{"menu": menu})
}
