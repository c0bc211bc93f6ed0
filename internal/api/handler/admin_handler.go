package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jbinformatica/pedidos-api/internal/core/ports"
)

// AdminHandler handles the master/admin management surface: plans, client
// plan assignment, and user administration.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type createPlanRequest struct {
	Name        string          `json:"name" validate:"required"`
	Features    map[string]bool `json:"features"`
	DefaultPlan bool            `json:"default_plan"`
}

type updatePlanRequest struct {
	Name        *string         `json:"name"`
	Features    map[string]bool `json:"features"`
	DefaultPlan *bool           `json:"default_plan"`
}

type changeClientPlanRequest struct {
	PlanName string `json:"plan_name"`
	PlanID   *uint  `json:"plan_id"`
}

type createUserRequest struct {
	Email       string          `json:"email" validate:"omitempty,email"`
	Username    string          `json:"username"`
	Password    string          `json:"password"`
	Role        string          `json:"role"`
	ClientID    *uint           `json:"client_id"`
	Permissions map[string]bool `json:"permissions"`
}

type updateUserRequest struct {
	Email       *string         `json:"email"`
	Username    *string         `json:"username"`
	Role        *string         `json:"role"`
	Permissions map[string]bool `json:"permissions"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type setPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

func (h *AdminHandler) ListPlans(c echo.Context) error {
	plans, err := h.service.ListPlans(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

func (h *AdminHandler) CreatePlan(c echo.Context) error {
	var req createPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.service.CreatePlan(c.Request().Context(), req.Name, req.Features, req.DefaultPlan)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, plan)
}

func (h *AdminHandler) UpdatePlan(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updatePlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	plan, err := h.service.UpdatePlan(c.Request().Context(), id, ports.UpdatePlanInput{
		Name:        req.Name,
		Features:    req.Features,
		DefaultPlan: req.DefaultPlan,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// ChangeClientPlan assigns a plan to a tenant, by name or by id.
func (h *AdminHandler) ChangeClientPlan(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req changeClientPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	client, err := h.service.ChangeClientPlan(c.Request().Context(), id, req.PlanName, req.PlanID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		Role:        req.Role,
		ClientID:    req.ClientID,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.UpdateUser(c.Request().Context(), id, ports.UpdateUserInput{
		Email:       req.Email,
		Username:    req.Username,
		Role:        req.Role,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) ChangeUserRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.ChangeUserRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) SetUserPassword(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req setPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.service.SetUserPassword(c.Request().Context(), id, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "password updated"})
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
