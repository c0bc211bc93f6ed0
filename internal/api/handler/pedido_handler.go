package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
	"github.com/jbinformatica/pedidos-api/internal/core/ports"
)

// PedidoHandler handles HTTP requests for orders.
type PedidoHandler struct {
	service ports.PedidoService
}

func NewPedidoHandler(service ports.PedidoService) *PedidoHandler {
	return &PedidoHandler{service: service}
}

type createPedidoRequest struct {
	ClienteNome string `json:"cliente_nome" validate:"required"`
	ProdutoID   uint   `json:"produto_id" validate:"required"`
	Quantidade  int    `json:"quantidade" validate:"gt=0"`
}

type updatePedidoRequest struct {
	ClienteNome *string `json:"cliente_nome"`
	ProdutoID   *uint   `json:"produto_id"`
	Quantidade  *int    `json:"quantidade"`
	Status      *string `json:"status"`
}

func (h *PedidoHandler) List(c echo.Context) error {
	pedidos, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pedidos)
}

func (h *PedidoHandler) Create(c echo.Context) error {
	var req createPedidoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pedido, err := h.service.Create(c.Request().Context(), ports.CreatePedidoInput{
		ClienteNome: req.ClienteNome,
		ProdutoID:   req.ProdutoID,
		Quantidade:  req.Quantidade,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pedido)
}

func (h *PedidoHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updatePedidoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.UpdatePedidoInput{
		ClienteNome: req.ClienteNome,
		ProdutoID:   req.ProdutoID,
		Quantidade:  req.Quantidade,
	}
	if req.Status != nil {
		status := domain.PedidoStatus(*req.Status)
		in.Status = &status
	}

	pedido, err := h.service.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pedido)
}

func (h *PedidoHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
