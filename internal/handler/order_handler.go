package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.List)
	g.POST("/orders", h.Place)
}

// GET /orders?status=&limit=&skip=
func (h *OrderHandler) List(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	in := usecase.OrderListInput{
		Status: c.QueryParam("status"),
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return writeError(c, http.StatusBadRequest, "validation error")
		}
		in.Limit = n
	}
	if v := c.QueryParam("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return writeError(c, http.StatusBadRequest, "validation error")
		}
		in.Skip = n
	}

	out, err := h.uc.List(c.Request().Context(), userID, in)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Place(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req usecase.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	created, err := h.uc.Place(c.Request().Context(), userID, req)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}
