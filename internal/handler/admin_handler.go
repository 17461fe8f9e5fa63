package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者用（admin role guardの内側に登録する）
type AdminHandler struct {
	orders   *usecase.AdminOrderUsecase
	products *usecase.ProductUsecase
}

func NewAdminHandler(orders *usecase.AdminOrderUsecase, products *usecase.ProductUsecase) *AdminHandler {
	return &AdminHandler{orders: orders, products: products}
}

func (h *AdminHandler) RegisterRoutes(g *echo.Group) {
	g.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	g.POST("/products", h.CreateProduct)
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	var req usecase.AdminOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	updated, err := h.orders.UpdateStatus(c.Request().Context(), id, req)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req usecase.ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	created, err := h.products.Create(c.Request().Context(), req)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}
