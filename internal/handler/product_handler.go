package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開エンドポイント（認証不要）
func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products", h.List)
	g.GET("/products/:id", h.Get)
}

func (h *ProductHandler) List(c echo.Context) error {
	in := usecase.ProductListInput{
		Q: c.QueryParam("q"),
	}
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return writeError(c, http.StatusBadRequest, "validation error")
		}
		in.Page = n
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return writeError(c, http.StatusBadRequest, "validation error")
		}
		in.Limit = n
	}

	out, err := h.uc.ListPublic(c.Request().Context(), in)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	out, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
