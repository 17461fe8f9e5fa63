package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	uc *usecase.FavoriteUsecase
}

func NewFavoriteHandler(uc *usecase.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

func (h *FavoriteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/favorites", h.List)
	g.POST("/favorites", h.Add)
	g.DELETE("/favorites/:id", h.Remove)
}

func (h *FavoriteHandler) List(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	list, err := h.uc.List(c.Request().Context(), userID)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, list)
}

func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req usecase.FavoriteCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	created, err := h.uc.Add(c.Request().Context(), userID, req)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	if err := h.uc.Remove(c.Request().Context(), userID, id); err != nil {
		return writeUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}
