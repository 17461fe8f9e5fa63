package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AddressHandler struct {
	uc *usecase.AddressUsecase
}

func NewAddressHandler(uc *usecase.AddressUsecase) *AddressHandler {
	return &AddressHandler{uc: uc}
}

func (h *AddressHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/addresses", h.List)
	g.POST("/addresses", h.Create)
	g.PUT("/addresses/:id", h.Update)
	g.DELETE("/addresses/:id", h.Delete)
	g.POST("/addresses/:id/default", h.SetDefault)
}

func (h *AddressHandler) List(c echo.Context) error {
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

func (h *AddressHandler) Create(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req usecase.AddressCreateRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	created, err := h.uc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *AddressHandler) Update(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	var req usecase.AddressUpdateRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	updated, err := h.uc.Update(c.Request().Context(), userID, id, req)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *AddressHandler) Delete(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	if err := h.uc.Delete(c.Request().Context(), userID, id); err != nil {
		return writeUsecaseError(c, err)
	}

	// Success は {message:string} に寄せる
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

func (h *AddressHandler) SetDefault(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "validation error")
	}

	updated, err := h.uc.SetDefault(c.Request().Context(), userID, id)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, updated)
}
