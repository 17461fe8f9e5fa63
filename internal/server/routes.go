package server

import (
	"app/internal/config"
	"app/internal/handler"
	appmw "app/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Products  *handler.ProductHandler
	Addresses *handler.AddressHandler
	Favorites *handler.FavoriteHandler
	Orders    *handler.OrderHandler
	Reviews   *handler.ReviewHandler
	Admin     *handler.AdminHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	//公開ルート（認証なし）
	public := e.Group("")
	h.Auth.RegisterPublicRoutes(public)
	h.Products.RegisterRoutes(public)

	//要ログイン
	authed := e.Group("", appmw.AuthJWT(cfg))
	h.Auth.RegisterRoutes(authed)
	h.Addresses.RegisterRoutes(authed)
	h.Favorites.RegisterRoutes(authed)
	h.Orders.RegisterRoutes(authed)
	h.Reviews.RegisterRoutes(authed)

	//管理者のみ
	admin := e.Group("/admin", appmw.AuthJWT(cfg), appmw.AdminRoleGuard())
	h.Admin.RegisterRoutes(admin)
}
