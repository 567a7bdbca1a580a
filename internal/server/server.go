package server

import (
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New はルート登録済みのechoを組み立てる
func New(shopH *handler.ShopHandler, productH *handler.ProductHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	shopH.RegisterRoutes(e)
	productH.RegisterRoutes(e)

	return e
}

func Start(addr string, shopH *handler.ShopHandler, productH *handler.ProductHandler) error {
	return New(shopH, productH).Start(addr)
}
