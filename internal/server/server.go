package server

import (
	appmw "github.com/DipakKumarChauhan/SubStream/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Echoを組み立てて返す
func New(log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(appmw.RequestLogger(log))

	return e
}

// サーバー起動
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
