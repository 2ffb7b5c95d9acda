package server

import (
	"github.com/DipakKumarChauhan/SubStream/internal/handler"
	"github.com/DipakKumarChauhan/SubStream/internal/middleware"
	"github.com/DipakKumarChauhan/SubStream/internal/repository"
	"github.com/DipakKumarChauhan/SubStream/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/v1/users 以下のルートを登録する
func RegisterRoutes(
	e *echo.Echo,
	authH *handler.AuthHandler,
	accountH *handler.AccountHandler,
	tokens *usecase.TokenUsecase,
	users repository.UserRepository,
) {
	g := e.Group("/api/v1/users")

	g.POST("/register", authH.Register)
	g.POST("/login", authH.Login)
	g.POST("/refresh-token", authH.Refresh)

	// secured routes
	secured := g.Group("")
	secured.Use(middleware.AuthJWT(tokens, users))

	secured.POST("/logout", authH.Logout)
	secured.POST("/change-password", authH.ChangePassword)
	secured.GET("/current-user", accountH.CurrentUser)
	secured.PATCH("/update-account", accountH.UpdateAccount)
	secured.PATCH("/avatar", accountH.UpdateAvatar)
	secured.PATCH("/cover-image", accountH.UpdateCoverImage)
}
