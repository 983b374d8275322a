package router

import (
	"github.com/labstack/echo/v4"

	"agromarket/internal/adapter/api/handler"
	"agromarket/internal/adapter/api/middleware"
)

func SetupFavoriteRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	favoriteHandler := handler.GetFavoriteHandler()

	favoriteGroup := e.Group("/v1/favorites")
	favoriteGroup.Use(authMiddleware.Authenticate)

	favoriteGroup.POST("", favoriteHandler.ToggleFavorite)
	favoriteGroup.GET("", favoriteHandler.ListFavorites)
	favoriteGroup.GET("/stats", favoriteHandler.GetFavoriteStats)
	favoriteGroup.GET("/:adId/status", favoriteHandler.GetFavoriteStatus)
}
