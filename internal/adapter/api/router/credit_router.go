package router

import (
	"github.com/labstack/echo/v4"

	"agromarket/internal/adapter/api/handler"
	"agromarket/internal/adapter/api/middleware"
)

func SetupCreditRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	creditHandler := handler.GetCreditHandler()

	creditGroup := e.Group("/v1/credits")
	creditGroup.Use(authMiddleware.Authenticate)

	creditGroup.GET("/balance", creditHandler.GetBalance)
	creditGroup.GET("/transactions", creditHandler.ListTransactions)
}
