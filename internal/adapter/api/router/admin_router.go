package router

import (
	"github.com/labstack/echo/v4"

	"agromarket/internal/adapter/api/handler"
	"agromarket/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	adminGroup := e.Group("/v1/admin")
	adminGroup.Use(authMiddleware.Authenticate)
	adminGroup.Use(adminMiddleware.AdminOnly)

	adminGroup.GET("/settings/smtp", adminHandler.GetSMTPConfig)
	adminGroup.PUT("/settings/smtp", adminHandler.SaveSMTPConfig)
	adminGroup.POST("/settings/smtp/test-connection", adminHandler.TestSMTPConnection)
	adminGroup.POST("/settings/smtp/test-email", adminHandler.SendTestEmail)

	adminGroup.PUT("/ads/:id/price", adminHandler.UpdateAdPrice)
	adminGroup.POST("/credits", adminHandler.AddCredits)
}
